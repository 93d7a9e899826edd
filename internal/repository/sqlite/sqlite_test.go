package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProjectRepositoryRoundtrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewProjectRepository(db)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	project := &domain.Project{
		Name:          "Website Redesign",
		Description:   "overhaul the site",
		AssignedUsers: []string{"u1", "u2"},
		ObjectiveIDs:  []string{},
	}
	id, err := repo.Create(ctx, project)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != project.Name || got.Description != project.Description {
		t.Errorf("got %+v", got)
	}
	if len(got.AssignedUsers) != 2 {
		t.Errorf("assigned users = %v", got.AssignedUsers)
	}
	if got.ObjectiveIDs == nil || len(got.ObjectiveIDs) != 0 {
		t.Errorf("objective ids = %v, want empty list", got.ObjectiveIDs)
	}

	got.ObjectiveIDs = []string{"o1"}
	got.Completed = true
	got.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if !again.Completed || len(again.ObjectiveIDs) != 1 {
		t.Errorf("update not persisted: %+v", again)
	}

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, id); !domain.IsNotFound(err) {
		t.Fatalf("double delete: got %v, want NotFoundError", err)
	}
}

func TestObjectiveRepositoryCascade(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewObjectiveRepository(db)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	if _, err := repo.Create(ctx, &domain.Objective{Title: "a", ProjectID: "p1", DueDate: &due}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Objective{Title: "b", ProjectID: "p1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.Objective{Title: "c", ProjectID: "p2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	p1, err := repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("list p1: %v", err)
	}
	if len(p1) != 2 {
		t.Fatalf("p1 objectives = %d, want 2", len(p1))
	}
	for _, objective := range p1 {
		switch objective.Title {
		case "a":
			if objective.DueDate == nil || !objective.DueDate.Equal(due) {
				t.Errorf("due date lost in roundtrip: %v", objective.DueDate)
			}
		case "b":
			if objective.DueDate != nil {
				t.Errorf("phantom due date: %v", objective.DueDate)
			}
		}
	}

	if err := repo.DeleteByProject(ctx, "p1"); err != nil {
		t.Fatalf("delete by project: %v", err)
	}
	p1, err = repo.ListByProject(ctx, "p1")
	if err != nil {
		t.Fatalf("list p1 again: %v", err)
	}
	if len(p1) != 0 {
		t.Errorf("p1 objectives after cascade = %d, want 0", len(p1))
	}
}

func TestUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewUserRepository(db)
	if err := repo.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	if _, err := repo.Create(ctx, &domain.User{Name: "John", Email: "john@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Name: "Johnny", Email: "john@example.com", PasswordHash: "y"}); err != domain.ErrEmailTaken {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}

	byEmail, err := repo.GetByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.Name != "John" {
		t.Errorf("fetched %q", byEmail.Name)
	}
	if _, err := repo.GetByID(ctx, "missing"); !domain.IsNotFound(err) {
		t.Fatalf("get missing: got %v, want NotFoundError", err)
	}
}
