package service

import (
	"context"
	"errors"
	"testing"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/repository/memory"
)

type testRepos struct {
	users      repository.UserRepository
	projects   repository.ProjectRepository
	objectives repository.ObjectiveRepository
}

func newTestRepos() testRepos {
	return testRepos{
		users:      memory.NewUserRepository(),
		projects:   memory.NewProjectRepository(),
		objectives: memory.NewObjectiveRepository(),
	}
}

func newProjectService(r testRepos) ProjectService {
	return NewProjectService(r.projects, r.objectives, r.users)
}

func newObjectiveService(r testRepos) ObjectiveService {
	return NewObjectiveService(r.objectives, r.projects, r.users)
}

func TestProjectCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(newTestRepos())

	project, err := svc.Create(ctx, "Website Redesign", "overhaul the site", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if project.ID == "" {
		t.Fatal("expected generated id")
	}
	if project.Completed {
		t.Error("new project must not be completed")
	}
	if len(project.ObjectiveIDs) != 0 {
		t.Errorf("new project objective list = %v, want empty", project.ObjectiveIDs)
	}
	if project.AssignedUsers == nil {
		t.Error("assigned users should be an empty list, not nil")
	}
	if project.CreatedAt.IsZero() || project.UpdatedAt.IsZero() {
		t.Error("timestamps must be set on create")
	}
}

func TestProjectCreateRequiresName(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newProjectService(repos)

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(ctx, name, "", nil)
		var validation *domain.ValidationError
		if !errors.As(err, &validation) {
			t.Fatalf("create with name %q: got %v, want ValidationError", name, err)
		}
	}

	// nothing may be persisted on a failed create
	projects, err := repos.projects.List(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("store holds %d projects after failed creates, want 0", len(projects))
	}
}

func TestProjectUpdateAppliesPatch(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(newTestRepos())

	project, err := svc.Create(ctx, "Old Name", "old", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	name := "New Name"
	completed := true
	updated, err := svc.Update(ctx, project.ID, domain.ProjectPatch{Name: &name, Completed: &completed})
	if err != nil {
		t.Fatalf("update project: %v", err)
	}

	if updated.ID != project.ID {
		t.Errorf("update changed id from %s to %s", project.ID, updated.ID)
	}
	if updated.Name != "New Name" || !updated.Completed {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Description != "old" {
		t.Errorf("unpatched field changed: %q", updated.Description)
	}
	if !updated.UpdatedAt.After(project.UpdatedAt) && !updated.UpdatedAt.Equal(project.UpdatedAt) {
		t.Error("updatedAt went backwards")
	}
}

func TestProjectUpdateRejectsEmptyName(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(newTestRepos())

	project, err := svc.Create(ctx, "Keep Me", "", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	empty := ""
	if _, err := svc.Update(ctx, project.ID, domain.ProjectPatch{Name: &empty}); err == nil {
		t.Fatal("expected validation error for empty name")
	}

	got, err := svc.Get(ctx, project.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Name != "Keep Me" {
		t.Errorf("name changed to %q after rejected patch", got.Name)
	}
}

func TestProjectUpdateMissing(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(newTestRepos())

	name := "anything"
	_, err := svc.Update(ctx, "nonexistent", domain.ProjectPatch{Name: &name})
	if !domain.IsNotFound(err) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	projects := newProjectService(repos)
	objectives := newObjectiveService(repos)

	project, err := projects.Create(ctx, "Website Redesign", "", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	other, err := projects.Create(ctx, "Student Portal", "", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	for _, title := range []string{"Design mockups", "Frontend development"} {
		if _, err := objectives.Create(ctx, title, project.ID, "", nil, nil); err != nil {
			t.Fatalf("create objective %q: %v", title, err)
		}
	}
	kept, err := objectives.Create(ctx, "User requirements", other.ID, "", nil, nil)
	if err != nil {
		t.Fatalf("create objective: %v", err)
	}

	if err := projects.Delete(ctx, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	remaining, err := objectives.ListForProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("list objectives: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d objectives survived project delete, want 0", len(remaining))
	}

	// the unrelated project keeps its objective
	if _, err := objectives.Get(ctx, kept.ID); err != nil {
		t.Errorf("objective of other project was deleted: %v", err)
	}
}

func TestProjectDeleteIdempotence(t *testing.T) {
	ctx := context.Background()
	svc := newProjectService(newTestRepos())

	project, err := svc.Create(ctx, "Short Lived", "", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if err := svc.Delete(ctx, project.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, project.ID); !domain.IsNotFound(err) {
		t.Fatalf("second delete: got %v, want NotFoundError", err)
	}
}

func TestProjectAssignAndRemoveUser(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newProjectService(repos)

	user := &domain.User{Name: "John Doe", Email: "john@example.com", PasswordHash: "x"}
	if _, err := repos.users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	project, err := svc.Create(ctx, "Team Project", "", nil)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	assigned, err := svc.AssignUser(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("assign user: %v", err)
	}
	if len(assigned.AssignedUsers) != 1 || assigned.AssignedUsers[0] != user.ID {
		t.Errorf("assigned users = %v", assigned.AssignedUsers)
	}

	// assigning twice must not duplicate
	assigned, err = svc.AssignUser(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("assign user again: %v", err)
	}
	if len(assigned.AssignedUsers) != 1 {
		t.Errorf("duplicate assignment: %v", assigned.AssignedUsers)
	}

	var referential *domain.ReferentialError
	if _, err := svc.AssignUser(ctx, project.ID, "ghost"); !errors.As(err, &referential) {
		t.Fatalf("assigning unknown user: got %v, want ReferentialError", err)
	}

	removed, err := svc.RemoveUser(ctx, project.ID, user.ID)
	if err != nil {
		t.Fatalf("remove user: %v", err)
	}
	if len(removed.AssignedUsers) != 0 {
		t.Errorf("assigned users after removal = %v", removed.AssignedUsers)
	}
}

func TestProjectListForUser(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos()
	svc := newProjectService(repos)

	mine, err := svc.Create(ctx, "Mine", "", []string{"u1"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := svc.Create(ctx, "Theirs", "", []string{"u2"}); err != nil {
		t.Fatalf("create project: %v", err)
	}

	projects, err := svc.ListForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != mine.ID {
		t.Errorf("list for user = %+v, want only %s", projects, mine.ID)
	}
}
