package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	completed INTEGER NOT NULL DEFAULT 0,
	assigned_users TEXT NOT NULL DEFAULT '[]',
	objective_ids TEXT NOT NULL DEFAULT '[]',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// ProjectRepository persists projects. The assigned user and objective id
// lists are stored as JSON arrays in text columns, mirroring the document
// shape the API exposes.
type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProjectsTable); err != nil {
		return storageErr("create projects table", err)
	}
	return nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (string, error) {
	now := time.Now().UTC()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now

	users, err := marshalIDs(project.AssignedUsers)
	if err != nil {
		return "", err
	}
	objectives, err := marshalIDs(project.ObjectiveIDs)
	if err != nil {
		return "", err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO projects (id, name, description, completed, assigned_users, objective_ids, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.Description,
		project.Completed,
		users,
		objectives,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		return "", storageErr("insert project", err)
	}
	return project.ID, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, description, completed, assigned_users, objective_ids, created_at, updated_at
FROM projects
WHERE id = ?`,
		id,
	)
	return scanProject(row, id)
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, description, completed, assigned_users, objective_ids, created_at, updated_at
FROM projects
ORDER BY created_at`)
	if err != nil {
		return nil, storageErr("list projects", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows, "")
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate projects", err)
	}
	return projects, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]domain.Project, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Project, 0)
	for _, project := range all {
		if slices.Contains(project.AssignedUsers, userID) {
			filtered = append(filtered, project)
		}
	}
	return filtered, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	users, err := marshalIDs(project.AssignedUsers)
	if err != nil {
		return err
	}
	objectives, err := marshalIDs(project.ObjectiveIDs)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE projects
SET name = ?, description = ?, completed = ?, assigned_users = ?, objective_ids = ?, updated_at = ?
WHERE id = ?`,
		project.Name,
		project.Description,
		project.Completed,
		users,
		objectives,
		project.UpdatedAt,
		project.ID,
	)
	if err != nil {
		return storageErr("update project", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("update project rows affected", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "project", ID: project.ID}
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete project", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete project rows affected", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "project", ID: id}
	}
	return nil
}

func scanProject(row interface {
	Scan(dest ...any) error
}, id string) (*domain.Project, error) {
	var (
		project    domain.Project
		users      string
		objectives string
	)
	if err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.Completed,
		&users,
		&objectives,
		&project.CreatedAt,
		&project.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "project", ID: id}
		}
		return nil, storageErr("scan project", err)
	}

	var err error
	if project.AssignedUsers, err = unmarshalIDs(users); err != nil {
		return nil, err
	}
	if project.ObjectiveIDs, err = unmarshalIDs(objectives); err != nil {
		return nil, err
	}
	return &project, nil
}
