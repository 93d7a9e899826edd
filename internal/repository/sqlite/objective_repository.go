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

const createObjectivesTable = `
CREATE TABLE IF NOT EXISTS objectives (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	project_id TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	assigned_users TEXT NOT NULL DEFAULT '[]',
	due_date DATETIME NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ObjectiveRepository struct {
	db *sql.DB
}

func NewObjectiveRepository(db *sql.DB) repository.ObjectiveRepository {
	return &ObjectiveRepository{db: db}
}

func (r *ObjectiveRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createObjectivesTable); err != nil {
		return storageErr("create objectives table", err)
	}
	return nil
}

func (r *ObjectiveRepository) Create(ctx context.Context, objective *domain.Objective) (string, error) {
	now := time.Now().UTC()
	objective.ID = uuid.NewString()
	objective.CreatedAt = now
	objective.UpdatedAt = now

	users, err := marshalIDs(objective.AssignedUsers)
	if err != nil {
		return "", err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO objectives (id, title, description, project_id, completed, assigned_users, due_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		objective.ID,
		objective.Title,
		objective.Description,
		objective.ProjectID,
		objective.Completed,
		users,
		objective.DueDate,
		objective.CreatedAt,
		objective.UpdatedAt,
	)
	if err != nil {
		return "", storageErr("insert objective", err)
	}
	return objective.ID, nil
}

func (r *ObjectiveRepository) Get(ctx context.Context, id string) (*domain.Objective, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, project_id, completed, assigned_users, due_date, created_at, updated_at
FROM objectives
WHERE id = ?`,
		id,
	)
	return scanObjective(row, id)
}

func (r *ObjectiveRepository) List(ctx context.Context) ([]domain.Objective, error) {
	return r.queryObjectives(ctx, `
SELECT id, title, description, project_id, completed, assigned_users, due_date, created_at, updated_at
FROM objectives
ORDER BY created_at`)
}

func (r *ObjectiveRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Objective, error) {
	return r.queryObjectives(ctx, `
SELECT id, title, description, project_id, completed, assigned_users, due_date, created_at, updated_at
FROM objectives
WHERE project_id = ?
ORDER BY created_at`,
		projectID)
}

func (r *ObjectiveRepository) ListByUser(ctx context.Context, userID string) ([]domain.Objective, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Objective, 0)
	for _, objective := range all {
		if slices.Contains(objective.AssignedUsers, userID) {
			filtered = append(filtered, objective)
		}
	}
	return filtered, nil
}

func (r *ObjectiveRepository) Update(ctx context.Context, objective *domain.Objective) error {
	users, err := marshalIDs(objective.AssignedUsers)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE objectives
SET title = ?, description = ?, completed = ?, assigned_users = ?, due_date = ?, updated_at = ?
WHERE id = ?`,
		objective.Title,
		objective.Description,
		objective.Completed,
		users,
		objective.DueDate,
		objective.UpdatedAt,
		objective.ID,
	)
	if err != nil {
		return storageErr("update objective", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("update objective rows affected", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "objective", ID: objective.ID}
	}
	return nil
}

func (r *ObjectiveRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM objectives WHERE id = ?`, id)
	if err != nil {
		return storageErr("delete objective", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete objective rows affected", err)
	}
	if affected == 0 {
		return &domain.NotFoundError{Entity: "objective", ID: id}
	}
	return nil
}

func (r *ObjectiveRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM objectives WHERE project_id = ?`, projectID); err != nil {
		return storageErr("delete objectives by project", err)
	}
	return nil
}

func (r *ObjectiveRepository) queryObjectives(ctx context.Context, query string, args ...any) ([]domain.Objective, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list objectives", err)
	}
	defer rows.Close()

	var objectives []domain.Objective
	for rows.Next() {
		objective, err := scanObjective(rows, "")
		if err != nil {
			return nil, err
		}
		objectives = append(objectives, *objective)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate objectives", err)
	}
	return objectives, nil
}

func scanObjective(row interface {
	Scan(dest ...any) error
}, id string) (*domain.Objective, error) {
	var (
		objective domain.Objective
		users     string
		dueDate   sql.NullTime
	)
	if err := row.Scan(
		&objective.ID,
		&objective.Title,
		&objective.Description,
		&objective.ProjectID,
		&objective.Completed,
		&users,
		&dueDate,
		&objective.CreatedAt,
		&objective.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "objective", ID: id}
		}
		return nil, storageErr("scan objective", err)
	}

	var err error
	if objective.AssignedUsers, err = unmarshalIDs(users); err != nil {
		return nil, err
	}
	if dueDate.Valid {
		t := dueDate.Time
		objective.DueDate = &t
	}
	return &objective, nil
}
