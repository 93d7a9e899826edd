package repository

import (
	"context"

	"taskboard/internal/domain"
)

// ProjectRepository exposes persistence operations for Project aggregates.
// Create generates the id and stamps timestamps; Update writes the full row.
type ProjectRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, project *domain.Project) (string, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}
