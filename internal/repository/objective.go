package repository

import (
	"context"

	"taskboard/internal/domain"
)

// ObjectiveRepository exposes persistence operations for Objective entities.
type ObjectiveRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, objective *domain.Objective) (string, error)
	Get(ctx context.Context, id string) (*domain.Objective, error)
	List(ctx context.Context) ([]domain.Objective, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Objective, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Objective, error)
	Update(ctx context.Context, objective *domain.Objective) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}
