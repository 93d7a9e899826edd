package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

type ObjectiveRepository struct {
	mu         sync.RWMutex
	objectives map[string]domain.Objective
}

func NewObjectiveRepository() repository.ObjectiveRepository {
	return &ObjectiveRepository{objectives: make(map[string]domain.Objective)}
}

func (r *ObjectiveRepository) Init(ctx context.Context) error {
	return nil
}

func (r *ObjectiveRepository) Create(ctx context.Context, objective *domain.Objective) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	objective.ID = uuid.NewString()
	objective.CreatedAt = now
	objective.UpdatedAt = now

	r.objectives[objective.ID] = cloneObjective(*objective)
	return objective.ID, nil
}

func (r *ObjectiveRepository) Get(ctx context.Context, id string) (*domain.Objective, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	objective, ok := r.objectives[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "objective", ID: id}
	}
	o := cloneObjective(objective)
	return &o, nil
}

func (r *ObjectiveRepository) List(ctx context.Context) ([]domain.Objective, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	objectives := make([]domain.Objective, 0, len(r.objectives))
	for _, objective := range r.objectives {
		objectives = append(objectives, cloneObjective(objective))
	}
	sort.Slice(objectives, func(i, j int) bool {
		return objectives[i].CreatedAt.Before(objectives[j].CreatedAt)
	})
	return objectives, nil
}

func (r *ObjectiveRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Objective, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]domain.Objective, 0)
	for _, objective := range all {
		if objective.ProjectID == projectID {
			filtered = append(filtered, objective)
		}
	}
	return filtered, nil
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
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objectives[objective.ID]; !ok {
		return &domain.NotFoundError{Entity: "objective", ID: objective.ID}
	}
	r.objectives[objective.ID] = cloneObjective(*objective)
	return nil
}

func (r *ObjectiveRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.objectives[id]; !ok {
		return &domain.NotFoundError{Entity: "objective", ID: id}
	}
	delete(r.objectives, id)
	return nil
}

func (r *ObjectiveRepository) DeleteByProject(ctx context.Context, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, objective := range r.objectives {
		if objective.ProjectID == projectID {
			delete(r.objectives, id)
		}
	}
	return nil
}

func cloneObjective(objective domain.Objective) domain.Objective {
	objective.AssignedUsers = cloneIDs(objective.AssignedUsers)
	if objective.DueDate != nil {
		due := *objective.DueDate
		objective.DueDate = &due
	}
	return objective
}
