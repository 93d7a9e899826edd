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

type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]domain.Project
}

func NewProjectRepository() repository.ProjectRepository {
	return &ProjectRepository{projects: make(map[string]domain.Project)}
}

func (r *ProjectRepository) Init(ctx context.Context) error {
	return nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	project.ID = uuid.NewString()
	project.CreatedAt = now
	project.UpdatedAt = now

	r.projects[project.ID] = cloneProject(*project)
	return project.ID, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "project", ID: id}
	}
	p := cloneProject(project)
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	projects := make([]domain.Project, 0, len(r.projects))
	for _, project := range r.projects {
		projects = append(projects, cloneProject(project))
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].CreatedAt.Before(projects[j].CreatedAt) })
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
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; !ok {
		return &domain.NotFoundError{Entity: "project", ID: project.ID}
	}
	r.projects[project.ID] = cloneProject(*project)
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return &domain.NotFoundError{Entity: "project", ID: id}
	}
	delete(r.projects, id)
	return nil
}

func cloneProject(project domain.Project) domain.Project {
	project.AssignedUsers = cloneIDs(project.AssignedUsers)
	project.ObjectiveIDs = cloneIDs(project.ObjectiveIDs)
	return project
}
