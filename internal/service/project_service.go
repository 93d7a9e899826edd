package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// ProjectService coordinates project level operations backed by repositories.
// Mutations keep the project/objective back-references consistent: callers
// never observe a project whose objective list disagrees with the objectives
// that reference it.
type ProjectService interface {
	Create(ctx context.Context, name, description string, assignedUsers []string) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	AssignUser(ctx context.Context, id, userID string) (*domain.Project, error)
	RemoveUser(ctx context.Context, id, userID string) (*domain.Project, error)
}

type projectService struct {
	projects   repository.ProjectRepository
	objectives repository.ObjectiveRepository
	users      repository.UserRepository
}

func NewProjectService(projects repository.ProjectRepository, objectives repository.ObjectiveRepository, users repository.UserRepository) ProjectService {
	return &projectService{
		projects:   projects,
		objectives: objectives,
		users:      users,
	}
}

func (s *projectService) Create(ctx context.Context, name, description string, assignedUsers []string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}

	project := &domain.Project{
		Name:          name,
		Description:   description,
		Completed:     false,
		AssignedUsers: assignedUsers,
		ObjectiveIDs:  []string{},
	}
	if project.AssignedUsers == nil {
		project.AssignedUsers = []string{}
	}

	if _, err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.Get(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) ListForUser(ctx context.Context, userID string) ([]domain.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

func (s *projectService) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
		}
		project.Name = name
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.Completed != nil {
		project.Completed = *patch.Completed
	}
	if patch.AssignedUsers != nil {
		project.AssignedUsers = *patch.AssignedUsers
	}
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and every objective that references it. A second
// delete of the same id reports NotFoundError.
func (s *projectService) Delete(ctx context.Context, id string) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	return s.objectives.DeleteByProject(ctx, id)
}

func (s *projectService) AssignUser(ctx context.Context, id, userID string) (*domain.Project, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.ReferentialError{Entity: "project", Field: "user", ID: userID}
		}
		return nil, err
	}

	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(project.AssignedUsers, userID) {
		project.AssignedUsers = append(project.AssignedUsers, userID)
		project.UpdatedAt = time.Now().UTC()
		if err := s.projects.Update(ctx, project); err != nil {
			return nil, err
		}
	}
	return project, nil
}

func (s *projectService) RemoveUser(ctx context.Context, id, userID string) (*domain.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if idx := slices.Index(project.AssignedUsers, userID); idx >= 0 {
		project.AssignedUsers = slices.Delete(project.AssignedUsers, idx, idx+1)
		project.UpdatedAt = time.Now().UTC()
		if err := s.projects.Update(ctx, project); err != nil {
			return nil, err
		}
	}
	return project, nil
}
