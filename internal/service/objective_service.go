package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// ObjectiveService coordinates objective level operations. Creating or
// deleting an objective updates the parent project's objective list in the
// same operation, so the two never diverge between calls.
type ObjectiveService interface {
	Create(ctx context.Context, title, projectID, description string, dueDate *time.Time, assignedUsers []string) (*domain.Objective, error)
	Get(ctx context.Context, id string) (*domain.Objective, error)
	List(ctx context.Context) ([]domain.Objective, error)
	ListForProject(ctx context.Context, projectID string) ([]domain.Objective, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Objective, error)
	Update(ctx context.Context, id string, patch domain.ObjectivePatch) (*domain.Objective, error)
	Delete(ctx context.Context, id string) error
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Objective, error)
	AssignUser(ctx context.Context, id, userID string) (*domain.Objective, error)
	RemoveUser(ctx context.Context, id, userID string) (*domain.Objective, error)
}

type objectiveService struct {
	objectives repository.ObjectiveRepository
	projects   repository.ProjectRepository
	users      repository.UserRepository
}

func NewObjectiveService(objectives repository.ObjectiveRepository, projects repository.ProjectRepository, users repository.UserRepository) ObjectiveService {
	return &objectiveService{
		objectives: objectives,
		projects:   projects,
		users:      users,
	}
}

func (s *objectiveService) Create(ctx context.Context, title, projectID, description string, dueDate *time.Time, assignedUsers []string) (*domain.Objective, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(projectID) == "" {
		return nil, &domain.ValidationError{Field: "projectId", Reason: "must not be empty"}
	}

	// resolve the parent before persisting anything; nothing may be written
	// against a project that does not exist
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.ReferentialError{Entity: "objective", Field: "project", ID: projectID}
		}
		return nil, err
	}

	objective := &domain.Objective{
		Title:         title,
		Description:   description,
		ProjectID:     projectID,
		Completed:     false,
		AssignedUsers: assignedUsers,
		DueDate:       dueDate,
	}
	if objective.AssignedUsers == nil {
		objective.AssignedUsers = []string{}
	}

	if _, err := s.objectives.Create(ctx, objective); err != nil {
		return nil, err
	}

	project.ObjectiveIDs = append(project.ObjectiveIDs, objective.ID)
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return objective, nil
}

func (s *objectiveService) Get(ctx context.Context, id string) (*domain.Objective, error) {
	return s.objectives.Get(ctx, id)
}

func (s *objectiveService) List(ctx context.Context) ([]domain.Objective, error) {
	return s.objectives.List(ctx)
}

func (s *objectiveService) ListForProject(ctx context.Context, projectID string) ([]domain.Objective, error) {
	return s.objectives.ListByProject(ctx, projectID)
}

func (s *objectiveService) ListForUser(ctx context.Context, userID string) ([]domain.Objective, error) {
	return s.objectives.ListByUser(ctx, userID)
}

func (s *objectiveService) Update(ctx context.Context, id string, patch domain.ObjectivePatch) (*domain.Objective, error) {
	objective, err := s.objectives.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, &domain.ValidationError{Field: "title", Reason: "must not be empty"}
		}
		objective.Title = title
	}
	if patch.Description != nil {
		objective.Description = *patch.Description
	}
	if patch.Completed != nil {
		objective.Completed = *patch.Completed
	}
	if patch.AssignedUsers != nil {
		objective.AssignedUsers = *patch.AssignedUsers
	}
	if patch.DueDate != nil {
		objective.DueDate = patch.DueDate
	}
	objective.UpdatedAt = time.Now().UTC()

	if err := s.objectives.Update(ctx, objective); err != nil {
		return nil, err
	}
	return objective, nil
}

// Delete removes the objective and drops its id from the former parent's
// objective list.
func (s *objectiveService) Delete(ctx context.Context, id string) error {
	objective, err := s.objectives.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.objectives.Delete(ctx, id); err != nil {
		return err
	}

	project, err := s.projects.Get(ctx, objective.ProjectID)
	if err != nil {
		// parent already gone, nothing to unlink
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}
	if idx := slices.Index(project.ObjectiveIDs, id); idx >= 0 {
		project.ObjectiveIDs = slices.Delete(project.ObjectiveIDs, idx, idx+1)
		project.UpdatedAt = time.Now().UTC()
		if err := s.projects.Update(ctx, project); err != nil {
			return err
		}
	}
	return nil
}

func (s *objectiveService) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Objective, error) {
	return s.Update(ctx, id, domain.ObjectivePatch{Completed: &completed})
}

func (s *objectiveService) AssignUser(ctx context.Context, id, userID string) (*domain.Objective, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if domain.IsNotFound(err) {
			return nil, &domain.ReferentialError{Entity: "objective", Field: "user", ID: userID}
		}
		return nil, err
	}

	objective, err := s.objectives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(objective.AssignedUsers, userID) {
		objective.AssignedUsers = append(objective.AssignedUsers, userID)
		objective.UpdatedAt = time.Now().UTC()
		if err := s.objectives.Update(ctx, objective); err != nil {
			return nil, err
		}
	}
	return objective, nil
}

func (s *objectiveService) RemoveUser(ctx context.Context, id, userID string) (*domain.Objective, error) {
	objective, err := s.objectives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if idx := slices.Index(objective.AssignedUsers, userID); idx >= 0 {
		objective.AssignedUsers = slices.Delete(objective.AssignedUsers, idx, idx+1)
		objective.UpdatedAt = time.Now().UTC()
		if err := s.objectives.Update(ctx, objective); err != nil {
			return nil, err
		}
	}
	return objective, nil
}
