package http

import (
	"time"

	"taskboard/internal/domain"
)

const dueDateLayout = "2006-01-02"

type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	MFAEnabled bool   `json:"mfaEnabled"`
}

// ProjectResponse mirrors the wire shape of the original API: the child
// objective ids are exposed under "objectives".
type ProjectResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Completed     bool     `json:"completed"`
	AssignedUsers []string `json:"assignedUsers"`
	Objectives    []string `json:"objectives"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

type ObjectiveResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ProjectID     string   `json:"projectId"`
	Completed     bool     `json:"completed"`
	AssignedUsers []string `json:"assignedUsers"`
	DueDate       *string  `json:"dueDate,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		MFAEnabled: user.MFAEnabled,
	}
}

func projectToResponse(project domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		Completed:     project.Completed,
		AssignedUsers: project.AssignedUsers,
		Objectives:    project.ObjectiveIDs,
		CreatedAt:     project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     project.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AssignedUsers == nil {
		resp.AssignedUsers = []string{}
	}
	if resp.Objectives == nil {
		resp.Objectives = []string{}
	}
	return resp
}

func objectiveToResponse(objective domain.Objective) ObjectiveResponse {
	resp := ObjectiveResponse{
		ID:            objective.ID,
		Title:         objective.Title,
		Description:   objective.Description,
		ProjectID:     objective.ProjectID,
		Completed:     objective.Completed,
		AssignedUsers: objective.AssignedUsers,
		CreatedAt:     objective.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     objective.UpdatedAt.Format(time.RFC3339),
	}
	if resp.AssignedUsers == nil {
		resp.AssignedUsers = []string{}
	}
	if objective.DueDate != nil {
		v := objective.DueDate.Format(dueDateLayout)
		resp.DueDate = &v
	}
	return resp
}
