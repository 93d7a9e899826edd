package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
)

type createObjectiveRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	DueDate       string   `json:"dueDate"`
	AssignedUsers []string `json:"assignedUsers"`
}

type updateObjectiveRequest struct {
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Completed     *bool     `json:"completed"`
	DueDate       *string   `json:"dueDate"`
	AssignedUsers *[]string `json:"assignedUsers"`
}

func (h *Handler) listObjectives(c *gin.Context) {
	var (
		objectives []domain.Objective
		err        error
	)
	switch {
	case c.Query("userId") != "":
		objectives, err = h.objectives.ListForUser(c.Request.Context(), c.Query("userId"))
	case c.Query("projectId") != "":
		objectives, err = h.objectives.ListForProject(c.Request.Context(), c.Query("projectId"))
	default:
		objectives, err = h.objectives.List(c.Request.Context())
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, objectivesToResponse(objectives))
}

func (h *Handler) listProjectObjectives(c *gin.Context) {
	projectID := c.Param("id")

	// 404 for a missing project, matching the original endpoint
	if _, err := h.projects.Get(c.Request.Context(), projectID); err != nil {
		h.writeError(c, err)
		return
	}

	objectives, err := h.objectives.ListForProject(c.Request.Context(), projectID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, objectivesToResponse(objectives))
}

func (h *Handler) createProjectObjective(c *gin.Context) {
	var req createObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	objective, err := h.objectives.Create(c.Request.Context(), req.Title, c.Param("id"), req.Description, dueDate, req.AssignedUsers)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "objective": objectiveToResponse(*objective)})
}

func (h *Handler) getObjective(c *gin.Context) {
	objective, err := h.objectives.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, objectiveToResponse(*objective))
}

func (h *Handler) updateObjective(c *gin.Context) {
	var req updateObjectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := domain.ObjectivePatch{
		Title:         req.Title,
		Description:   req.Description,
		Completed:     req.Completed,
		AssignedUsers: req.AssignedUsers,
	}
	if req.DueDate != nil {
		dueDate, err := parseDueDate(*req.DueDate)
		if err != nil {
			h.writeError(c, err)
			return
		}
		patch.DueDate = dueDate
	}

	objective, err := h.objectives.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "objective": objectiveToResponse(*objective)})
}

func (h *Handler) deleteObjective(c *gin.Context) {
	id := c.Param("id")
	if err := h.objectives.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": id})
}

func (h *Handler) assignObjectiveUser(c *gin.Context) {
	var req assignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	objective, err := h.objectives.AssignUser(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objective": objectiveToResponse(*objective)})
}

func (h *Handler) removeObjectiveUser(c *gin.Context) {
	objective, err := h.objectives.RemoveUser(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objective": objectiveToResponse(*objective)})
}

func (h *Handler) completeObjective(c *gin.Context) {
	h.setObjectiveCompleted(c, true)
}

func (h *Handler) incompleteObjective(c *gin.Context) {
	h.setObjectiveCompleted(c, false)
}

func (h *Handler) setObjectiveCompleted(c *gin.Context, completed bool) {
	objective, err := h.objectives.SetCompleted(c.Request.Context(), c.Param("id"), completed)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "objective": objectiveToResponse(*objective)})
}

func objectivesToResponse(objectives []domain.Objective) []ObjectiveResponse {
	resp := make([]ObjectiveResponse, len(objectives))
	for i := range objectives {
		resp[i] = objectiveToResponse(objectives[i])
	}
	return resp
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(dueDateLayout, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, &domain.ValidationError{Field: "dueDate", Reason: "must be YYYY-MM-DD or RFC3339"}
}
