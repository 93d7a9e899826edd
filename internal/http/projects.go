package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
)

type createProjectRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	AssignedUsers []string `json:"assignedUsers"`
}

// updateProjectRequest carries only patchable fields; identity and the
// objective list cannot be overwritten through it.
type updateProjectRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Completed     *bool     `json:"completed"`
	AssignedUsers *[]string `json:"assignedUsers"`
}

type assignUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

func (h *Handler) listProjects(c *gin.Context) {
	var (
		projects []domain.Project
		err      error
	)
	if userID := c.Query("userId"); userID != "" {
		projects, err = h.projects.ListForUser(c.Request.Context(), userID)
	} else {
		projects, err = h.projects.List(c.Request.Context())
	}
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]ProjectResponse, len(projects))
	for i := range projects {
		resp[i] = projectToResponse(projects[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) createProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), req.Name, req.Description, req.AssignedUsers)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "project": projectToResponse(*project)})
}

func (h *Handler) getProject(c *gin.Context) {
	project, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectToResponse(*project))
}

func (h *Handler) updateProject(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := domain.ProjectPatch{
		Name:          req.Name,
		Description:   req.Description,
		Completed:     req.Completed,
		AssignedUsers: req.AssignedUsers,
	}
	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "project": projectToResponse(*project)})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": id})
}

func (h *Handler) assignProjectUser(c *gin.Context) {
	var req assignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	project, err := h.projects.AssignUser(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": projectToResponse(*project)})
}

func (h *Handler) removeProjectUser(c *gin.Context) {
	project, err := h.projects.RemoveUser(c.Request.Context(), c.Param("id"), c.Param("userId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "project": projectToResponse(*project)})
}
