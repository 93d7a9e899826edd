package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/domain"
	"taskboard/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	projects   service.ProjectService
	objectives service.ObjectiveService
	jwtSecret  string
	tokenTTL   time.Duration
	logger     *logrus.Logger
}

func NewHandler(users service.UserService, projects service.ProjectService, objectives service.ObjectiveService, jwtSecret string, tokenTTL time.Duration, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:      users,
		projects:   projects,
		objectives: objectives,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/verify-mfa", h.verifyMFA)
			auth.POST("/logout", h.logout)
		}

		protected := api.Group("")
		protected.Use(h.authMiddleware())
		{
			protected.GET("/users", h.listUsers)

			protected.GET("/projects", h.listProjects)
			protected.POST("/projects", h.createProject)
			protected.GET("/projects/:id", h.getProject)
			protected.PUT("/projects/:id", h.updateProject)
			protected.DELETE("/projects/:id", h.deleteProject)
			protected.POST("/projects/:id/assign", h.assignProjectUser)
			protected.DELETE("/projects/:id/users/:userId", h.removeProjectUser)
			protected.GET("/projects/:id/objectives", h.listProjectObjectives)
			protected.POST("/projects/:id/objectives", h.createProjectObjective)

			protected.GET("/objectives", h.listObjectives)
			protected.GET("/objectives/:id", h.getObjective)
			protected.PUT("/objectives/:id", h.updateObjective)
			protected.DELETE("/objectives/:id", h.deleteObjective)
			protected.POST("/objectives/:id/assign", h.assignObjectiveUser)
			protected.DELETE("/objectives/:id/users/:userId", h.removeObjectiveUser)
			protected.POST("/objectives/:id/complete", h.completeObjective)
			protected.POST("/objectives/:id/incomplete", h.incompleteObjective)
		}

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": "ok"})
		})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// writeError maps domain failures onto response statuses. Unexpected errors
// are logged and reported generically so internals never leak to clients.
func (h *Handler) writeError(c *gin.Context, err error) {
	var (
		validation  *domain.ValidationError
		notFound    *domain.NotFoundError
		referential *domain.ReferentialError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
	case errors.As(err, &referential):
		c.JSON(http.StatusNotFound, gin.H{"error": referential.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrMFARequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
