// Package api is the HTTP boundary: routing, auth resolution and the
// translation of error kinds into transport responses. No domain rules
// live here.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planwheel/planwheel-server/internal/alert"
	"github.com/planwheel/planwheel-server/internal/auth"
	"github.com/planwheel/planwheel-server/internal/service"
)

// Deps aggregates everything the router serves.
type Deps struct {
	Tasks    *service.TaskService
	Blocks   *service.TimeBlockService
	Accounts *service.AccountService
	Tokens   *auth.TokenManager
	Notifier *alert.Notifier
	Log      *zap.SugaredLogger
	Location *time.Location
}

// NewRouter wires middleware and routes.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := &handler{
		tasks:    deps.Tasks,
		blocks:   deps.Blocks,
		accounts: deps.Accounts,
		notifier: deps.Notifier,
		log:      deps.Log,
		loc:      deps.Location,
	}

	public := r.Group("/api")
	{
		public.POST("/auth/google", h.login(deps.Tokens))
	}

	private := r.Group("/api")
	private.Use(authMiddleware(deps.Tokens))
	{
		private.POST("/tasks", h.createTask)
		private.GET("/tasks", h.listTasks)
		private.GET("/tasks/:taskId", h.getTask)
		private.PATCH("/tasks/:taskId", h.updateTask)
		private.DELETE("/tasks/:taskId", h.deleteTask)
		private.PATCH("/tasks/:taskId/status", h.updateStatus)
		private.POST("/tasks/orders", h.saveOrder)

		private.POST("/tasks/:taskId/time-blocks", h.createTimeBlock)
		private.PATCH("/tasks/:taskId/time-blocks/:timeBlockId", h.updateTimeBlock)
		private.DELETE("/tasks/:taskId/time-blocks/:timeBlockId", h.deleteTimeBlock)
		private.GET("/time-blocks", h.periodView)

		private.GET("/user", h.profile)
		private.DELETE("/google/link", h.unlinkGoogle)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return r
}
