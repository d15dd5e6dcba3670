package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rajtharani77/BlackBuck-pro/internal/auth"
	"github.com/rajtharani77/BlackBuck-pro/internal/handlers"
	"github.com/rajtharani77/BlackBuck-pro/internal/middleware"
	"github.com/rajtharani77/BlackBuck-pro/internal/policy"
	"github.com/rajtharani77/BlackBuck-pro/internal/types"
)

func New(database *gorm.DB, tokens *auth.TokenService, cookieDomain string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	h := handlers.New(database, tokens, cookieDomain)
	requireAuth := middleware.RequireAuth(database, tokens)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", requireAuth, h.TaskBoardSocket)

		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", h.Register)
			authRoutes.POST("/login", h.Login)
			authRoutes.POST("/logout", h.Logout)
			authRoutes.GET("/me", requireAuth, h.Me)
		}

		api.GET("/users", requireAuth, h.ListUsers)

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", middleware.Authorize(policy.CanCreateProject), h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:id", h.GetProject)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.POST("", middleware.Authorize(policy.CanCreateTask), h.CreateTask)
			// :id is the owning project here; gin requires one wildcard
			// name per segment position.
			tasks.GET("/:id", h.ListTasks)
			tasks.PATCH("/:id/status", h.UpdateTaskStatus)
		}

		api.GET("/dashboard/stats", requireAuth, h.DashboardStats)
	}

	return r
}
