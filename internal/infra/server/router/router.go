// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/spendly/backend/internal/integration/entrypoint/controller"
	"github.com/spendly/backend/internal/integration/entrypoint/middleware"
)

const apiPrefix = "/api/v1"

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	spendController       *controller.SpendController
	goalController        *controller.GoalController
	suggestionRateLimiter *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
	allowedOrigins        []string
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	spendController *controller.SpendController,
	goalController *controller.GoalController,
	suggestionRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
	allowedOrigins []string,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		spendController:       spendController,
		goalController:        goalController,
		suggestionRateLimiter: suggestionRateLimiter,
		authMiddleware:        authMiddleware,
		allowedOrigins:        allowedOrigins,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()
	r.engine.HandleMethodNotAllowed = true
	r.engine.Use(cors.New(r.corsConfig()))

	// Unsupported methods are answered before any authentication runs
	r.engine.NoMethod(func(c *gin.Context) {
		controller.MethodNotAllowed(resourceForPath(c.Request.URL.Path))(c)
	})
	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	for _, origin := range r.allowedOrigins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	cfg.AllowOrigins = r.allowedOrigins
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	return cfg
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every resource route requires authentication.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group(apiPrefix)
	v1.Use(r.authMiddleware.Authenticate())
	{
		// Category routes
		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.POST("", r.categoryController.Create)
			categories.PUT("", r.categoryController.Update)
			categories.DELETE("", r.categoryController.Delete)
		}

		// Spend routes
		spends := v1.Group("/spends")
		{
			spends.GET("", r.spendController.List)
			spends.POST("", r.spendController.Create)
			spends.PUT("", r.spendController.Update)
			spends.DELETE("", r.spendController.Delete)
			spends.POST("/suggest-category",
				r.suggestionRateLimiter.Middleware("suggestion"),
				r.spendController.SuggestCategory,
			)
		}

		// Goal routes
		goals := v1.Group("/goals")
		{
			goals.GET("", r.goalController.List)
			goals.POST("", r.goalController.Create)
			goals.PUT("", r.goalController.Update)
			goals.DELETE("", r.goalController.Delete)
			goals.GET("/contributions/:goalId", r.goalController.ListContributions)
			goals.POST("/contributions/:goalId", r.goalController.AddContribution)
		}
	}
}

// resourceForPath returns the response key used by the resource at path.
func resourceForPath(path string) string {
	path = strings.TrimSuffix(strings.TrimPrefix(path, apiPrefix), "/")
	switch {
	case strings.HasPrefix(path, "/categories"):
		return "category"
	case strings.HasPrefix(path, "/spends/suggest-category"):
		return "suggestion"
	case strings.HasPrefix(path, "/spends"):
		return "spend"
	case strings.HasPrefix(path, "/goals/contributions"):
		return "contribution"
	case strings.HasPrefix(path, "/goals"):
		return "goal"
	default:
		return "data"
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
