package router

import (
	"net/http"

	"portfolio-api/internal/common"
	"portfolio-api/internal/config"
	"portfolio-api/internal/domain/blog"
	"portfolio-api/internal/domain/contact"
	"portfolio-api/internal/domain/subscription"
	"portfolio-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// New creates and configures the Gin router with all middleware and routes.
func New(
	cfg *config.Config,
	blogHandler *blog.Handler,
	subscriptionHandler *subscription.Handler,
	contactHandler *contact.Handler,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Global middleware stack (order matters)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
	))
	r.Use(middleware.Locale())

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
	)
	r.Use(rateLimiter.Middleware())

	r.Use(gin.Logger())

	r.GET("/health", healthCheck)

	// Public site routes
	api := r.Group("/api/v1")
	{
		blogHandler.RegisterRoutes(api)
		subscriptionHandler.RegisterRoutes(api)
		contactHandler.RegisterRoutes(api)
	}

	// Admin editor routes (API key required)
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.Auth(cfg.Auth.APIKeys))
	{
		blogHandler.RegisterAdminRoutes(admin)
	}

	return r
}

// healthCheck handles GET /health
func healthCheck(c *gin.Context) {
	common.Success(c, http.StatusOK, gin.H{
		"status":  "ok",
		"service": "portfolio-api",
	})
}
