package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/dmedarov/villageride/internal/config"
	"github.com/dmedarov/villageride/internal/handler"
	"github.com/dmedarov/villageride/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	BoardHandler      *handler.BoardHandler
	SubmissionHandler *handler.SubmissionHandler
	AdminHandler      *handler.AdminHandler
	AdminConfig       config.AdminConfig
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public board routes.
	router.GET("/", deps.BoardHandler.Index)
	router.GET("/search_rides", deps.BoardHandler.SearchRides)
	router.GET("/search_requests", deps.BoardHandler.SearchRequests)
	adminTag := middleware.AdminOptional(deps.AdminConfig.SessionSecret)
	router.POST("/offer_ride", adminTag, deps.SubmissionHandler.OfferRide)
	router.POST("/request_ride", adminTag, deps.SubmissionHandler.RequestRide)

	// Admin routes.
	admin := router.Group("/admin")
	{
		admin.POST("/login", deps.AdminHandler.Login)
		admin.POST("/logout", deps.AdminHandler.Logout)

		gated := admin.Group("")
		gated.Use(middleware.AdminRequired(deps.AdminConfig.SessionSecret))
		{
			gated.GET("", deps.AdminHandler.Dashboard)
			gated.GET("/rides", deps.AdminHandler.Rides)
			gated.GET("/requests", deps.AdminHandler.Requests)
			gated.GET("/logs", deps.AdminHandler.Logs)
		}
	}

	return router
}
