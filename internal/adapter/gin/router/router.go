package router

import (
	"net/http"

	"users-api/internal/adapter/gin/handler"
	"users-api/internal/adapter/gin/middleware"
	"users-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter may be nil.
func SetupRouter(
	userHandler *handler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.RateLimit(rateLimiter))
	router.Use(middleware.JSONBody(middleware.DefaultBodyLimit))

	router.GET("/", userHandler.Root)
	router.GET("/users", userHandler.ListUsers)
	router.GET("/health", userHandler.Health)

	return router
}

// Handler returns the engine as an http.Handler, wrapped with permissive
// CORS when corsEnabled is set.
func Handler(engine *gin.Engine, corsEnabled bool) http.Handler {
	if corsEnabled {
		return middleware.CORS(engine)
	}
	return engine
}
