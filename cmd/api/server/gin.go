package server

import (
	"net/http"
	"time"

	ginhandler "users-api/internal/adapter/gin/handler"
	"users-api/internal/adapter/gin/middleware"
	ginrouter "users-api/internal/adapter/gin/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupGinServer creates the HTTP server for the REST routes. No write
// timeout is set: a slow query holds its request open until it completes.
func SetupGinServer(
	handler *ginhandler.UserHandler,
	rateLimiter *middleware.RateLimiter,
	addr string,
	corsEnabled bool,
	l *zap.Logger,
) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := ginrouter.SetupRouter(handler, rateLimiter, l)

	l.Info("HTTP server configured",
		zap.String("address", addr),
		zap.Bool("cors_enabled", corsEnabled),
		zap.Bool("rate_limit_enabled", rateLimiter != nil),
	)

	return &http.Server{
		Addr:              addr,
		Handler:           ginrouter.Handler(router, corsEnabled),
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
