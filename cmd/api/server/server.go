package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	ginhandler "users-api/internal/adapter/gin/handler"
	"users-api/internal/adapter/gin/middleware"
	"users-api/internal/config"

	"go.uber.org/zap"
)

// Server owns the HTTP listener.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, handler *ginhandler.UserHandler, rateLimiter *middleware.RateLimiter) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP:   SetupGinServer(handler, rateLimiter, cfg.App.Addr(), cfg.App.CORSEnabled, l),
	}
}

// Start binds the listener and serves until Shutdown. A bind failure is
// returned immediately; a graceful shutdown returns nil, including one
// requested before the listener was bound.
func (s *Server) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		s.Logger.Info("shutdown requested before listening", zap.String("address", s.HTTP.Addr))
		return nil
	}

	lc := net.ListenConfig{}
	lis, err := lc.Listen(ctx, "tcp", s.HTTP.Addr)
	if err != nil {
		if ctx.Err() != nil {
			s.Logger.Info("shutdown requested before listening", zap.String("address", s.HTTP.Addr))
			return nil
		}
		return fmt.Errorf("failed to listen on %s: %w", s.HTTP.Addr, err)
	}

	return s.Serve(lis)
}

// Serve serves on an already bound listener.
func (s *Server) Serve(lis net.Listener) error {
	s.Logger.Info("server is running", zap.String("address", lis.Addr().String()))

	if err := s.HTTP.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.HTTP.Shutdown(ctx)
}
