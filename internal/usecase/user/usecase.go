package user

import (
	"context"

	"go.uber.org/zap"

	domain "users-api/internal/domain/user"
	"users-api/pkg/logger"
)

// Repository abstracts read access to the users table.
type Repository interface {
	ListAll(ctx context.Context) ([]domain.Record, error) // every row, database order
	Ping(ctx context.Context) error                       // pool reachability
}

// Service implements Usecase on top of a Repository.
type Service struct {
	repo Repository
	log  *zap.Logger
}

// New creates a new Service.
func New(r Repository, log *zap.Logger) *Service {
	return &Service{repo: r, log: log}
}

// ListUsers returns all user records. An empty table yields an empty,
// non-nil slice. Repository errors are returned as is; the handler logs them.
func (s *Service) ListUsers(ctx context.Context) (*ListUsersResponse, error) {
	log := logger.WithContext(ctx, s.log)

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []domain.Record{}
	}

	log.Debug("listed users", zap.Int("count", len(records)))
	return &ListUsersResponse{Users: records}, nil
}

// CheckHealth reports whether the database can currently be reached.
func (s *Service) CheckHealth(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		logger.WithContext(ctx, s.log).Debug("database health check failed", zap.Error(err))
		return err
	}
	return nil
}
