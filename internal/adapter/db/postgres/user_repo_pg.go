package postgres

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "users-api/internal/domain/user"
	"users-api/pkg/errors"
	"users-api/pkg/logger"
)

// listAllUsersSQL is the only statement this service runs against users.
const listAllUsersSQL = "SELECT * FROM users"

// UserRepoPG reads the users table through the shared GORM connection pool.
type UserRepoPG struct {
	db  *gorm.DB    // pooled database handle owned by the composition root
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// ListAll returns every row of the users table in the order the database
// produced them. Failures are returned as a classified *errors.StoreError.
func (r *UserRepoPG) ListAll(ctx context.Context) ([]domain.Record, error) {
	var rows []map[string]any
	if err := r.db.WithContext(ctx).Raw(listAllUsersSQL).Scan(&rows).Error; err != nil {
		err = errors.Classify("list users", err)
		logger.WithContext(ctx, r.log).Debug("failed to list users from db",
			zap.String("kind", errors.KindOf(err).String()),
			zap.Error(err),
		)
		return nil, err
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = domain.NewRecord(row)
	}

	return records, nil
}

// Ping verifies that a connection can be borrowed from the pool.
func (r *UserRepoPG) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errors.Classify("ping", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Classify("ping", err)
	}

	return nil
}
