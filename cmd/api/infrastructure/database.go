package infrastructure

import (
	"context"
	"fmt"

	"users-api/internal/config"
	"users-api/pkg/logger"

	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase builds the PostgreSQL connection pool. No connection is opened
// here, so an unreachable database does not fail startup; only a DSN that
// cannot be parsed does.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	gormLogger := logger.NewGormLogger(l, cfg.Logger.SlowQuerySeconds, cfg.Logger.Level)

	db, err := gorm.Open(pgdriver.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:               gormLogger,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	l.Info("database pool created",
		zap.String("host", cfg.DB.Host),
		zap.Int("port", cfg.DB.Port),
		zap.String("database", cfg.DB.Name),
	)

	return db, nil
}

// ProbeDatabase borrows one connection to report whether the database is
// reachable. The outcome is only logged; it never retries.
func ProbeDatabase(ctx context.Context, db *gorm.DB, l *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		l.Error("PostgreSQL connection error", zap.Error(err))
		return err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		l.Error("PostgreSQL connection error", zap.Error(err))
		return err
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		l.Error("PostgreSQL connection error", zap.Error(err))
		return err
	}

	l.Info("Connected to PostgreSQL")
	return nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
