package postgres

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"users-api/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection to :memory: is a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func createUsersTable(t *testing.T, db *gorm.DB) {
	require.NoError(t, db.Exec(`CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL
	)`).Error)
}

func TestUserRepoPG_ListAll(t *testing.T) {
	db := setupTestDB(t)
	createUsersTable(t, db)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	require.NoError(t, db.Exec(`INSERT INTO users (id, name, email) VALUES
		(1, 'John Doe', 'john@example.com'),
		(2, 'Jane Smith', 'jane@example.com'),
		(3, 'Admin User', 'admin@example.com')`).Error)

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	emails := make([]any, 0, len(records))
	for _, rec := range records {
		assert.ElementsMatch(t, []string{"id", "name", "email"}, rec.Columns())
		emails = append(emails, rec["email"])
	}
	assert.ElementsMatch(t, []any{"john@example.com", "jane@example.com", "admin@example.com"}, emails)
}

func TestUserRepoPG_ListAll_EmptyTable(t *testing.T) {
	db := setupTestDB(t)
	createUsersTable(t, db)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	records, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUserRepoPG_ListAll_MissingTable(t *testing.T) {
	db := setupTestDB(t)
	core, logs := observer.New(zapcore.DebugLevel)
	repo := NewUserRepoPG(db, zap.New(core))

	records, err := repo.ListAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, records)

	var se *errors.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list users", se.Op)

	// the handler owns the error-level entry
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to list users from db").Len())
}

func TestUserRepoPG_ListAll_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	createUsersTable(t, db)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ListAll(ctx)
	require.Error(t, err)
	assert.Equal(t, errors.KindCanceled, errors.KindOf(err))
}

func TestUserRepoPG_Ping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepoPG(db, zaptest.NewLogger(t))

	assert.NoError(t, repo.Ping(context.Background()))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	assert.Error(t, repo.Ping(context.Background()))
}
