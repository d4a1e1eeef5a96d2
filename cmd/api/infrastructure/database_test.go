package infrastructure

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"users-api/internal/config"
)

// closedPort returns a local TCP port with nothing listening on it.
func closedPort(t *testing.T) int {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := lis.Addr().(*net.TCPAddr).Port
	require.NoError(t, lis.Close())
	return port
}

func testConfig(port int) *config.Config {
	return &config.Config{
		DB: config.DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     port,
			User:     "app",
			Password: "secret",
			Name:     "appdb",
			SSLMode:  "disable",
		},
		Logger: config.LoggerConfig{Level: "warn"},
	}
}

func TestNewDatabase_UnreachableDoesNotFail(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := zap.New(core)

	db, err := NewDatabase(testConfig(closedPort(t)), l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = ProbeDatabase(ctx, db, l)
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("PostgreSQL connection error").Len())
	assert.Zero(t, logs.FilterMessage("Connected to PostgreSQL").Len())
}

func TestNewDatabase_InvalidDSN(t *testing.T) {
	cfg := testConfig(5432)
	cfg.DB.SSLMode = "bogus"

	_, err := NewDatabase(cfg, zap.NewNop())
	require.Error(t, err)
}

func TestProbeDatabase_Success(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDatabase(db) })

	require.NoError(t, ProbeDatabase(context.Background(), db, zap.New(core)))
	assert.Equal(t, 1, logs.FilterMessage("Connected to PostgreSQL").Len())
}

func TestCloseDatabase_Nil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}

func TestDSNUsesConfiguredPort(t *testing.T) {
	cfg := testConfig(6543)
	assert.Contains(t, cfg.DB.DSN(), "port="+strconv.Itoa(6543))
}
