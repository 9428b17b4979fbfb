package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "admin@carpolish.com", cfg.Shop.AdminEmail)
	assert.Equal(t, 10, cfg.Shop.LoginRateLimit)
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.RabbitMQ.Enabled())
}

func TestMode_MockWithoutCredentials(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ModeMock, cfg.Mode())
	assert.Equal(t, "database credentials not configured", cfg.ModeReason())
}

func TestMode_PlaceholderURLIsMock(t *testing.T) {
	t.Setenv("DATABASE_URL", "your_database_url_here")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ModeMock, cfg.Mode())
}

func TestMode_LiveWithURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/carcare")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ModeLive, cfg.Mode())
	assert.Equal(t, "postgres://u:p@db:5432/carcare", cfg.DB.DSN())
}

func TestMode_LiveWithDiscreteFields(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ModeLive, cfg.Mode())
	assert.Equal(t, "postgres://postgres:secret@db:5432/carcare?sslmode=disable", cfg.DB.DSN())
}

func TestMode_ForcedMockWins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/carcare")
	t.Setenv("STORE_FORCE_MOCK", "true")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, ModeMock, cfg.Mode())
	assert.Equal(t, "forced by STORE_FORCE_MOCK", cfg.ModeReason())
}
