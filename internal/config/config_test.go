package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	defaults(v)
	cfg := fromViper(v)

	require.Equal(t, "5001", cfg.Port)
	require.Equal(t, "prescriptions.db", cfg.DBDSN)
	require.Equal(t, "./web/templates", cfg.TemplatesDir)
	require.Equal(t, 60, cfg.SearchRateLimit)
	require.True(t, cfg.SeedSampleData)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "/tmp/other.db")
	t.Setenv("SEARCH_RATE_LIMIT", "-5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("SEED_SAMPLE_DATA", "false")

	cfg := Load()

	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "/tmp/other.db", cfg.DBDSN)
	require.Equal(t, 0, cfg.SearchRateLimit)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.SeedSampleData)
}
