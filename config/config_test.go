package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("MONGODB_CONNECTION_URI=mongodb://db:27017\nCRON_SECRET=s3cret\n"), 0o600))

	t.Setenv("MONGODB_CONNECTION_URI", "")
	os.Unsetenv("MONGODB_CONNECTION_URI")
	t.Setenv("CRON_SECRET", "from-process")

	cfg, err := NewConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://db:27017", cfg.MongoDB_ConnectionURI)
	// Biến môi trường của process không bị file ghi đè
	assert.Equal(t, "from-process", cfg.CronSecret)
	assert.Equal(t, "session", cfg.SessionCookieName)
	assert.Equal(t, "mock", cfg.SyncProvider)
	assert.Equal(t, "60-M", cfg.AnalyticsRateLimit)
}

func TestNewConfig_MissingRequired(t *testing.T) {
	t.Setenv("MONGODB_CONNECTION_URI", "")
	os.Unsetenv("MONGODB_CONNECTION_URI")

	_, err := NewConfig(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
