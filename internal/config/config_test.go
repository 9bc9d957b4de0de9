package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltmarket-backend/internal/config"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
firebase:
  project_id: "voltmarket-test"
jwt:
  secret: "test-secret-key-at-least-32-characters"
log:
  level: "debug"
  format: "json"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Equal(t, "voltmarket-test", cfg.Firebase.ProjectID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)

	// Defaults fill in what the file leaves out.
	assert.Equal(t, 60, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 5, cfg.Redis.SessionTTLMinutes)
	assert.Equal(t, "0 * * * * *", cfg.Scheduler.CompleteElapsedSessions)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FIREBASE_PROJECT_ID", "voltmarket-staging")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "voltmarket-staging", cfg.Firebase.ProjectID)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		return &config.Config{
			Server:   config.ServerConfig{Host: "localhost", Port: 8080},
			Firebase: config.FirebaseConfig{ProjectID: "voltmarket-test"},
			JWT:      config.JWTConfig{Secret: "test-secret-key-at-least-32-characters"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("bad port", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, cfg.Validate())
		cfg.Server.Port = 70000
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing project id", func(t *testing.T) {
		cfg := base()
		cfg.Firebase.ProjectID = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = "too-short"
		assert.Error(t, cfg.Validate())
	})
}
