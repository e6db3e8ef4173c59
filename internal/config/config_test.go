package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FileAndDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: test-secret
catalog:
  base_url: https://api.example.edu/v3
  api_key: abc123
program:
  name: Bachelor of Mathematics
  relevant_subjects: [math, stat]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "https://api.example.edu/v3", cfg.Catalog.BaseURL)
	assert.Equal(t, "Bachelor of Mathematics", cfg.Program.Name)
	assert.Equal(t, []string{"math", "stat"}, cfg.Program.RelevantSubjects)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: file-secret
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CATALOG_API_KEY", "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "env-key", cfg.Catalog.APIKey)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "8080"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfig_InvalidCatalogTimeout(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: s
catalog:
  timeout: soon
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog timeout")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.Password = "pw"

	assert.Equal(t,
		"postgres://postgres:pw@localhost:5432/coursemap?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
