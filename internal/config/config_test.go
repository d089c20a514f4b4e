package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_YAMLAndDefaults(t *testing.T) {
	p := writeYAML(t, `
jwt:
  access_secret: a-secret
  refresh_secret: r-secret
  access_ttl: 5m
storage:
  driver: mongo
  mongo:
    uri: mongodb://localhost:27017
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "mongo", cfg.Storage.Driver)
	assert.Equal(t, "accountd", cfg.Storage.Mongo.Database)
	assert.Equal(t, 5*time.Minute, cfg.AccessTTL())
	assert.Equal(t, 240*time.Hour, cfg.RefreshTTL())
}

func TestLoad_EnvOverrides(t *testing.T) {
	p := writeYAML(t, `
jwt:
  access_secret: yaml-access
  refresh_secret: yaml-refresh
`)
	t.Setenv("ACCESS_TOKEN_SECRET", "env-access")
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, "env-access", cfg.JWT.AccessSecret)
	assert.Equal(t, "yaml-refresh", cfg.JWT.RefreshSecret)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.False(t, cfg.CookieSecure())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
}

func TestCookieSecure_DefaultsToTrue(t *testing.T) {
	p := writeYAML(t, `
jwt:
  access_secret: a-secret
  refresh_secret: r-secret
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	// Sin configurar, las cookies salen con Secure.
	assert.True(t, cfg.CookieSecure())

	// Un false explícito en el YAML sí apaga el atributo.
	p = writeYAML(t, `
jwt:
  access_secret: a-secret
  refresh_secret: r-secret
cookies:
  secure: false
`)
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.False(t, cfg.CookieSecure())
}

func TestLoad_RequiresDistinctSecrets(t *testing.T) {
	p := writeYAML(t, `
jwt:
  access_secret: same
  refresh_secret: same
`)
	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoad_MissingSecretsFails(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFileIsNotFatal(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "b")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.App.Env)
}
