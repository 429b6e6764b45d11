package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(contents), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func TestLoadConfigBindsNestedKeys(t *testing.T) {
	writeConfigFile(t, `
server:
  port: 9090
  read_timeout: 30s
  write_timeout: 45s
  max_header_bytes: 2097152
database:
  host: db.internal
  port: 5432
  user: medrec
  password: secret
  name: medrec
jwt:
  secret: test-secret
  expiry_hours: 72
rate_limit:
  enabled: true
  requests_per_second: 10
  burst: 20
users:
  open_registration: true
security:
  allowed_origins:
    - https://app.example.com
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 2097152, cfg.Server.MaxHeaderBytes)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 72, cfg.JWT.ExpiryHours)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, float64(10), cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.True(t, cfg.Users.OpenRegistration)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Security.AllowedOrigins)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	writeConfigFile(t, `
database:
  host: localhost
jwt:
  secret: test-secret
`)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.False(t, cfg.Users.OpenRegistration)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	writeConfigFile(t, `
database:
  host: db.internal
jwt:
  secret: test-secret
  expiry_hours: 72
`)
	t.Setenv("DB_HOST", "db.override")
	t.Setenv("JWT_EXPIRY_HOURS", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, 12, cfg.JWT.ExpiryHours)
}
