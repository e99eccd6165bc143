package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: "9090"
  mode: debug
database:
  host: db.local
  port: 3306
  user: edu
  dbname: eduboost
jwt:
  secret: short
  expire_hours: 12
grading:
  repeat_threshold: 45
storage:
  type: minio
  minio_bucket: uploads
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, sampleYAML)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, "utf8mb4", cfg.Database.Charset)
	assert.Equal(t, 12*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, 45.0, cfg.Grading.RepeatThreshold)
	assert.Equal(t, 40.0, cfg.Grading.MarksCompletedThreshold)
	assert.Equal(t, 10*time.Minute, cfg.Grading.CacheTTL())
	assert.Equal(t, "minio", cfg.Storage.Type)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.ConfigFile)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	t.Setenv("DATABASE_HOST", "db.override")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_DRIVER", "memory")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "db.override", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
}

func TestLoadConfigReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	t.Setenv("SERVER_MODE", "release")

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret is too short")
}

func TestValidateGradingThresholds(t *testing.T) {
	cfg := &Config{Grading: GradingConfig{RepeatThreshold: 120}}
	assert.Error(t, cfg.Validate())

	cfg.Grading = GradingConfig{RepeatThreshold: 50, MarksCompletedThreshold: 40}
	assert.NoError(t, cfg.Validate())
}

func TestValidateDatabaseDriver(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "postgres"}}
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = DriverMemory
	assert.NoError(t, cfg.Validate())
}
