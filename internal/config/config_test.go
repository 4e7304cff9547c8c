package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: "s3"
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "KIN", cfg.Assessment.DefaultLanguage)
	assert.Equal(t, 10, cfg.Assessment.DefaultCount)
	assert.Equal(t, 100, cfg.Assessment.MaxCount)
	assert.Equal(t, 70, cfg.Assessment.PassingScore)
	assert.Equal(t, 300, cfg.Redis.CategoryTTL)
}

func TestLoadConfigFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: "debug"
database:
  driver: "sqlite"
  path: "exam.db"
jwt:
  secret: "short"
  expire_hours: 2
storage:
  type: "s3"
cors:
  allowed_origins:
    - "http://localhost:3000"
assessment:
  default_language: "ENG"
  default_count: 5
  max_count: 50
  passing_score: 60
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "exam.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, AssessmentConfig{DefaultLanguage: "ENG", DefaultCount: 5, MaxCount: 50, PassingScore: 60}, cfg.Assessment)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	dir := writeConfig(t, `
storage:
  type: "s3"
`)
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{Mode: "release"},
			JWT:        JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
			Assessment: AssessmentConfig{DefaultLanguage: "KIN", DefaultCount: 10, MaxCount: 100},
		}
	}

	require.NoError(t, valid().Validate())

	short := valid()
	short.JWT.Secret = "short"
	assert.Error(t, short.Validate())

	debug := valid()
	debug.Server.Mode = "debug"
	debug.JWT.Secret = ""
	assert.NoError(t, debug.Validate())

	lang := valid()
	lang.Assessment.DefaultLanguage = "DEU"
	assert.Error(t, lang.Validate())

	counts := valid()
	counts.Assessment.DefaultCount = 200
	assert.Error(t, counts.Validate())
}
