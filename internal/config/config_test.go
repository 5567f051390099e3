package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.TextModel)
	assert.Equal(t, "socialflow:schedule", cfg.Schedule.Namespace)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9090
  env: production
gemini:
  text_model: other-model
`), 0o644))

	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port) // env wins over file
	assert.Equal(t, "production", cfg.Server.Env)
	assert.Equal(t, "other-model", cfg.Gemini.TextModel)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "sf"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = 3306
	cfg.Database.Name = "socialflow"

	assert.Equal(t, "sf:pw@tcp(db:3306)/socialflow?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}
