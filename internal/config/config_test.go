package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "openai/gpt-oss-20b", cfg.Model.ID)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Model.BaseURL)
	assert.InDelta(t, 0.2, cfg.Model.Temperature, 0.0001)
	assert.Equal(t, "TruthCheck AI", cfg.UI.Title)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  allowedOrigins: ["https://example.com"]
model:
  id: llama-3.1-8b-instant
  timeout: 45s
logging:
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Model.ID)
	assert.Equal(t, 45*time.Second, cfg.Model.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Model.BaseURL)
	assert.Equal(t, 10, cfg.RateLimit.Capacity)
}

func TestLoadExplicitZeroTemperature(t *testing.T) {
	cfg, err := Load(writeConfig(t, "model:\n  temperature: 0\nserver:\n  trustProxy: true\n"))
	require.NoError(t, err)

	assert.Zero(t, cfg.Model.Temperature)
	assert.True(t, cfg.Server.TrustProxy)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TRUTHCHECK_PORT", "7070")
	t.Setenv("TRUTHCHECK_MODEL", "openai/gpt-oss-120b")
	t.Setenv("TRUTHCHECK_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("TRUTHCHECK_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\n"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "openai/gpt-oss-120b", cfg.Model.ID)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Model.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  string
	}{
		{name: "bad yaml", body: "server: [unterminated"},
		{name: "port out of range", body: "server:\n  port: 70000\n"},
		{name: "empty model", body: "model:\n  id: \"\"\n"},
		{name: "bad base url", body: "model:\n  baseURL: ftp://example.com\n"},
		{name: "bad log format", body: "logging:\n  format: xml\n"},
		{name: "console log format", body: "logging:\n  format: console\n"},
		{name: "bad port env", body: "", env: "eighty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("TRUTHCHECK_PORT", tt.env)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
