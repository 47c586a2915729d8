package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	assert.Equal(t, RemoteNone, cfg.Remote)
	assert.Equal(t, ":8787", cfg.ServerAddr)
	assert.Equal(t, 30*time.Second, cfg.RemoteTimeout)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"remote":"http","remote_url":"https://sync.example.com","server_addr":":9000"}`), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, RemoteHTTP, cfg.Remote)
	assert.Equal(t, "https://sync.example.com", cfg.RemoteURL)
	assert.Equal(t, ":9000", cfg.ServerAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_addr":":9000","log_level":"warn"}`), 0600))

	t.Setenv("OUTREACH_SERVER_ADDR", ":7000")
	t.Setenv("OUTREACH_REMOTE_TIMEOUT", "5s")
	t.Setenv("OUTREACH_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.ServerAddr)
	assert.Equal(t, 5*time.Second, cfg.RemoteTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Remote = RemoteHTTP
	assert.Error(t, cfg.Validate())

	cfg.RemoteURL = "http://localhost:8787"
	assert.NoError(t, cfg.Validate())

	cfg.Remote = "ftp"
	assert.Error(t, cfg.Validate())
}

func TestLoadFromRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0600))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Remote = RemoteCharm
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, RemoteCharm, loaded.Remote)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	log = newLogger(&buf, "nonsense")
	log.Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")
}
