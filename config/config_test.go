package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0.0.0.0:8000", cfg.Server.Addr())
	assert.Equal(t, 0.80, cfg.Matching.SimilarityThreshold)
	assert.Equal(t, 100, cfg.Matching.SnippetWindow)
	assert.True(t, cfg.Matching.PhoneticEnabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultSimilarityThreshold, cfg.Matching.SimilarityThreshold)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natlas.yaml")
	content := `
server:
  host: 127.0.0.1
  port: 9090
matching:
  similarity_threshold: 0.85
  snippet_window: 120
  phonetic_enabled: false
asr:
  endpoint: http://asr.local:5000
  model: openai/whisper-small
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 0.85, cfg.Matching.SimilarityThreshold)
	assert.Equal(t, 120, cfg.Matching.SnippetWindow)
	assert.False(t, cfg.Matching.PhoneticEnabled)
	assert.Equal(t, "http://asr.local:5000", cfg.ASR.Endpoint)
	assert.Equal(t, "openai/whisper-small", cfg.ASR.Model)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natlas.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))

	t.Setenv("NATLAS_PORT", "7070")
	t.Setenv("NATLAS_SIMILARITY_THRESHOLD", "0.9")
	t.Setenv("NATLAS_PHONETIC_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 0.9, cfg.Matching.SimilarityThreshold)
	assert.False(t, cfg.Matching.PhoneticEnabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero threshold", func(c *Config) { c.Matching.SimilarityThreshold = 0 }, false},
		{"threshold above one", func(c *Config) { c.Matching.SimilarityThreshold = 1.5 }, false},
		{"tiny snippet", func(c *Config) { c.Matching.SnippetWindow = 5 }, false},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestEnsureTempAudioDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TempAudioDir = filepath.Join(t.TempDir(), "audio")

	dir, err := cfg.EnsureTempAudioDir()
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
