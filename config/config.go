// Package config provides configuration management for the natlas service.
// It supports loading configuration from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultHost                = "0.0.0.0"
	DefaultPort                = 8000
	DefaultSimilarityThreshold = 0.80
	DefaultSnippetWindow       = 100
	DefaultASRModel            = "NCAIR1/NigerianAccentedEnglish"
	DefaultTempAudioDir        = "./temp_audio"
	DefaultLogLevel            = "info"
)

// MatchingConfig holds the tunables for the fuzzy matching cores.
type MatchingConfig struct {
	// SimilarityThreshold is the minimum normalized edit-distance similarity
	// for a fuzzy match, in (0, 1].
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// SnippetWindow is the width in characters of search result snippets.
	SnippetWindow int `yaml:"snippet_window"`

	// PhoneticEnabled toggles the phonetic (soundalike) matching pass.
	PhoneticEnabled bool `yaml:"phonetic_enabled"`
}

// ASRConfig holds settings for the external transcription model.
type ASRConfig struct {
	// Endpoint is the base URL of the ASR inference server.
	Endpoint string `yaml:"endpoint"`

	// Model is the ASR model identifier requested from the endpoint.
	Model string `yaml:"model"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Config is the top-level service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Matching MatchingConfig `yaml:"matching"`
	ASR      ASRConfig      `yaml:"asr"`

	// TempAudioDir is where extracted audio files are written before
	// transcription. Created on demand.
	TempAudioDir string `yaml:"temp_audio_dir"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// LogJSON enables JSON log output (production).
	LogJSON bool `yaml:"log_json"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Matching: MatchingConfig{
			SimilarityThreshold: DefaultSimilarityThreshold,
			SnippetWindow:       DefaultSnippetWindow,
			PhoneticEnabled:     true,
		},
		ASR: ASRConfig{
			Model: DefaultASRModel,
		},
		TempAudioDir: DefaultTempAudioDir,
		LogLevel:     DefaultLogLevel,
	}
}

// Load loads the configuration. Configuration is loaded in this order
// (later sources override earlier):
// 1. Default values
// 2. Config file (path argument; skipped when the file does not exist)
// 3. Environment variables (NATLAS_*)
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := loadFromFile(cfg, path); err != nil {
				return nil, fmt.Errorf("loading config file: %w", err)
			}
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("NATLAS_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("NATLAS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("NATLAS_SIMILARITY_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Matching.SimilarityThreshold = f
		}
	}
	if v := os.Getenv("NATLAS_SNIPPET_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Matching.SnippetWindow = n
		}
	}
	if v := os.Getenv("NATLAS_PHONETIC_ENABLED"); v != "" {
		cfg.Matching.PhoneticEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("NATLAS_ASR_ENDPOINT"); v != "" {
		cfg.ASR.Endpoint = v
	}
	if v := os.Getenv("NATLAS_ASR_MODEL"); v != "" {
		cfg.ASR.Model = v
	}
	if v := os.Getenv("NATLAS_TEMP_AUDIO_DIR"); v != "" {
		cfg.TempAudioDir = v
	}
	if v := os.Getenv("NATLAS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("NATLAS_LOG_JSON"); v == "true" || v == "1" {
		cfg.LogJSON = true
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Matching.SimilarityThreshold <= 0 || c.Matching.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0, 1], got %v", c.Matching.SimilarityThreshold)
	}
	if c.Matching.SnippetWindow < 20 {
		return fmt.Errorf("snippet_window must be at least 20, got %d", c.Matching.SnippetWindow)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}

// EnsureTempAudioDir creates the temp audio directory if it does not exist
// and returns its path.
func (c *Config) EnsureTempAudioDir() (string, error) {
	if err := os.MkdirAll(c.TempAudioDir, 0o755); err != nil {
		return "", fmt.Errorf("creating temp audio dir: %w", err)
	}
	return c.TempAudioDir, nil
}
