// Package config provides configuration loading and structs for the Selene server.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Ollama   OllamaConfig   `yaml:"ollama"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Files    FilesConfig    `yaml:"files"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// OllamaConfig holds settings for the local Ollama endpoint.
type OllamaConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (o *OllamaConfig) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// AnalysisConfig holds retry policy and generation options for the pipeline.
// Low temperature is deliberate: consistent technical analysis over variety.
type AnalysisConfig struct {
	MaxRetries        int     `yaml:"max_retries"`
	RetryDelaySeconds int     `yaml:"retry_delay_seconds"`
	Temperature       float64 `yaml:"temperature"`
	TopP              float64 `yaml:"top_p"`
	TopK              int     `yaml:"top_k"`
	NumPredict        int     `yaml:"num_predict"`
	// ContextBlockChars caps each datasheet text block merged into a prompt.
	ContextBlockChars int `yaml:"context_block_chars"`
}

// RetryDelay returns the inter-attempt delay as a duration.
func (a *AnalysisConfig) RetryDelay() time.Duration {
	return time.Duration(a.RetryDelaySeconds) * time.Second
}

// FilesConfig holds limits on accepted schematic and datasheet files.
type FilesConfig struct {
	MaxSizeMB       int      `yaml:"max_size_mb"`
	ImageExtensions []string `yaml:"image_extensions"`
}

// MaxBytes returns the file size cap in bytes.
func (f *FilesConfig) MaxBytes() int64 {
	return int64(f.MaxSizeMB) * 1024 * 1024
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled  *bool `yaml:"enabled"`
	Capacity int   `yaml:"capacity"`
}

// EnabledOrDefault returns whether the cache is enabled; defaults to true when unset.
func (c *CacheConfig) EnabledOrDefault() bool {
	if c.Enabled != nil {
		return *c.Enabled
	}
	return true
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with all defaults applied, for running without a
// config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
