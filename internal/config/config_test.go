package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
ollama:
  model: "llava:13b"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Ollama.Model != "llava:13b" {
		t.Errorf("model = %q, want llava:13b", cfg.Ollama.Model)
	}
	if cfg.Ollama.BaseURL == "" {
		t.Error("base_url should be defaulted when unset")
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load should fail for a missing file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail for invalid yaml")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("base_url = %q", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.Timeout() != 120*time.Second {
		t.Errorf("timeout = %v, want 120s", cfg.Ollama.Timeout())
	}
	if cfg.Analysis.MaxRetries != 3 {
		t.Errorf("max_retries = %d, want 3", cfg.Analysis.MaxRetries)
	}
	if cfg.Analysis.RetryDelay() != 2*time.Second {
		t.Errorf("retry_delay = %v, want 2s", cfg.Analysis.RetryDelay())
	}
	if cfg.Files.MaxBytes() != 50*1024*1024 {
		t.Errorf("max bytes = %d, want 50MB", cfg.Files.MaxBytes())
	}
	if !cfg.Cache.EnabledOrDefault() {
		t.Error("cache should be enabled by default")
	}
	if cfg.Cache.Capacity != 100 {
		t.Errorf("cache capacity = %d, want 100", cfg.Cache.Capacity)
	}
}

func TestCacheEnabledExplicitFalse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
cache:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.EnabledOrDefault() {
		t.Error("cache should be disabled when explicitly set to false")
	}
}
