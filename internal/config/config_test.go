// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults and duration parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: "https://feed.example.com"
  timeout: "30s"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://feed.example.com" {
		t.Errorf("unexpected base_url: %s", cfg.Server.BaseURL)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("unexpected timeout: %v", cfg.Server.Timeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("unexpected logging level: %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging format: %s", cfg.Logging.Format)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: "http://localhost:9999"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Timeout != 15*time.Second {
		t.Errorf("expected default timeout, got %v", cfg.Server.Timeout)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default logging level, got %s", cfg.Logging.Level)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("FEEDSYNC_TEST_SERVER", "https://env.example.com")

	path := writeConfig(t, `
server:
  base_url: "${FEEDSYNC_TEST_SERVER}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.BaseURL != "https://env.example.com" {
		t.Errorf("env var not expanded: %s", cfg.Server.BaseURL)
	}
}

func TestLoad_UnsetEnvVarFailsValidation(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: "${FEEDSYNC_UNSET_VAR_12345}"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for empty base_url")
	}
	if !strings.Contains(err.Error(), "base_url") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  base_url: "http://localhost:8080"
  timeout: "not-a-duration"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}
