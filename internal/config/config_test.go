package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// helper to construct a config with a clean environment.
func newConfigWithEnv(t *testing.T, env map[string]string) *Config {
	t.Helper()

	// Ensure godotenv does not load a developer's local .env
	t.Setenv("GODOTENV_DISABLE", "1")

	// Clear all relevant variables first (empty → defaults will be used)
	keys := []string{
		"TODO_API_BASE_URL", "TODO_HTTP_TIMEOUT", "TODO_TOAST_DURATION", "TODO_TOAST_THROTTLE",
		"TODO_TOAST_LIMIT", "TODO_TIMEZONE", "VERBOSE",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
	// Never read the developer's real config file
	t.Setenv("TODO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	// Apply overrides for this test
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	return cfg
}

func TestNewConfig_Defaults_NoEnv(t *testing.T) {
	cfg := newConfigWithEnv(t, map[string]string{})

	if cfg.APIBaseURL != "http://localhost:8000/api" {
		t.Errorf("expected default APIBaseURL, got %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected default timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.ToastDuration != 3*time.Second {
		t.Errorf("expected default toast duration, got %s", cfg.ToastDuration)
	}
	if cfg.ToastThrottle != time.Second {
		t.Errorf("expected default toast throttle, got %s", cfg.ToastThrottle)
	}
	if cfg.ToastLimit != 3 {
		t.Errorf("expected default toast limit, got %d", cfg.ToastLimit)
	}
	if cfg.Timezone != "" {
		t.Errorf("expected local timezone by default, got %q", cfg.Timezone)
	}
	if cfg.Verbose {
		t.Errorf("expected Verbose false by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestNewConfig_WithEnvValues(t *testing.T) {
	cfg := newConfigWithEnv(t, map[string]string{
		"TODO_API_BASE_URL":   "https://todo.example.com/api/",
		"TODO_HTTP_TIMEOUT":   "5s",
		"TODO_TOAST_DURATION": "4500",
		"TODO_TOAST_THROTTLE": "250ms",
		"TODO_TOAST_LIMIT":    "5",
		"TODO_TIMEZONE":       "UTC",
		"VERBOSE":             "true",
	})

	if cfg.APIBaseURL != "https://todo.example.com/api/" {
		t.Errorf("APIBaseURL mismatch: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout mismatch: %s", cfg.HTTPTimeout)
	}
	if cfg.ToastDuration != 4500*time.Millisecond {
		t.Errorf("ToastDuration mismatch: %s", cfg.ToastDuration)
	}
	if cfg.ToastThrottle != 250*time.Millisecond {
		t.Errorf("ToastThrottle mismatch: %s", cfg.ToastThrottle)
	}
	if cfg.ToastLimit != 5 {
		t.Errorf("ToastLimit mismatch: %d", cfg.ToastLimit)
	}
	if !cfg.Verbose {
		t.Errorf("expected Verbose true")
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestNewConfig_YAMLFileThenEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `api:
  base_url: http://file.example:9000/api
  timeout: 10s
toast:
  duration: 2s
  throttle: 0s
  limit: 1
timezone: Europe/Berlin
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GODOTENV_DISABLE", "1")
	for _, k := range []string{"TODO_API_BASE_URL", "TODO_HTTP_TIMEOUT", "TODO_TOAST_DURATION", "TODO_TOAST_THROTTLE", "TODO_TOAST_LIMIT", "TODO_TIMEZONE", "VERBOSE"} {
		t.Setenv(k, "")
	}
	t.Setenv("TODO_CONFIG", path)
	t.Setenv("TODO_TOAST_LIMIT", "4")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}

	if cfg.APIBaseURL != "http://file.example:9000/api" {
		t.Errorf("APIBaseURL from file mismatch: %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout from file mismatch: %s", cfg.HTTPTimeout)
	}
	if cfg.ToastDuration != 2*time.Second {
		t.Errorf("ToastDuration from file mismatch: %s", cfg.ToastDuration)
	}
	if cfg.ToastThrottle != 0 {
		t.Errorf("ToastThrottle from file should be 0, got %s", cfg.ToastThrottle)
	}
	if cfg.ToastLimit != 4 {
		t.Errorf("env should override file limit, got %d", cfg.ToastLimit)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone from file mismatch: %q", cfg.Timezone)
	}
}

func TestNewConfig_BrokenYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GODOTENV_DISABLE", "1")
	t.Setenv("TODO_CONFIG", path)

	if _, err := NewConfig(); err == nil || !strings.Contains(err.Error(), "config-Datei") {
		t.Fatalf("expected config file error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no scheme", func(c *Config) { c.APIBaseURL = "localhost:8000" }, "API URL ungültig"},
		{"ftp", func(c *Config) { c.APIBaseURL = "ftp://example.com" }, "API URL ungültig"},
		{"negative throttle", func(c *Config) { c.ToastThrottle = -time.Second }, "nicht negativ"},
		{"zero limit", func(c *Config) { c.ToastLimit = 0 }, "toast-Limit"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "zeitzone ungültig"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetAPIBaseURL_TrimSuffix(t *testing.T) {
	cfg := newConfigWithEnv(t, map[string]string{
		"TODO_API_BASE_URL": "https://example.com/api/",
	})

	got := cfg.GetAPIBaseURL()
	want := "https://example.com/api"
	if got != want {
		t.Fatalf("GetAPIBaseURL(): got %q, want %q", got, want)
	}
}
