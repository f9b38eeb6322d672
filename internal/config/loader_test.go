package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL default: %q", cfg.Service.BaseURL)
	}
	if cfg.Serve.Host != "127.0.0.1" || cfg.Serve.Port != 8080 {
		t.Errorf("serve defaults: %s:%d", cfg.Serve.Host, cfg.Serve.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log level default: %q", cfg.Log.Level)
	}
}

func TestLoadStripsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	content := `{
	// where the task service lives
	"service": {
		"base_url": "http://tasks.internal:9000",
	},
	"serve": {
		"port": 9000, /* matches base_url */
	},
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Service.BaseURL != "http://tasks.internal:9000" {
		t.Errorf("BaseURL: %q", cfg.Service.BaseURL)
	}
	if cfg.Serve.Port != 9000 {
		t.Errorf("Port: %d", cfg.Serve.Port)
	}
	// Unset fields still get defaults.
	if cfg.Serve.Host != "127.0.0.1" {
		t.Errorf("Host default: %q", cfg.Serve.Host)
	}
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.jsonc")
	if err := os.WriteFile(path, []byte("{not json at all"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
