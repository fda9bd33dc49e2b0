// ABOUTME: Tests for configuration loading
// ABOUTME: Verifies env-var defaults, overrides, and validation

package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("VENTAS_API_URL", "")
	t.Setenv("VENTAS_ADMIN_KEY", "")
	t.Setenv("VENTAS_HTTP_TIMEOUT", "")
	t.Setenv("VENTAS_CACHE_TTL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "http://localhost:3001" {
		t.Errorf("expected default API URL, got %s", cfg.APIURL)
	}
	if cfg.HTTPTimeout != 30 {
		t.Errorf("expected default timeout 30, got %d", cfg.HTTPTimeout)
	}
	if cfg.CacheTTL != 300 {
		t.Errorf("expected default cache TTL 300, got %d", cfg.CacheTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VENTAS_API_URL", "https://api.example.com")
	t.Setenv("VENTAS_ADMIN_KEY", "secret")
	t.Setenv("VENTAS_HTTP_TIMEOUT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.APIURL != "https://api.example.com" {
		t.Errorf("expected override URL, got %s", cfg.APIURL)
	}
	if cfg.AdminKey != "secret" {
		t.Errorf("expected admin key secret, got %s", cfg.AdminKey)
	}
	if cfg.HTTPTimeout != 10 {
		t.Errorf("expected timeout 10, got %d", cfg.HTTPTimeout)
	}
}

func TestLoad_SchemeAdded(t *testing.T) {
	t.Setenv("VENTAS_API_URL", "api.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.APIURL != "http://api.example.com" {
		t.Errorf("expected scheme added, got %s", cfg.APIURL)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("VENTAS_API_URL", "")
	t.Setenv("VENTAS_HTTP_TIMEOUT", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for timeout 0, got nil")
	}
}
