// ABOUTME: Configuration loader for the ventas-admin CLI
// ABOUTME: Loads settings from environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Backend
	APIURL   string // base URL of the sales-management API
	AdminKey string // value for the x-admin-key header, optional

	// HTTP
	HTTPTimeout int // seconds, default 30

	// Reference-data cache (formas de pago, marcas, líneas)
	CacheTTL int // seconds, default 300
}

func Load() (*Config, error) {
	cfg := &Config{
		APIURL:      ensureScheme(getEnv("VENTAS_API_URL", "http://localhost:3001")),
		AdminKey:    os.Getenv("VENTAS_ADMIN_KEY"),
		HTTPTimeout: getEnvInt("VENTAS_HTTP_TIMEOUT", 30),
		CacheTTL:    getEnvInt("VENTAS_CACHE_TTL", 300),
	}

	if cfg.APIURL == "" {
		return nil, fmt.Errorf("VENTAS_API_URL is required")
	}
	if cfg.HTTPTimeout < 1 || cfg.HTTPTimeout > 600 {
		return nil, fmt.Errorf("VENTAS_HTTP_TIMEOUT must be between 1 and 600, got %d", cfg.HTTPTimeout)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("VENTAS_CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds http:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "http://" + url
	}
	return url
}
