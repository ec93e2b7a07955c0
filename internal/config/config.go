// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration read from the environment.
type Config struct {
	Port         int    // HTTP listen port
	DatabaseURL  string // PostgreSQL connection URL
	GeminiAPIKey string // API key for content generation
	StateDir     string // Directory for the local document store
	BaseURL      string // Public base URL, used to build payment callbacks
}

// NewConfig creates application configuration from environment variables.
// PORT defaults to 8080 and STATE_DIR to ./data; DATABASE_URL is required.
// GEMINI_API_KEY may be empty, in which case generation features degrade
// to their fallbacks.
func NewConfig() (*Config, error) {
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %v", err)
	}

	cfg := &Config{
		Port:         port,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		StateDir:     os.Getenv("STATE_DIR"),
		BaseURL:      os.Getenv("APP_BASE_URL"),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// normalize fills defaults and validates the configuration.
func (c *Config) normalize() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.StateDir == "" {
		c.StateDir = "./data"
	}
	if c.BaseURL == "" {
		c.BaseURL = fmt.Sprintf("http://localhost:%d", c.Port)
	}
	return nil
}
