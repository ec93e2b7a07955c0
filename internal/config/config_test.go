package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/masar")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("STATE_DIR", "")
	t.Setenv("APP_BASE_URL", "")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./data", cfg.StateDir)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestNewConfigExplicit(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/masar")
	t.Setenv("STATE_DIR", "/var/lib/masar")
	t.Setenv("APP_BASE_URL", "https://masar.example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/var/lib/masar", cfg.StateDir)
	assert.Equal(t, "https://masar.example.com", cfg.BaseURL)
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		port  string
		dbURL string
	}{
		{"missing database url", "8080", ""},
		{"non-numeric port", "abc", "postgres://localhost/masar"},
		{"port out of range", "70000", "postgres://localhost/masar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			t.Setenv("DATABASE_URL", tt.dbURL)

			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
