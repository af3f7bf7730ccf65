package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerem-Haeger/filmhive/internal/config"
)

func TestSchemeDefaultsToToken(t *testing.T) {
	tests := []struct {
		name      string
		tokenType string
		want      config.TokenScheme
	}{
		{"empty", "", config.SchemeToken},
		{"explicit token", "Token", config.SchemeToken},
		{"bearer", "Bearer", config.SchemeBearer},
		{"garbage falls back", "Basic", config.SchemeToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.ServerConfig{TokenType: tt.tokenType}
			assert.Equal(t, tt.want, s.Scheme())
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.Equal(t, 24, cfg.UI.PageLimit)
	assert.True(t, cfg.IsConfigured())

	cfg.Server.URL = ""
	assert.False(t, cfg.IsConfigured())
}

func TestSaveAndClearToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, config.SaveToken("tok-9", config.SchemeBearer))

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(home, ".config", "filmhive", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tok-9")
	assert.Contains(t, string(data), "Bearer")

	require.NoError(t, config.ClearToken())
	data, err = os.ReadFile(filepath.Join(home, ".config", "filmhive", "config.yaml"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tok-9")
}
