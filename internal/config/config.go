package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// TokenScheme is the authorization header scheme the backend issued the
// session token under.
type TokenScheme string

const (
	SchemeToken  TokenScheme = "Token"
	SchemeBearer TokenScheme = "Bearer"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend connection state. Token and TokenType are the
// only values persisted across runs besides settings; they are the durable
// session credential.
type ServerConfig struct {
	URL       string `mapstructure:"url"`        // Backend base URL
	Token     string `mapstructure:"token"`      // Session token (empty = logged out)
	TokenType string `mapstructure:"token_type"` // "Token" or "Bearer"
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme       string `mapstructure:"theme"`
	PageLimit   int    `mapstructure:"page_limit"`   // limit query param on catalog pages
	DefaultView string `mapstructure:"default_view"` // "films", "foryou", "blend"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Scheme returns the configured token scheme, defaulting to "Token".
func (s ServerConfig) Scheme() TokenScheme {
	if s.TokenType == string(SchemeBearer) {
		return SchemeBearer
	}
	return SchemeToken
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:8000",
		},
		UI: UIConfig{
			Theme:       "default",
			PageLimit:   24,
			DefaultView: "films",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "filmhive", "filmhive.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "filmhive", "filmhive.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "filmhive")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "filmhive")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("FILMHIVE")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("server.url", cfg.Server.URL)
	viper.Set("server.token", cfg.Server.Token)
	viper.Set("server.token_type", cfg.Server.TokenType)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.page_limit", cfg.UI.PageLimit)
	viper.Set("ui.default_view", cfg.UI.DefaultView)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	return writeConfigFile()
}

// SaveToken persists the session token and its scheme. Last write wins;
// there is no versioning on the shared credential.
func SaveToken(token string, scheme TokenScheme) error {
	viper.Set("server.token", token)
	viper.Set("server.token_type", string(scheme))
	return writeConfigFile()
}

// ClearToken removes the persisted session credential while preserving
// all other settings.
func ClearToken() error {
	viper.Set("server.token", "")
	viper.Set("server.token_type", "")
	return writeConfigFile()
}

func writeConfigFile() error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if the backend URL is set
func (c *Config) IsConfigured() bool {
	return c.Server.URL != ""
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "filmhive", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "filmhive", "cache")
	}
}

// GetCachePath returns the cache directory path
func GetCachePath() string {
	return defaultCachePath()
}

// ClearCache removes all cached data
func ClearCache() error {
	cachePath := defaultCachePath()
	if err := os.RemoveAll(cachePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
