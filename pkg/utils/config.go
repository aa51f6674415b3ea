package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds everything the gateway and the CLI need. All business
// logic lives behind the three upstream URLs; nothing here points at
// local storage except the CLI snapshot cache.
type Config struct {
	// Upstream services
	APIBaseURL  string // backend REST API
	AuthBaseURL string // auth service
	AIBaseURL   string // chat/tool-calling backend

	// Gateway
	ServerPort    string
	SessionSecret string // signs the gateway session cookie

	// CLI paths
	TokenFile string // $CONFIG_DIR/session.json
	CacheFile string // $CONFIG_DIR/cache.db

	LogLevel string
}

// Load reads configuration from a .env file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// .env is optional
	_ = viper.ReadInConfig()

	viper.SetDefault("PLAYDAMNIT_API_URL", "http://localhost:3030/api")
	viper.SetDefault("PLAYDAMNIT_AUTH_URL", "http://localhost:3030/api/auth")
	viper.SetDefault("PLAYDAMNIT_AI_URL", "http://localhost:3031")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".playdamnit")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &Config{
		APIBaseURL:    viper.GetString("PLAYDAMNIT_API_URL"),
		AuthBaseURL:   viper.GetString("PLAYDAMNIT_AUTH_URL"),
		AIBaseURL:     viper.GetString("PLAYDAMNIT_AI_URL"),
		ServerPort:    viper.GetString("SERVER_PORT"),
		SessionSecret: viper.GetString("SESSION_SECRET"),
		TokenFile:     filepath.Join(configDir, "session.json"),
		CacheFile:     filepath.Join(configDir, "cache.db"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
	}, nil
}

// ValidateForServer enforces the fields only the gateway needs; the CLI
// tolerates a missing session secret.
func (c *Config) ValidateForServer() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.APIBaseURL == "" {
		return fmt.Errorf("PLAYDAMNIT_API_URL is required")
	}
	if c.AuthBaseURL == "" {
		return fmt.Errorf("PLAYDAMNIT_AUTH_URL is required")
	}
	return nil
}
