// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir          string // Base directory for the cache database (always absolute)
	CoinGeckoBaseURL string // Override for the market data API (used in tests)
	LogLevel         string
	Port             int
	DevMode          bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("CRYPTOSAGE_DATA_DIR", "")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".cryptosage")
	}

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory to absolute: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := strconv.Atoi(getEnv("CRYPTOSAGE_PORT", "8090"))
	if err != nil {
		return nil, fmt.Errorf("invalid CRYPTOSAGE_PORT: %w", err)
	}

	return &Config{
		DataDir:          absDataDir,
		CoinGeckoBaseURL: getEnv("CRYPTOSAGE_COINGECKO_URL", ""),
		LogLevel:         getEnv("CRYPTOSAGE_LOG_LEVEL", "info"),
		Port:             port,
		DevMode:          getEnv("CRYPTOSAGE_DEV_MODE", "false") == "true",
	}, nil
}

// CacheDBPath returns the path of the client data cache database.
func (c *Config) CacheDBPath() string {
	return filepath.Join(c.DataDir, "client_data.db")
}

// getEnv retrieves an environment variable value, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
