package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// API Configuration
	API APIConfig

	// Session Configuration
	Session SessionConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds backend API configuration
type APIConfig struct {
	BaseURL string
}

// SessionConfig holds session persistence configuration
type SessionConfig struct {
	Backend string // file, keyring
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// API base URL - the backend is externally configured, default to local dev
	apiURL := os.Getenv("SMARTPEST_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8000/api"
	}

	// Session backend - file by default, keyring for OS credential storage
	sessionBackend := os.Getenv("SMARTPEST_SESSION_BACKEND")
	if sessionBackend == "" {
		sessionBackend = "file"
	}

	// Logging configuration - quiet defaults for an interactive client
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}

	return &Config{
		API: APIConfig{
			BaseURL: apiURL,
		},
		Session: SessionConfig{
			Backend: sessionBackend,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
