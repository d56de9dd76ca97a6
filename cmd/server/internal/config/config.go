package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full server configuration, sourced from environment
// variables (a local .env file is honored when present).
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Provider ProviderConfig
	Meeting  MeetingConfig
	Log      LogConfig
	Audit    AuditConfig
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Env                string // dev, development, staging, production
	Port               string
	CORSAllowedOrigins []string
}

// StoreConfig holds MongoDB connection settings.
type StoreConfig struct {
	URI      string
	Database string
}

// ProviderConfig holds video-room provider API settings.
type ProviderConfig struct {
	APIKey  string
	APIURL  string // provider REST endpoint
	BaseURL string // prefix of the join link returned to customers
	Timeout time.Duration
}

// MeetingConfig holds assignment settings.
type MeetingConfig struct {
	AgentID string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// AuditConfig holds the admin audit log destination.
type AuditConfig struct {
	File string
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (*Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	timeoutSec, err := strconv.Atoi(getEnv("PROVIDER_TIMEOUT_SECONDS", "15"))
	if err != nil || timeoutSec <= 0 {
		timeoutSec = 15
	}

	cfg := &Config{
		Server: ServerConfig{
			Env:                getEnv("ENV", "dev"),
			Port:               getEnv("PORT", "3000"),
			CORSAllowedOrigins: parseStringList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Store: StoreConfig{
			URI:      getEnv("MONGODB_URI", ""),
			Database: getEnv("MONGODB_DB", "kyc"),
		},
		Provider: ProviderConfig{
			APIKey:  getEnv("DAILY_API_KEY", ""),
			APIURL:  getEnv("DAILY_API_URL", "https://api.daily.co"),
			BaseURL: getEnv("DAILY_BASE_URL", ""),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		Meeting: MeetingConfig{
			AgentID: getEnv("AGENT_ID", "agent1"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Audit: AuditConfig{
			File: getEnv("AUDIT_LOG_FILE", "./audit/admin.log"),
		},
	}

	return cfg, nil
}

// ValidateConfig checks the loaded configuration and reports every problem
// at once.
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.Store.URI == "" {
		errs = append(errs, "MONGODB_URI is required")
	}
	if cfg.Provider.APIKey == "" {
		errs = append(errs, "DAILY_API_KEY is required")
	}
	if cfg.Provider.BaseURL == "" {
		errs = append(errs, "DAILY_BASE_URL is required")
	}
	if !strings.HasPrefix(cfg.Provider.APIURL, "http://") && !strings.HasPrefix(cfg.Provider.APIURL, "https://") {
		errs = append(errs, fmt.Sprintf("invalid DAILY_API_URL: %s (must be an http(s) URL)", cfg.Provider.APIURL))
	}

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid PORT value: %s (must be 1-65535)", cfg.Server.Port))
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid LOG_LEVEL: %s (must be: debug, info, warn, error)", cfg.Log.Level))
	}

	validEnvs := map[string]bool{"dev": true, "development": true, "staging": true, "production": true}
	if !validEnvs[cfg.Server.Env] {
		errs = append(errs, fmt.Sprintf("invalid ENV: %s (must be: dev, development, staging, production)", cfg.Server.Env))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetServerAddr returns the HTTP listen address.
func (c *Config) GetServerAddr() string {
	return ":" + c.Server.Port
}

// getEnv returns the environment value for key, or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseStringList splits a comma-separated list, dropping empty entries.
func parseStringList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
