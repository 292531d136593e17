package core

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config represents the main configuration for FAQ Studio
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Logging  LoggingConfig  `json:"logging"`
	Features FeatureConfig  `json:"features"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port int    `json:"port"`
	Host string `json:"host"`
}

// DatabaseConfig contains database-related configuration.
// URL takes precedence over Path when both are set.
type DatabaseConfig struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `json:"level"`
}

// FeatureConfig contains feature-specific configuration
type FeatureConfig struct {
	Questions QuestionsConfig `json:"questions"`
	Recent    RecentConfig    `json:"recent"`
}

// QuestionsConfig contains configuration for the questions backend
type QuestionsConfig struct {
	Enabled        bool   `json:"enabled"`
	JSONPath       string `json:"json_path"`
	CategoriesPath string `json:"categories_path"`
}

// RecentConfig contains configuration for the recent questions panel
type RecentConfig struct {
	Enabled    bool   `json:"enabled"`
	BackendURL string `json:"backend_url"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvAsInt("FAQ_PORT", 8000),
			Host: getEnvOrDefault("FAQ_HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Path: getEnvOrDefault("FAQ_DB_PATH", "./faq.db"),
			URL:  getEnvOrDefault("FAQ_DATABASE_URL", ""),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(getEnvOrDefault("FAQ_LOG_LEVEL", "info")),
		},
		Features: FeatureConfig{
			Questions: QuestionsConfig{
				Enabled:        getEnvAsBool("FAQ_ENABLE_QUESTIONS", true),
				JSONPath:       getEnvOrDefault("FAQ_JSON_PATH", "./data/questions.json"),
				CategoriesPath: getEnvOrDefault("FAQ_CATEGORIES_PATH", "./data/categories.json"),
			},
			Recent: RecentConfig{
				Enabled:    getEnvAsBool("FAQ_ENABLE_RECENT", true),
				BackendURL: strings.TrimRight(getEnvOrDefault("FAQ_BACKEND_URL", ""), "/"),
			},
		},
	}

	if config.Features.Recent.BackendURL == "" {
		config.Features.Recent.BackendURL = config.SelfURL()
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.URL == "" && c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Database.URL != "" && c.Dialect() != DialectPostgres {
		return fmt.Errorf("database URL must be a PostgreSQL connection string")
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	if c.Features.Questions.Enabled {
		if c.Features.Questions.JSONPath == "" {
			return fmt.Errorf("JSON backup path is required when the questions feature is enabled")
		}
		if c.Features.Questions.CategoriesPath == "" {
			return fmt.Errorf("categories path is required when the questions feature is enabled")
		}
	}

	// Validate recent panel config if enabled
	if c.Features.Recent.Enabled {
		u, err := url.Parse(c.Features.Recent.BackendURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("backend URL must start with http:// or https://: %q", c.Features.Recent.BackendURL)
		}
	}

	return nil
}

// Dialect reports which SQL dialect the configured database speaks
func (c *Config) Dialect() Dialect {
	if strings.HasPrefix(c.Database.URL, "postgres://") || strings.HasPrefix(c.Database.URL, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (slog.Level, error) {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
}

// SelfURL returns the base URL this server answers on from the local host
func (c *Config) SelfURL() string {
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Server.Port)
}

// IsFeatureEnabled checks if a feature is enabled
func (c *Config) IsFeatureEnabled(featureName string) bool {
	switch strings.ToLower(featureName) {
	case "questions":
		return c.Features.Questions.Enabled
	case "recent":
		return c.Features.Recent.Enabled
	default:
		return false
	}
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return defaultValue
}
