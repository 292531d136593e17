package core

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FAQ_PORT", "")
	t.Setenv("FAQ_DATABASE_URL", "")
	t.Setenv("FAQ_BACKEND_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "./faq.db", cfg.Database.Path)
	assert.Equal(t, DialectSQLite, cfg.Dialect())
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Features.Recent.BackendURL)
	assert.True(t, cfg.IsFeatureEnabled("questions"))
	assert.True(t, cfg.IsFeatureEnabled("recent"))
	assert.False(t, cfg.IsFeatureEnabled("uptime"))
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FAQ_PORT", "9100")
	t.Setenv("FAQ_DATABASE_URL", "postgres://faq:secret@db:5432/faq?sslmode=disable")
	t.Setenv("FAQ_BACKEND_URL", "https://faq.internal/")
	t.Setenv("FAQ_LOG_LEVEL", "DEBUG")
	t.Setenv("FAQ_ENABLE_QUESTIONS", "off")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, DialectPostgres, cfg.Dialect())
	assert.Equal(t, "https://faq.internal", cfg.Features.Recent.BackendURL)
	assert.False(t, cfg.Features.Questions.Enabled)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8000, Host: "0.0.0.0"},
			Database: DatabaseConfig{Path: "faq.db"},
			Logging:  LoggingConfig{Level: "info"},
			Features: FeatureConfig{
				Questions: QuestionsConfig{Enabled: true, JSONPath: "q.json", CategoriesPath: "c.json"},
				Recent:    RecentConfig{Enabled: true, BackendURL: "http://localhost:8000"},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"no database", func(c *Config) { c.Database.Path = "" }, "database path is required"},
		{"mysql url", func(c *Config) { c.Database.URL = "mysql://x" }, "PostgreSQL"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
		{"no json path", func(c *Config) { c.Features.Questions.JSONPath = "" }, "JSON backup path"},
		{"bad backend", func(c *Config) { c.Features.Recent.BackendURL = "ftp://x" }, "backend URL"},
		{"backend ignored when disabled", func(c *Config) {
			c.Features.Recent.Enabled = false
			c.Features.Recent.BackendURL = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRebind(t *testing.T) {
	query := `SELECT id FROM questions WHERE category = ? AND question LIKE '%?%' LIMIT ? OFFSET ?`

	assert.Equal(t, query, Rebind(DialectSQLite, query))
	assert.Equal(t,
		`SELECT id FROM questions WHERE category = $1 AND question LIKE '%?%' LIMIT $2 OFFSET $3`,
		Rebind(DialectPostgres, query))
}
