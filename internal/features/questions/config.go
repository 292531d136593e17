package questions

import "faq-studio/internal/core"

// Config represents questions backend configuration
type Config struct {
	Enabled        bool
	JSONPath       string
	CategoriesPath string
}

// NewConfig creates questions config from core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		Enabled:        coreConfig.Features.Questions.Enabled,
		JSONPath:       coreConfig.Features.Questions.JSONPath,
		CategoriesPath: coreConfig.Features.Questions.CategoriesPath,
	}
}

// Validate validates the questions configuration
func (c *Config) Validate() error {
	if c.JSONPath == "" {
		return core.NewConfigurationError("JSON backup path is required", nil)
	}
	if c.CategoriesPath == "" {
		return core.NewConfigurationError("categories path is required", nil)
	}
	if c.JSONPath == c.CategoriesPath {
		return core.NewConfigurationError("JSON backup and categories must be different files", nil)
	}
	return nil
}
