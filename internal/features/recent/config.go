package recent

import (
	"fmt"
	"net/url"

	"faq-studio/internal/core"
)

// Config represents recent panel configuration
type Config struct {
	Enabled    bool
	BackendURL string
}

// NewConfig creates recent panel config from core config
func NewConfig(coreConfig *core.Config) *Config {
	return &Config{
		Enabled:    coreConfig.Features.Recent.Enabled,
		BackendURL: coreConfig.Features.Recent.BackendURL,
	}
}

// Validate validates the recent panel configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return core.NewConfigurationError("invalid backend URL", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return core.NewConfigurationError(fmt.Sprintf("backend URL must be http or https, got %q", c.BackendURL), nil)
	}
	if u.Host == "" {
		return core.NewConfigurationError("backend URL must include a host", nil)
	}
	return nil
}
