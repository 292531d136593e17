package recent

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"faq-studio/internal/core"
	"faq-studio/internal/features/recent/handlers"
	"faq-studio/internal/features/recent/panel"
)

// Feature represents the recent questions panel. It reads and deletes
// questions through the backend's REST surface and keeps no storage of its own.
type Feature struct {
	*core.BaseFeature
	config   *Config
	fetcher  *panel.Fetcher
	deleter  *panel.DeleteController
	handlers *handlers.Handlers
}

// NewFeature creates a new recent panel feature. client may be nil.
func NewFeature(logger *core.Logger, config *Config, client *http.Client, reg prometheus.Registerer) *Feature {
	base := core.NewBaseFeature("recent", "Recent Questions Panel", config.Enabled, logger, nil)
	featureLogger := base.Logger()

	fetcher := panel.NewFetcher(config.BackendURL, client, featureLogger)
	deleter := panel.NewDeleteController(config.BackendURL, client, featureLogger)

	return &Feature{
		BaseFeature: base,
		config:      config,
		fetcher:     fetcher,
		deleter:     deleter,
		handlers:    handlers.NewHandlers(featureLogger, fetcher, deleter, handlers.NewMetrics(reg)),
	}
}

// Init validates the configuration
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return err
	}

	f.Logger().Info("Recent panel initialized", "backend", f.config.BackendURL)
	return nil
}

// Routes returns the HTTP routes for the recent panel
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		{Method: "GET", Path: "/recent", Handler: f.handlers.Page},
		{Method: "GET", Path: "/recent/table", Handler: f.handlers.Table},
		{Method: "DELETE", Path: "/recent/rows/{id}", Handler: f.handlers.DeleteRow},
		{Method: "POST", Path: "/recent/categories", Handler: f.handlers.UpdateCategory},
		{Method: "GET", Path: "/recent/categories/suggest", Handler: f.handlers.SuggestCategories},
	}
}
