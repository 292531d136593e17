package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Registry manages the features mounted on the server, in registration order
type Registry struct {
	features []Feature
	byName   map[string]Feature
	mutex    sync.RWMutex
	logger   *Logger
}

// NewRegistry creates a new feature registry
func NewRegistry(logger *Logger) *Registry {
	return &Registry{
		byName: make(map[string]Feature),
		logger: logger,
	}
}

// Register adds a feature to the registry
func (r *Registry) Register(feature Feature) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := feature.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("feature %s already registered", name)
	}

	r.features = append(r.features, feature)
	r.byName[name] = feature
	r.logger.Info("Registered feature", "name", name, "enabled", feature.Enabled())
	return nil
}

// Get retrieves a feature by name
func (r *Registry) Get(name string) (Feature, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	feature, exists := r.byName[name]
	return feature, exists
}

// List returns all registered features
func (r *Registry) List() []Feature {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	features := make([]Feature, len(r.features))
	copy(features, r.features)
	return features
}

// ListEnabled returns only enabled features
func (r *Registry) ListEnabled() []Feature {
	enabled := make([]Feature, 0)
	for _, feature := range r.List() {
		if feature.Enabled() {
			enabled = append(enabled, feature)
		}
	}
	return enabled
}

// InitAll initializes all enabled features in registration order
func (r *Registry) InitAll(ctx context.Context) error {
	features := r.ListEnabled()
	r.logger.Info("Initializing features", "count", len(features))

	for _, feature := range features {
		if err := feature.Init(ctx); err != nil {
			return NewFeatureError(feature.Name(), "failed to initialize", err)
		}
		r.logger.Info("Initialized feature", "name", feature.Name())
	}

	return nil
}

// ShutdownAll shuts features down in reverse registration order.
// Every feature gets a chance to shut down; failures are joined.
func (r *Registry) ShutdownAll(ctx context.Context) error {
	features := r.ListEnabled()
	r.logger.Info("Shutting down features", "count", len(features))

	var errs []error
	for i := len(features) - 1; i >= 0; i-- {
		feature := features[i]
		if err := feature.Shutdown(ctx); err != nil {
			r.logger.Error("Failed to shutdown feature", "name", feature.Name(), "error", err)
			errs = append(errs, NewFeatureError(feature.Name(), "failed to shut down", err))
			continue
		}
		r.logger.Info("Shutdown feature", "name", feature.Name())
	}

	return errors.Join(errs...)
}

// GetAllRoutes returns all routes from enabled features
func (r *Registry) GetAllRoutes() []Route {
	var allRoutes []Route
	for _, feature := range r.ListEnabled() {
		allRoutes = append(allRoutes, feature.Routes()...)
	}
	return allRoutes
}

// GetFeatureStatus returns the status of all features
func (r *Registry) GetFeatureStatus() map[string]FeatureStatus {
	status := make(map[string]FeatureStatus)
	for _, feature := range r.List() {
		status[feature.Name()] = FeatureStatus{
			Name:        feature.Name(),
			Description: feature.Description(),
			Enabled:     feature.Enabled(),
		}
	}
	return status
}

// FeatureStatus represents the status of a feature
type FeatureStatus struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}
