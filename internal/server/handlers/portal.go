package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"faq-studio/internal/core"
)

// PortalHandler serves the server-level pages that sit outside any feature
type PortalHandler struct {
	logger   *core.Logger
	registry *core.Registry
	db       *core.Database
	version  string
}

// NewPortalHandler creates a new portal handler. db may be nil when no
// feature needs storage.
func NewPortalHandler(logger *core.Logger, registry *core.Registry, db *core.Database, version string) *PortalHandler {
	return &PortalHandler{
		logger:   logger,
		registry: registry,
		db:       db,
		version:  version,
	}
}

// IndexHandler sends visitors to the recent questions panel, or lists the
// mounted features when the panel is switched off
func (h *PortalHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if feature, ok := h.registry.Get("recent"); ok && feature.Enabled() {
		http.Redirect(w, r, "/recent", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.registry.GetFeatureStatus())
}

// HealthCheckHandler provides a health check endpoint
func (h *PortalHandler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]any{
		"status":   "ok",
		"service":  "faq-studio",
		"version":  h.version,
		"features": h.registry.GetFeatureStatus(),
	}

	if h.db != nil {
		if err := h.db.PingWithTimeout(2 * time.Second); err != nil {
			h.logger.WithContext(r.Context()).Error("Health check database ping failed", "error", err)
			status = http.StatusServiceUnavailable
			body["status"] = "degraded"
			body["database"] = "unreachable"
		} else {
			body["database"] = "ok"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
