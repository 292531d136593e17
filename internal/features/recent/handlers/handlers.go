package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"faq-studio/internal/core"
	"faq-studio/internal/features/recent/panel"
	"faq-studio/views/recent"
)

// Handlers serves the recent questions panel. Each request drives its own
// orchestrator over a SnapshotSurface; the delete controller is shared so the
// in-flight guard spans requests.
type Handlers struct {
	logger  *core.Logger
	fetcher *panel.Fetcher
	deleter *panel.DeleteController
	metrics *Metrics
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, fetcher *panel.Fetcher, deleter *panel.DeleteController, metrics *Metrics) *Handlers {
	return &Handlers{
		logger:  logger,
		fetcher: fetcher,
		deleter: deleter,
		metrics: metrics,
	}
}

func (h *Handlers) orchestrator(picker *panel.CategoryPicker, surface panel.Surface) *panel.Orchestrator {
	return panel.NewOrchestrator(h.fetcher, h.deleter, picker, surface, h.logger)
}

// Page renders the panel shell with the category select populated from the backend
func (h *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	categories, err := h.fetcher.Categories(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).Warn("Failed to load categories", "error", err)
	}
	picker := panel.NewCategoryPicker(categories)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := recent.Page(recent.PageData{Options: picker.Options(), Selected: picker.Selected()})
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render recent page", "error", err)
	}
}

// Table loads the panel and returns the body fragment. ?refresh=1 marks a
// reload from the refresh button. Load failures are part of the fragment as
// the error banner, so the status is always 200.
func (h *Handlers) Table(w http.ResponseWriter, r *http.Request) {
	surface := panel.NewSnapshotSurface()
	o := h.orchestrator(nil, surface)

	load := o.Open
	if r.URL.Query().Get("refresh") == "1" {
		load = o.Refresh
	}

	start := time.Now()
	err := load(r.Context())
	outcome := "loaded"
	if err != nil {
		outcome = "errored"
	}
	h.metrics.observeLoad(time.Since(start).Seconds(), outcome, o.Total())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := recent.PanelBody(surface.Snapshot()).Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render recent table", "error", err)
	}
}

// DeleteRow deletes one question. The browser has already confirmed, and
// removes the row itself on a 200. The orchestrator here holds no rows, so
// only the remote delete and the alert text it produces are used.
func (h *Handlers) DeleteRow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	surface := panel.NewSnapshotSurface()
	err := h.orchestrator(nil, surface).Delete(r.Context(), id, panel.Confirmed)
	switch {
	case err == nil:
		h.metrics.observeDelete("deleted")
		w.WriteHeader(http.StatusOK)
	case errors.Is(err, panel.ErrDeleteInFlight):
		h.metrics.observeDelete("in_flight")
		core.HandleError(w, core.NewConflictError("Delete error: "+err.Error(), err))
	default:
		h.metrics.observeDelete("failed")
		message := "Delete error: " + err.Error()
		if alerts := surface.Snapshot().Alerts; len(alerts) > 0 {
			message = alerts[len(alerts)-1]
		}
		http.Error(w, message, http.StatusBadGateway)
	}
}

// UpdateCategory applies the outcome of the browser's "new category" prompt
// to the submitted option list and returns the re-rendered select.
func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	picker := panel.NewCategoryPicker(r.PostForm["option"])
	answer := panel.PromptFunc(func(_ context.Context, _ string) (string, bool, error) {
		return r.PostForm.Get("prompt"), r.PostForm.Get("cancelled") != "true", nil
	})

	selected, err := h.orchestrator(picker, panel.NewSnapshotSurface()).ChangeCategory(r.Context(), r.PostForm.Get("value"), answer)
	if err != nil {
		h.logger.Error("Failed to change category", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := recent.CategorySelect(picker.Options(), selected).Render(r.Context(), w); err != nil {
		h.logger.Error("Failed to render category select", "error", err)
	}
}

// SuggestCategories returns backend categories ranked against ?q=
func (h *Handlers) SuggestCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.fetcher.Categories(r.Context())
	if err != nil {
		h.logger.WithContext(r.Context()).Warn("Failed to load categories", "error", err)
		core.HandleError(w, core.NewUpstreamError("Failed to load categories", err))
		return
	}

	suggestions := panel.NewCategoryPicker(categories).Suggest(r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(suggestions)
}
