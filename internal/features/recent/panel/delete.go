package panel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"faq-studio/internal/core"
)

// DeleteController removes one question from the backend per call. At most one
// delete per id is in flight at a time.
type DeleteController struct {
	baseURL string
	client  *http.Client
	logger  *core.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewDeleteController creates a controller for the backend at baseURL
func NewDeleteController(baseURL string, client *http.Client, logger *core.Logger) *DeleteController {
	if client == nil {
		client = http.DefaultClient
	}
	return &DeleteController{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
		pending: make(map[string]struct{}),
	}
}

// Delete issues DELETE /questions/{id}. Any non-2xx status is a *FetchError.
func (d *DeleteController) Delete(ctx context.Context, id string) error {
	if !d.acquire(id) {
		return ErrDeleteInFlight
	}
	defer d.release(id)

	target := d.baseURL + "/questions/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Method: http.MethodDelete, URL: target, Status: resp.StatusCode}
	}

	d.logger.Info("Deleted question", "id", id)
	return nil
}

// Pending reports whether a delete for id is in flight
func (d *DeleteController) Pending(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[id]
	return ok
}

func (d *DeleteController) acquire(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.pending[id]; busy {
		return false
	}
	d.pending[id] = struct{}{}
	return true
}

func (d *DeleteController) release(id string) {
	d.mu.Lock()
	delete(d.pending, id)
	d.mu.Unlock()
}
