package panel

import (
	"context"
	"sync"

	"faq-studio/internal/core"
)

// State is the load state of the panel
type State int

const (
	StateHidden State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// DeleteConfirmMessage is shown before a row is deleted
const DeleteConfirmMessage = "Are you sure you want to delete this question?"

// Loader produces a view model; *Fetcher is the production implementation
type Loader interface {
	Load(ctx context.Context) (*ViewModel, error)
}

// Remover deletes one record remotely; *DeleteController is the production implementation
type Remover interface {
	Delete(ctx context.Context, id string) error
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// Confirmed is a Confirmer for callers that already have the operator's consent
var Confirmed = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Orchestrator wires operator actions to the fetcher, renderer, delete
// controller and category picker, and owns the panel's visible state. It is
// the only holder of the currently rendered records.
type Orchestrator struct {
	loader  Loader
	remover Remover
	picker  *CategoryPicker
	surface Surface
	logger  *core.Logger

	mu         sync.Mutex
	generation uint64
	state      State
	records    []Record
	total      *int64
}

// NewOrchestrator creates an orchestrator in the Hidden state. picker may be
// nil when the surface has no category select.
func NewOrchestrator(loader Loader, remover Remover, picker *CategoryPicker, surface Surface, logger *core.Logger) *Orchestrator {
	return &Orchestrator{
		loader:  loader,
		remover: remover,
		picker:  picker,
		surface: surface,
		logger:  logger,
	}
}

// Open shows the panel and loads it
func (o *Orchestrator) Open(ctx context.Context) error {
	return o.load(ctx)
}

// Refresh reloads the panel from either terminal state
func (o *Orchestrator) Refresh(ctx context.Context) error {
	return o.load(ctx)
}

// load replaces the whole render with a fresh fetch. Only the newest load
// may touch the surface once it settles; older ones return ErrSuperseded.
func (o *Orchestrator) load(ctx context.Context) error {
	gen := o.begin()
	defer o.settle(gen)

	vm, err := o.loader.Load(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		o.logger.Debug("Discarding superseded load", "generation", gen, "current", o.generation)
		return ErrSuperseded
	}

	if err != nil {
		o.state = StateErrored
		o.records = nil
		o.total = nil
		o.surface.SetError("Error: " + err.Error())
		o.logger.Warn("Panel load failed", "error", err)
		return err
	}

	o.state = StateLoaded
	o.records = append([]Record(nil), vm.Records...)
	o.total = vm.Total
	o.surface.RenderRows(Render(*vm))
	o.surface.SetCount(CountLabel(vm.Total))
	o.surface.SetTableVisible(true)
	return nil
}

func (o *Orchestrator) begin() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	o.state = StateLoading
	o.surface.SetLoading(true)
	o.surface.SetTableVisible(false)
	o.surface.SetError("")
	o.surface.ClearRows()
	return o.generation
}

// settle is the Loading exit action and runs however the load ended
func (o *Orchestrator) settle(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		return
	}
	if o.state == StateLoading {
		o.state = StateErrored
	}
	o.surface.SetLoading(false)
}

// Delete removes one record after the operator confirms. On success exactly
// that row disappears; on failure the operator is alerted and nothing else
// changes. The load state is never touched.
func (o *Orchestrator) Delete(ctx context.Context, id string, confirmer Confirmer) error {
	if id == "" {
		return nil
	}

	ok, err := confirmer.Confirm(ctx, DeleteConfirmMessage)
	if err != nil || !ok {
		return err
	}

	if err := o.remover.Delete(ctx, id); err != nil {
		o.mu.Lock()
		o.surface.Alert("Delete error: " + err.Error())
		o.mu.Unlock()
		o.logger.Warn("Delete failed", "id", id, "error", err)
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for i, rec := range o.records {
		if rec.ID == id {
			o.records = append(o.records[:i:i], o.records[i+1:]...)
			break
		}
	}
	o.surface.RemoveRow(id)
	return nil
}

// ChangeCategory forwards a category select change to the picker
func (o *Orchestrator) ChangeCategory(ctx context.Context, value string, prompter Prompter) (string, error) {
	if o.picker == nil {
		return "", nil
	}
	return o.picker.Select(ctx, value, prompter)
}

// State returns the current load state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Records returns a copy of the currently rendered records
func (o *Orchestrator) Records() []Record {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Record(nil), o.records...)
}

// Total returns the last known server total, nil when unknown
func (o *Orchestrator) Total() *int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.total
}

// Picker returns the category picker, if any
func (o *Orchestrator) Picker() *CategoryPicker {
	return o.picker
}
