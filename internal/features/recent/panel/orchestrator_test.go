package panel

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSurface wraps a SnapshotSurface and counts loading transitions
type recordingSurface struct {
	*SnapshotSurface

	mu    sync.Mutex
	shown int
	hid   int
	calls []string
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{SnapshotSurface: NewSnapshotSurface()}
}

func (r *recordingSurface) SetLoading(visible bool) {
	r.mu.Lock()
	if visible {
		r.shown++
	} else {
		r.hid++
	}
	r.mu.Unlock()
	r.SnapshotSurface.SetLoading(visible)
}

func (r *recordingSurface) RenderRows(view TableView) {
	r.mu.Lock()
	r.calls = append(r.calls, "render")
	r.mu.Unlock()
	r.SnapshotSurface.RenderRows(view)
}

type loaderFunc func(ctx context.Context) (*ViewModel, error)

func (f loaderFunc) Load(ctx context.Context) (*ViewModel, error) { return f(ctx) }

func staticLoader(vm *ViewModel, err error) Loader {
	return loaderFunc(func(context.Context) (*ViewModel, error) { return vm, err })
}

type fakeRemover struct {
	mu    sync.Mutex
	err   error
	calls []string
}

func (f *fakeRemover) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, id)
	return f.err
}

func threeRecords() *ViewModel {
	return &ViewModel{
		Records: []Record{
			{ID: "3", Question: "third"},
			{ID: "2", Question: "second"},
			{ID: "1", Question: "first"},
		},
		Total: int64Ptr(3),
	}
}

func TestOrchestratorOpen(t *testing.T) {
	surface := newRecordingSurface()
	o := NewOrchestrator(staticLoader(threeRecords(), nil), &fakeRemover{}, nil, surface, testLogger(t))
	assert.Equal(t, StateHidden, o.State())

	require.NoError(t, o.Open(context.Background()))

	snap := surface.Snapshot()
	assert.Equal(t, StateLoaded, o.State())
	assert.False(t, snap.Loading)
	assert.True(t, snap.TableVisible)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "(3)", snap.Count)
	assert.Len(t, snap.Table.Rows, 3)
	assert.Equal(t, 1, surface.shown)
	assert.Equal(t, 1, surface.hid)
}

func TestOrchestratorCountFailure(t *testing.T) {
	vm := threeRecords()
	vm.Total = nil
	surface := newRecordingSurface()
	o := NewOrchestrator(staticLoader(vm, nil), &fakeRemover{}, nil, surface, testLogger(t))

	require.NoError(t, o.Open(context.Background()))

	snap := surface.Snapshot()
	assert.Equal(t, StateLoaded, o.State())
	assert.Equal(t, "", snap.Count)
	assert.Len(t, snap.Table.Rows, 3)
	assert.Nil(t, o.Total())
}

func TestOrchestratorRecordFailure(t *testing.T) {
	surface := newRecordingSurface()
	o := NewOrchestrator(staticLoader(nil, &FetchError{Status: 500}), &fakeRemover{}, nil, surface, testLogger(t))

	err := o.Open(context.Background())
	require.Error(t, err)

	snap := surface.Snapshot()
	assert.Equal(t, StateErrored, o.State())
	assert.Equal(t, "Error: HTTP 500", snap.Error)
	assert.False(t, snap.TableVisible)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Table.Rows)
	assert.Empty(t, snap.Table.Placeholder)
	assert.Empty(t, o.Records())
	assert.Equal(t, 1, surface.hid)
}

func TestOrchestratorRefreshReplacesRender(t *testing.T) {
	vm := threeRecords()
	var fail bool
	loader := loaderFunc(func(context.Context) (*ViewModel, error) {
		if fail {
			return nil, &ParseError{URL: "/questions", Err: errors.New("not a list")}
		}
		return vm, nil
	})
	surface := newRecordingSurface()
	o := NewOrchestrator(loader, &fakeRemover{}, nil, surface, testLogger(t))

	require.NoError(t, o.Open(context.Background()))
	fail = true
	require.Error(t, o.Refresh(context.Background()))
	assert.Empty(t, surface.Snapshot().Table.Rows)
	assert.Equal(t, StateErrored, o.State())

	fail = false
	vm = &ViewModel{Records: []Record{}}
	require.NoError(t, o.Refresh(context.Background()))

	snap := surface.Snapshot()
	assert.Equal(t, StateLoaded, o.State())
	assert.Empty(t, snap.Error)
	assert.Equal(t, EmptyMessage, snap.Table.Placeholder)
	assert.Equal(t, 3, surface.shown)
	assert.Equal(t, 3, surface.hid)
}

func TestOrchestratorDelete(t *testing.T) {
	t.Run("confirmed success removes exactly one row", func(t *testing.T) {
		surface := newRecordingSurface()
		remover := &fakeRemover{}
		o := NewOrchestrator(staticLoader(threeRecords(), nil), remover, nil, surface, testLogger(t))
		require.NoError(t, o.Open(context.Background()))

		require.NoError(t, o.Delete(context.Background(), "2", Confirmed))

		snap := surface.Snapshot()
		require.Len(t, snap.Table.Rows, 2)
		assert.Equal(t, "3", snap.Table.Rows[0].ID)
		assert.Equal(t, "1", snap.Table.Rows[1].ID)
		assert.Equal(t, "(3)", snap.Count)
		assert.Equal(t, []string{"2"}, remover.calls)
		assert.Len(t, o.Records(), 2)
		assert.Equal(t, StateLoaded, o.State())
	})

	t.Run("failure alerts and keeps the table", func(t *testing.T) {
		surface := newRecordingSurface()
		remover := &fakeRemover{err: &FetchError{Status: 404}}
		o := NewOrchestrator(staticLoader(threeRecords(), nil), remover, nil, surface, testLogger(t))
		require.NoError(t, o.Open(context.Background()))

		err := o.Delete(context.Background(), "2", Confirmed)
		require.Error(t, err)

		snap := surface.Snapshot()
		assert.Equal(t, []string{"Delete error: HTTP 404"}, snap.Alerts)
		assert.Len(t, snap.Table.Rows, 3)
		assert.Empty(t, snap.Error)
		assert.Equal(t, StateLoaded, o.State())
	})

	t.Run("declined confirmation sends nothing", func(t *testing.T) {
		surface := newRecordingSurface()
		remover := &fakeRemover{}
		o := NewOrchestrator(staticLoader(threeRecords(), nil), remover, nil, surface, testLogger(t))
		require.NoError(t, o.Open(context.Background()))

		var asked string
		decline := ConfirmFunc(func(ctx context.Context, message string) (bool, error) {
			asked = message
			return false, nil
		})

		require.NoError(t, o.Delete(context.Background(), "2", decline))
		assert.Equal(t, DeleteConfirmMessage, asked)
		assert.Empty(t, remover.calls)
		assert.Len(t, surface.Snapshot().Table.Rows, 3)
	})

	t.Run("missing id is ignored", func(t *testing.T) {
		remover := &fakeRemover{}
		o := NewOrchestrator(staticLoader(threeRecords(), nil), remover, nil, newRecordingSurface(), testLogger(t))

		assert.NoError(t, o.Delete(context.Background(), "", Confirmed))
		assert.Empty(t, remover.calls)
	})

	t.Run("last row leaves an empty body", func(t *testing.T) {
		surface := newRecordingSurface()
		vm := &ViewModel{Records: []Record{{ID: "1"}}}
		o := NewOrchestrator(staticLoader(vm, nil), &fakeRemover{}, nil, surface, testLogger(t))
		require.NoError(t, o.Open(context.Background()))

		require.NoError(t, o.Delete(context.Background(), "1", Confirmed))
		snap := surface.Snapshot()
		assert.Empty(t, snap.Table.Rows)
		assert.Empty(t, snap.Table.Placeholder)
	})
}

func TestOrchestratorSupersededLoad(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls int
	var mu sync.Mutex

	loader := loaderFunc(func(context.Context) (*ViewModel, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstStarted)
			<-releaseFirst
			return &ViewModel{Records: []Record{{ID: "stale"}}, Total: int64Ptr(99)}, nil
		}
		return threeRecords(), nil
	})

	surface := newRecordingSurface()
	o := NewOrchestrator(loader, &fakeRemover{}, nil, surface, testLogger(t))

	firstDone := make(chan error, 1)
	go func() { firstDone <- o.Open(context.Background()) }()
	<-firstStarted

	require.NoError(t, o.Refresh(context.Background()))
	close(releaseFirst)
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)

	snap := surface.Snapshot()
	assert.Equal(t, StateLoaded, o.State())
	assert.Equal(t, "(3)", snap.Count)
	require.Len(t, snap.Table.Rows, 3)
	assert.Equal(t, "3", snap.Table.Rows[0].ID)
	assert.False(t, snap.Loading)
	assert.Equal(t, []string{"render"}, surface.calls)
	assert.Equal(t, 2, surface.shown)
	assert.Equal(t, 1, surface.hid)
}

func TestOrchestratorPanicStillHidesIndicator(t *testing.T) {
	surface := newRecordingSurface()
	loader := loaderFunc(func(context.Context) (*ViewModel, error) {
		panic("renderer blew up")
	})
	o := NewOrchestrator(loader, &fakeRemover{}, nil, surface, testLogger(t))

	assert.Panics(t, func() { _ = o.Open(context.Background()) })
	assert.False(t, surface.Snapshot().Loading)
	assert.Equal(t, StateErrored, o.State())
	assert.Equal(t, 1, surface.hid)
}

func TestOrchestratorChangeCategory(t *testing.T) {
	picker := NewCategoryPicker([]string{"diger"})
	o := NewOrchestrator(staticLoader(threeRecords(), nil), &fakeRemover{}, picker, newRecordingSurface(), testLogger(t))

	selected, err := o.ChangeCategory(context.Background(), SentinelValue, answer("Health", true))
	require.NoError(t, err)
	assert.Equal(t, "Health", selected)
	assert.Same(t, picker, o.Picker())

	bare := NewOrchestrator(staticLoader(threeRecords(), nil), &fakeRemover{}, nil, newRecordingSurface(), testLogger(t))
	selected, err = bare.ChangeCategory(context.Background(), SentinelValue, answer("Health", true))
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "hidden", StateHidden.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "loaded", StateLoaded.String())
	assert.Equal(t, "errored", StateErrored.String())
}
