package panel

import "sync"

// Surface is what the orchestrator draws on: the loading indicator, the
// table, the error banner, the count label and the operator alert.
type Surface interface {
	SetLoading(visible bool)
	SetTableVisible(visible bool)
	SetError(message string)
	ClearRows()
	RenderRows(view TableView)
	SetCount(label string)
	RemoveRow(id string) bool
	Alert(message string)
}

// Snapshot is the visible state of a SnapshotSurface
type Snapshot struct {
	Loading      bool
	TableVisible bool
	Error        string
	Count        string
	Table        TableView
	Alerts       []string
}

// SnapshotSurface keeps the surface state in memory so it can be rendered
// in one go as an HTML fragment.
type SnapshotSurface struct {
	mu    sync.Mutex
	state Snapshot
}

// NewSnapshotSurface creates an empty surface with nothing visible
func NewSnapshotSurface() *SnapshotSurface {
	return &SnapshotSurface{}
}

func (s *SnapshotSurface) SetLoading(visible bool) {
	s.mu.Lock()
	s.state.Loading = visible
	s.mu.Unlock()
}

func (s *SnapshotSurface) SetTableVisible(visible bool) {
	s.mu.Lock()
	s.state.TableVisible = visible
	s.mu.Unlock()
}

func (s *SnapshotSurface) SetError(message string) {
	s.mu.Lock()
	s.state.Error = message
	s.mu.Unlock()
}

func (s *SnapshotSurface) ClearRows() {
	s.mu.Lock()
	s.state.Table = TableView{}
	s.mu.Unlock()
}

func (s *SnapshotSurface) RenderRows(view TableView) {
	s.mu.Lock()
	s.state.Table = TableView{
		Rows:        append([]Row(nil), view.Rows...),
		Placeholder: view.Placeholder,
	}
	s.mu.Unlock()
}

func (s *SnapshotSurface) SetCount(label string) {
	s.mu.Lock()
	s.state.Count = label
	s.mu.Unlock()
}

func (s *SnapshotSurface) RemoveRow(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, row := range s.state.Table.Rows {
		if row.ID == id {
			s.state.Table.Rows = append(s.state.Table.Rows[:i:i], s.state.Table.Rows[i+1:]...)
			return true
		}
	}
	return false
}

func (s *SnapshotSurface) Alert(message string) {
	s.mu.Lock()
	s.state.Alerts = append(s.state.Alerts, message)
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state
func (s *SnapshotSurface) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Table.Rows = append([]Row(nil), s.state.Table.Rows...)
	out.Alerts = append([]string(nil), s.state.Alerts...)
	return out
}
