package state

// Snapshot is a read-only view of the Manager at one point in time. Slices
// are copies and may be kept by the caller.
type Snapshot struct {
	Buttons        ButtonConfig
	Events         []ClickEvent // chronological
	ClearedCount   int
	EditMode       bool
	FirstVisitDone bool
	LastError      error
}

// NewestFirst returns the events in display order.
func (s Snapshot) NewestFirst() []ClickEvent {
	return reversed(s.Events)
}

// HasCleared reports whether a cleared backup exists.
func (s Snapshot) HasCleared() bool {
	return s.ClearedCount > 0
}

// Label returns the label for button i.
func (s Snapshot) Label(i int) string {
	return s.Buttons.Label(i)
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Buttons:        m.buttons.clone(),
		Events:         cloneEvents(m.events),
		ClearedCount:   len(m.cleared),
		EditMode:       m.editMode,
		FirstVisitDone: m.firstVisitDone,
		LastError:      m.lastErr,
	}
}
