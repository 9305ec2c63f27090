package state

import (
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"github.com/five82/tally/internal/storage"
)

// Options configure a Manager.
type Options struct {
	Logger *log.Logger      // nil discards
	Now    func() time.Time // nil uses time.Now
	Debug  bool             // log every command
}

// Manager owns the button grid, the event log, the one-slot cleared backup and
// the edit-mode flag. Every mutation goes through its commands, and each
// command writes the entities it touched back to storage before returning.
type Manager struct {
	mu     sync.Mutex
	store  storage.Provider
	logger *log.Logger
	now    func() time.Time
	debug  bool

	buttons        ButtonConfig
	events         []ClickEvent
	cleared        []ClickEvent
	editMode       bool
	firstVisitDone bool
	lastErr        error
}

// New returns a Manager over store. Call Initialize before use.
func New(store storage.Provider, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:   store,
		logger:  logger,
		now:     now,
		debug:   opts.Debug,
		buttons: ButtonConfig{ButtonNames: []string{}},
	}
}

// Initialize loads persisted state. When no button data exists the manager
// starts as a fresh install. A returned error is always recoverable: it joins
// ErrMalformedData / ErrStorageUnavailable failures for individual keys, each
// of which loaded as empty.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resetMemoryLocked()

	var errs []error
	if done, ok, err := m.store.Get(KeyFirstVisit); err != nil {
		errs = append(errs, storageError("get", KeyFirstVisit, err))
	} else {
		m.firstVisitDone = ok && done != ""
	}

	raw, ok, err := m.store.Get(KeyButtonData)
	if err != nil {
		errs = append(errs, storageError("get", KeyButtonData, err))
		return m.finishLoadLocked(errs)
	}
	if !ok {
		m.logger.Printf("no button data found; starting fresh")
		for _, key := range []string{KeyHistory, KeyClearedHistory} {
			if err := m.store.Remove(key); err != nil {
				errs = append(errs, storageError("remove", key, err))
			}
		}
		return m.finishLoadLocked(errs)
	}

	if cfg, err := decodeButtons(raw); err != nil {
		errs = append(errs, &MalformedDataError{Key: KeyButtonData, Err: err})
	} else {
		m.buttons = cfg
	}
	m.events, errs = m.loadEventsLocked(KeyHistory, errs)
	m.cleared, errs = m.loadEventsLocked(KeyClearedHistory, errs)

	return m.finishLoadLocked(errs)
}

func (m *Manager) loadEventsLocked(key string, errs []error) ([]ClickEvent, []error) {
	raw, ok, err := m.store.Get(key)
	if err != nil {
		return nil, append(errs, storageError("get", key, err))
	}
	if !ok {
		return nil, errs
	}
	events, err := decodeEvents(raw)
	if err != nil {
		return nil, append(errs, &MalformedDataError{Key: key, Err: err})
	}
	return events, errs
}

func (m *Manager) finishLoadLocked(errs []error) error {
	for _, err := range errs {
		m.logger.Printf("load: %v", err)
	}
	err := errors.Join(errs...)
	m.lastErr = err
	m.debugf("loaded %d buttons, %d events, %d cleared", m.buttons.ButtonCount, len(m.events), len(m.cleared))
	return err
}

func (m *Manager) resetMemoryLocked() {
	m.buttons = ButtonConfig{ButtonNames: []string{}}
	m.events = nil
	m.cleared = nil
	m.editMode = false
	m.firstVisitDone = false
	m.lastErr = nil
}

// AddButton appends a default-named button. It reports false when the grid
// is already at MaxButtons.
func (m *Manager) AddButton() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.buttons.ButtonCount >= MaxButtons {
		return false
	}
	m.buttons.ButtonNames = append(m.buttons.ButtonNames, DefaultLabel)
	m.buttons.ButtonCount = len(m.buttons.ButtonNames)
	m.debugf("add button -> %d", m.buttons.ButtonCount)
	m.saveButtonsLocked()
	return true
}

// RemoveButton drops the last button. It reports false when the grid is at
// MinButtons or below.
func (m *Manager) RemoveButton() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.buttons.ButtonCount <= MinButtons {
		return false
	}
	m.buttons.ButtonNames = m.buttons.ButtonNames[:len(m.buttons.ButtonNames)-1]
	m.buttons.ButtonCount = len(m.buttons.ButtonNames)
	m.debugf("remove button -> %d", m.buttons.ButtonCount)
	m.saveButtonsLocked()
	return true
}

// RemoveButtonAt deletes the button at index.
func (m *Manager) RemoveButtonAt(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= m.buttons.ButtonCount {
		return invalidIndex("button", index, m.buttons.ButtonCount)
	}
	if m.buttons.ButtonCount-1 < MinButtons {
		return ErrMinButtons
	}
	names := m.buttons.ButtonNames
	m.buttons.ButtonNames = append(names[:index:index], names[index+1:]...)
	m.buttons.ButtonCount = len(m.buttons.ButtonNames)
	m.debugf("remove button %d -> %d", index, m.buttons.ButtonCount)
	m.saveButtonsLocked()
	return nil
}

// RenameButtonAt sets the label of button index. Blank names become
// DefaultLabel.
func (m *Manager) RenameButtonAt(index int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= m.buttons.ButtonCount {
		return invalidIndex("button", index, m.buttons.ButtonCount)
	}
	m.buttons.ButtonNames[index] = NormalizeLabel(name)
	m.saveButtonsLocked()
	return nil
}

// ClearAllButtonConfigs removes every button and leaves edit mode. The event
// log is untouched.
func (m *Manager) ClearAllButtonConfigs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buttons = ButtonConfig{ButtonNames: []string{}}
	m.editMode = false
	m.debugf("clear all button configs")
	m.saveButtonsLocked()
}

// RecordClick appends an event for button index stamped with the current time.
func (m *Manager) RecordClick(index int) (ClickEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= m.buttons.ButtonCount {
		return ClickEvent{}, invalidIndex("button", index, m.buttons.ButtonCount)
	}
	ev := ClickEvent{
		ButtonName: m.buttons.Label(index),
		Timestamp:  FormatTimestamp(m.now()),
	}
	m.events = append(m.events, ev)
	m.debugf("click %q at %s", ev.ButtonName, ev.Timestamp)
	m.saveEventsLocked()
	return ev, nil
}

// DeleteEventAt removes an event by its position in newest-first order.
func (m *Manager) DeleteEventAt(displayIndex int) (ClickEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.events)
	if displayIndex < 0 || displayIndex >= n {
		return ClickEvent{}, invalidIndex("event", displayIndex, n)
	}
	idx := n - 1 - displayIndex
	removed := m.events[idx]
	m.events = append(m.events[:idx:idx], m.events[idx+1:]...)
	m.debugf("delete event %d (%q)", idx, removed.ButtonName)
	m.saveEventsLocked()
	return removed, nil
}

// ClearHistory moves the event log into the cleared backup, replacing any
// previous backup.
func (m *Manager) ClearHistory() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cleared = cloneEvents(m.events)
	m.events = nil
	m.debugf("clear history (%d backed up)", len(m.cleared))
	m.saveEventsLocked()
}

// RestoreHistory replaces the event log with the cleared backup and empties
// the backup.
func (m *Manager) RestoreHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.cleared) == 0 {
		return ErrNothingToRestore
	}
	m.events = m.cleared
	m.cleared = nil
	m.debugf("restore history (%d events)", len(m.events))
	m.saveEventsLocked()
	return nil
}

// ToggleEditMode flips edit mode and returns the new value. Leaving edit mode
// writes the button config so label edits are committed.
func (m *Manager) ToggleEditMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.editMode {
		m.saveButtonsLocked()
	}
	m.editMode = !m.editMode
	return m.editMode
}

// EnterEditMode switches edit mode on. It is a no-op when already editing.
func (m *Manager) EnterEditMode() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editMode = true
}

// ResetAll wipes every persisted key and returns to a fresh install,
// including the first-visit flag.
func (m *Manager) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resetMemoryLocked()
	m.buttons = ButtonConfig{ButtonNames: []string{}}
	if err := m.store.Clear(); err != nil {
		m.warnLocked(storageError("clear", "all", err))
		return
	}
	m.logger.Printf("all data reset")
}

// FirstVisitDone reports whether the splash screen has been dismissed.
func (m *Manager) FirstVisitDone() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.firstVisitDone
}

// CompleteFirstVisit records that the splash screen has been dismissed.
func (m *Manager) CompleteFirstVisit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.firstVisitDone = true
	m.setLocked(KeyFirstVisit, "true")
}

// Buttons returns a copy of the button config.
func (m *Manager) Buttons() ButtonConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons.clone()
}

// Label returns the label for button i, DefaultLabel when out of range.
func (m *Manager) Label(i int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons.Label(i)
}

// Events returns the event log in chronological order.
func (m *Manager) Events() []ClickEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneEvents(m.events)
}

// EventsNewestFirst returns the event log in display order.
func (m *Manager) EventsNewestFirst() []ClickEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return reversed(m.events)
}

// HasCleared reports whether a cleared backup can be restored.
func (m *Manager) HasCleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cleared) > 0
}

// EditMode reports whether edit mode is on.
func (m *Manager) EditMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editMode
}

// LastError returns the most recent storage problem, or nil once a later
// write succeeded.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Manager) saveButtonsLocked() {
	raw, err := encodeButtons(m.buttons)
	if err != nil {
		m.warnLocked(storageError("encode", KeyButtonData, err))
		return
	}
	m.setLocked(KeyButtonData, raw)
}

func (m *Manager) saveEventsLocked() {
	for _, item := range []struct {
		key    string
		events []ClickEvent
	}{
		{KeyHistory, m.events},
		{KeyClearedHistory, m.cleared},
	} {
		raw, err := encodeEvents(item.events)
		if err != nil {
			m.warnLocked(storageError("encode", item.key, err))
			return
		}
		if !m.setLocked(item.key, raw) {
			return
		}
	}
}

func (m *Manager) setLocked(key, value string) bool {
	if err := m.store.Set(key, value); err != nil {
		m.warnLocked(storageError("set", key, err))
		return false
	}
	m.lastErr = nil
	return true
}

func (m *Manager) warnLocked(err error) {
	m.lastErr = err
	m.logger.Printf("warning: %v", err)
}

func (m *Manager) debugf(format string, args ...any) {
	if !m.debug {
		return
	}
	m.logger.Printf("debug: "+format, args...)
}
