package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/tally/internal/storage"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

func newTestManager(t *testing.T, store storage.Provider) *Manager {
	t.Helper()
	if store == nil {
		store = storage.NewMemory()
	}
	m := New(store, Options{Now: func() time.Time { return fixedTime }})
	if err := m.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return m
}

// failingStore wraps a Memory provider and fails Set/Clear on demand.
type failingStore struct {
	*storage.Memory
	failSet   bool
	failClear bool
}

var errDiskFull = errors.New("disk full")

func (s *failingStore) Set(key, value string) error {
	if s.failSet {
		return errDiskFull
	}
	return s.Memory.Set(key, value)
}

func (s *failingStore) Clear() error {
	if s.failClear {
		return errDiskFull
	}
	return s.Memory.Clear()
}

func TestFreshInstallAddAndRecord(t *testing.T) {
	m := newTestManager(t, nil)

	if got := m.Buttons(); got.ButtonCount != 0 || len(got.ButtonNames) != 0 {
		t.Fatalf("fresh buttons = %+v, want empty", got)
	}
	if !m.AddButton() {
		t.Fatal("AddButton returned false on empty grid")
	}
	got := m.Buttons()
	want := ButtonConfig{ButtonCount: 1, ButtonNames: []string{DefaultLabel}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("buttons = %+v, want %+v", got, want)
	}

	ev, err := m.RecordClick(0)
	if err != nil {
		t.Fatalf("RecordClick: %v", err)
	}
	wantEv := ClickEvent{ButtonName: DefaultLabel, Timestamp: "2024/03/09 14:05:07"}
	if ev != wantEv {
		t.Fatalf("event = %+v, want %+v", ev, wantEv)
	}
	if events := m.Events(); !reflect.DeepEqual(events, []ClickEvent{wantEv}) {
		t.Fatalf("events = %+v", events)
	}
}

func TestAddButtonCeiling(t *testing.T) {
	m := newTestManager(t, nil)
	for i := 0; i < MaxButtons; i++ {
		if !m.AddButton() {
			t.Fatalf("AddButton %d refused", i)
		}
	}
	if m.AddButton() {
		t.Fatal("AddButton past MaxButtons succeeded")
	}
	if got := m.Buttons(); got.ButtonCount != MaxButtons || len(got.ButtonNames) != MaxButtons {
		t.Fatalf("buttons = %+v", got)
	}
}

func TestRemoveButtonFloor(t *testing.T) {
	m := newTestManager(t, nil)
	for i := 0; i < 3; i++ {
		m.AddButton()
	}
	for m.RemoveButton() {
	}
	if got := m.Buttons(); got.ButtonCount != MinButtons || len(got.ButtonNames) != MinButtons {
		t.Fatalf("buttons = %+v", got)
	}
	if m.RemoveButton() {
		t.Fatal("RemoveButton at floor succeeded")
	}
}

func TestRemoveButtonAt(t *testing.T) {
	m := newTestManager(t, nil)
	for i := 0; i < 3; i++ {
		m.AddButton()
	}
	for i, name := range []string{"water", "walk", "read"} {
		if err := m.RenameButtonAt(i, name); err != nil {
			t.Fatalf("RenameButtonAt: %v", err)
		}
	}

	if err := m.RemoveButtonAt(1); err != nil {
		t.Fatalf("RemoveButtonAt: %v", err)
	}
	want := ButtonConfig{ButtonCount: 2, ButtonNames: []string{"water", "read"}}
	if got := m.Buttons(); !reflect.DeepEqual(got, want) {
		t.Fatalf("buttons = %+v, want %+v", got, want)
	}

	if err := m.RemoveButtonAt(5); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("out of range err = %v", err)
	}
	if err := m.RemoveButtonAt(0); err != nil {
		t.Fatalf("RemoveButtonAt: %v", err)
	}
	if err := m.RemoveButtonAt(0); !errors.Is(err, ErrMinButtons) {
		t.Fatalf("last button err = %v, want ErrMinButtons", err)
	}
	if got := m.Buttons(); got.ButtonCount != 1 {
		t.Fatalf("count = %d, want 1", got.ButtonCount)
	}
}

func TestRenameNormalizesBlank(t *testing.T) {
	m := newTestManager(t, nil)
	m.AddButton()
	if err := m.RenameButtonAt(0, "stretch"); err != nil {
		t.Fatal(err)
	}
	if err := m.RenameButtonAt(0, ""); err != nil {
		t.Fatal(err)
	}
	if got := m.Label(0); got != DefaultLabel {
		t.Fatalf("label = %q, want %q", got, DefaultLabel)
	}
	if err := m.RenameButtonAt(0, "   "); err != nil {
		t.Fatal(err)
	}
	if got := m.Buttons().ButtonNames[0]; got != DefaultLabel {
		t.Fatalf("stored name = %q", got)
	}
	if err := m.RenameButtonAt(1, "x"); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("err = %v", err)
	}
}

func TestRecordClickInvalidIndex(t *testing.T) {
	m := newTestManager(t, nil)
	m.AddButton()
	for _, idx := range []int{-1, 1, 8} {
		if _, err := m.RecordClick(idx); !errors.Is(err, ErrInvalidIndex) {
			t.Fatalf("RecordClick(%d) err = %v", idx, err)
		}
	}
	if len(m.Events()) != 0 {
		t.Fatal("events recorded on invalid index")
	}
}

func TestDeleteEventAtUsesDisplayOrder(t *testing.T) {
	m := newTestManager(t, nil)
	for i, name := range []string{"A", "B", "C"} {
		m.AddButton()
		if err := m.RenameButtonAt(i, name); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := m.RecordClick(i); err != nil {
			t.Fatal(err)
		}
	}

	if got := m.EventsNewestFirst()[0].ButtonName; got != "C" {
		t.Fatalf("newest = %q, want C", got)
	}
	removed, err := m.DeleteEventAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if removed.ButtonName != "C" {
		t.Fatalf("removed %q, want C", removed.ButtonName)
	}
	var names []string
	for _, ev := range m.Events() {
		names = append(names, ev.ButtonName)
	}
	if !reflect.DeepEqual(names, []string{"A", "B"}) {
		t.Fatalf("remaining = %v", names)
	}

	if _, err := m.DeleteEventAt(2); !errors.Is(err, ErrInvalidIndex) {
		t.Fatalf("err = %v", err)
	}
}

func TestClearAndRestoreHistory(t *testing.T) {
	m := newTestManager(t, nil)
	m.AddButton()
	m.RecordClick(0)
	m.RecordClick(0)
	before := m.Events()

	if err := m.RestoreHistory(); !errors.Is(err, ErrNothingToRestore) {
		t.Fatalf("restore with empty backup err = %v", err)
	}

	m.ClearHistory()
	if len(m.Events()) != 0 {
		t.Fatal("events not cleared")
	}
	if !m.HasCleared() {
		t.Fatal("HasCleared = false after clear")
	}

	if err := m.RestoreHistory(); err != nil {
		t.Fatal(err)
	}
	if got := m.Events(); !reflect.DeepEqual(got, before) {
		t.Fatalf("restored = %+v, want %+v", got, before)
	}
	if m.HasCleared() {
		t.Fatal("backup not emptied after restore")
	}
}

func TestSecondClearOverwritesBackup(t *testing.T) {
	m := newTestManager(t, nil)
	m.AddButton()
	m.RecordClick(0)
	m.RecordClick(0)
	m.ClearHistory()
	m.RecordClick(0)
	m.ClearHistory()

	if err := m.RestoreHistory(); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Events()); got != 1 {
		t.Fatalf("restored %d events, want 1", got)
	}
}

func TestClearAllButtonConfigsKeepsHistory(t *testing.T) {
	m := newTestManager(t, nil)
	m.AddButton()
	m.AddButton()
	m.RecordClick(1)
	m.EnterEditMode()

	m.ClearAllButtonConfigs()

	snap := m.Snapshot()
	if !snap.Buttons.Empty() || len(snap.Buttons.ButtonNames) != 0 {
		t.Fatalf("buttons = %+v", snap.Buttons)
	}
	if snap.EditMode {
		t.Fatal("edit mode still on")
	}
	if len(snap.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(snap.Events))
	}
}

func TestToggleEditModePersistsOnExit(t *testing.T) {
	store := storage.NewMemory()
	m := newTestManager(t, store)
	m.AddButton()
	if err := store.Remove(KeyButtonData); err != nil {
		t.Fatal(err)
	}

	if !m.ToggleEditMode() {
		t.Fatal("ToggleEditMode did not enter edit mode")
	}
	if _, ok, _ := store.Get(KeyButtonData); ok {
		t.Fatal("entering edit mode wrote button data")
	}
	if m.ToggleEditMode() {
		t.Fatal("ToggleEditMode did not leave edit mode")
	}
	raw, ok, err := store.Get(KeyButtonData)
	if err != nil || !ok {
		t.Fatalf("button data not persisted: ok=%v err=%v", ok, err)
	}
	if raw != `{"buttonCount":1,"buttonNames":["new button"]}` {
		t.Fatalf("raw = %s", raw)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	store := storage.NewMemory()
	m := newTestManager(t, store)
	m.AddButton()
	m.AddButton()
	m.RenameButtonAt(1, "coffee")
	m.RecordClick(1)
	m.RecordClick(0)
	m.ClearHistory()
	m.RecordClick(1)
	m.CompleteFirstVisit()
	m.EnterEditMode()

	reloaded := newTestManager(t, store)
	snap := reloaded.Snapshot()
	if !reflect.DeepEqual(snap.Buttons, m.Buttons()) {
		t.Fatalf("buttons = %+v", snap.Buttons)
	}
	if !reflect.DeepEqual(snap.Events, m.Events()) {
		t.Fatalf("events = %+v", snap.Events)
	}
	if snap.ClearedCount != 2 {
		t.Fatalf("cleared = %d, want 2", snap.ClearedCount)
	}
	if snap.EditMode {
		t.Fatal("edit mode persisted")
	}
	if !snap.FirstVisitDone {
		t.Fatal("first visit flag lost")
	}
}

func TestInitializeMalformedKeysFallBack(t *testing.T) {
	store := storage.NewMemory()
	store.Set(KeyButtonData, `{"buttonCount":2,"buttonNames":["a","b"]}`)
	store.Set(KeyHistory, `not json`)
	store.Set(KeyClearedHistory, `[{"buttonName":"a","timestamp":"2024/01/01 00:00:00"}]`)

	m := New(store, Options{})
	err := m.Initialize()
	if !errors.Is(err, ErrMalformedData) {
		t.Fatalf("err = %v, want ErrMalformedData", err)
	}
	var mde *MalformedDataError
	if !errors.As(err, &mde) || mde.Key != KeyHistory {
		t.Fatalf("malformed key = %+v", mde)
	}

	snap := m.Snapshot()
	if snap.Buttons.ButtonCount != 2 {
		t.Fatalf("buttons = %+v", snap.Buttons)
	}
	if len(snap.Events) != 0 {
		t.Fatalf("events = %+v", snap.Events)
	}
	if snap.ClearedCount != 1 {
		t.Fatalf("cleared = %d", snap.ClearedCount)
	}
}

func TestInitializeMalformedButtons(t *testing.T) {
	store := storage.NewMemory()
	store.Set(KeyButtonData, `{"buttonCount":-3}`)
	store.Set(KeyHistory, `[{"buttonName":"a","timestamp":"2024/01/01 00:00:00"}]`)

	m := New(store, Options{})
	if err := m.Initialize(); !errors.Is(err, ErrMalformedData) {
		t.Fatalf("err = %v", err)
	}
	if got := m.Buttons(); got.ButtonCount != 0 {
		t.Fatalf("buttons = %+v", got)
	}
	if len(m.Events()) != 1 {
		t.Fatal("history should still load")
	}
}

func TestInitializeFreshInstallDropsStaleHistory(t *testing.T) {
	store := storage.NewMemory()
	store.Set(KeyHistory, `[{"buttonName":"a","timestamp":"2024/01/01 00:00:00"}]`)
	store.Set(KeyFirstVisit, "true")

	m := newTestManager(t, store)
	if len(m.Events()) != 0 {
		t.Fatal("stale history loaded")
	}
	if _, ok, _ := store.Get(KeyHistory); ok {
		t.Fatal("stale history key kept")
	}
	if !m.FirstVisitDone() {
		t.Fatal("first visit flag dropped on fresh install")
	}
}

func TestResetAll(t *testing.T) {
	store := storage.NewMemory()
	m := newTestManager(t, store)
	m.AddButton()
	m.RecordClick(0)
	m.ClearHistory()
	m.CompleteFirstVisit()

	m.ResetAll()

	snap := m.Snapshot()
	if !snap.Buttons.Empty() || len(snap.Events) != 0 || snap.HasCleared() || snap.FirstVisitDone {
		t.Fatalf("snapshot after reset = %+v", snap)
	}
	for _, key := range []string{KeyButtonData, KeyHistory, KeyClearedHistory, KeyFirstVisit} {
		if _, ok, _ := store.Get(key); ok {
			t.Fatalf("store still holds %s", key)
		}
	}
}

func TestWriteFailureKeepsMemoryState(t *testing.T) {
	store := &failingStore{Memory: storage.NewMemory()}
	m := newTestManager(t, store)
	m.AddButton()

	store.failSet = true
	if _, err := m.RecordClick(0); err != nil {
		t.Fatalf("RecordClick: %v", err)
	}
	if len(m.Events()) != 1 {
		t.Fatal("event dropped after failed write")
	}
	err := m.LastError()
	if !errors.Is(err, ErrStorageUnavailable) || !errors.Is(err, errDiskFull) {
		t.Fatalf("LastError = %v", err)
	}

	store.failSet = false
	m.RecordClick(0)
	if err := m.LastError(); err != nil {
		t.Fatalf("LastError after recovery = %v", err)
	}
}

func TestResetAllClearFailure(t *testing.T) {
	store := &failingStore{Memory: storage.NewMemory(), failClear: true}
	m := newTestManager(t, store)
	m.AddButton()

	m.ResetAll()
	if !m.Buttons().Empty() {
		t.Fatal("memory not reset")
	}
	if !errors.Is(m.LastError(), ErrStorageUnavailable) {
		t.Fatalf("LastError = %v", m.LastError())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	m := newTestManager(t, nil)
	m.AddButton()
	m.RecordClick(0)

	snap := m.Snapshot()
	snap.Buttons.ButtonNames[0] = "mutated"
	snap.Events[0].ButtonName = "mutated"

	if m.Label(0) != DefaultLabel {
		t.Fatal("snapshot shares button names")
	}
	if m.Events()[0].ButtonName != DefaultLabel {
		t.Fatal("snapshot shares events")
	}
}
