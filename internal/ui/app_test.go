package ui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/export"
	"github.com/five82/tally/internal/install"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/storage"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)

type harness struct {
	t      *testing.T
	mgr    *state.Manager
	model  Model
	copied string
}

func newHarness(t *testing.T, buttons int) *harness {
	t.Helper()
	mgr := state.New(storage.NewMemory(), state.Options{Now: func() time.Time { return fixedTime }})
	if err := mgr.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	mgr.CompleteFirstVisit()
	for i := 0; i < buttons; i++ {
		mgr.AddButton()
	}
	return newHarnessWith(t, mgr, nil)
}

func newHarnessWith(t *testing.T, mgr *state.Manager, prompt *install.Prompt) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.SetDataDir(dir)
	cfg.ExportDir = filepath.Join(dir, "exports")
	cfg.ExportFormat = export.FormatCSV

	h := &harness{t: t, mgr: mgr}
	opts := Options{
		Manager:   mgr,
		Config:    cfg,
		Prefs:     prefs.Default(),
		PrefsPath: filepath.Join(dir, "prefs.toml"),
		Install:   prompt,
		Now:       func() time.Time { return fixedTime },
		Clipboard: func(s string) error {
			h.copied = s
			return nil
		},
	}
	h.model = New(opts)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		h.t.Fatalf("Update returned %T", next)
	}
	h.model = m
	return cmd
}

// press sends each key in order and returns the last command.
func (h *harness) press(keys ...string) tea.Cmd {
	h.t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = h.send(keyMsg(k))
	}
	return cmd
}

// run executes cmd and feeds its message back into the model.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		h.t.Fatal("expected a command")
	}
	h.send(cmd())
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestSplashGetStarted(t *testing.T) {
	mgr := state.New(storage.NewMemory(), state.Options{})
	if err := mgr.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	h := newHarnessWith(t, mgr, nil)

	if !strings.Contains(h.model.View(), "Get started") {
		t.Fatal("splash not shown on first visit")
	}
	h.press("enter")
	if !mgr.FirstVisitDone() {
		t.Fatal("enter on splash did not complete first visit")
	}
	if !strings.Contains(h.model.View(), "No buttons yet") {
		t.Fatal("empty grid not shown after splash")
	}
}

func TestAddFirstButtonEntersEditMode(t *testing.T) {
	h := newHarness(t, 0)

	h.press("a")
	if got := h.mgr.Buttons().ButtonCount; got != 1 {
		t.Fatalf("ButtonCount = %d, want 1", got)
	}
	if !h.mgr.EditMode() {
		t.Fatal("adding the first button should enter edit mode")
	}
}

func TestRecordByDigit(t *testing.T) {
	h := newHarness(t, 3)
	if err := h.mgr.RenameButtonAt(1, "Water"); err != nil {
		t.Fatal(err)
	}
	h.model.refresh()

	h.press("2")
	events := h.mgr.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	want := state.ClickEvent{ButtonName: "Water", Timestamp: "2024/03/09 14:05:07"}
	if events[0] != want {
		t.Fatalf("event = %+v, want %+v", events[0], want)
	}
	if h.model.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", h.model.cursor)
	}

	// Digits past the last button are ignored.
	h.press("7")
	if got := len(h.mgr.Events()); got != 1 {
		t.Fatalf("events = %d after out-of-range digit, want 1", got)
	}
}

func TestCursorMovementAndRecord(t *testing.T) {
	h := newHarness(t, 4) // 2x2

	h.press("l", "j")
	if h.model.cursor != 3 {
		t.Fatalf("cursor = %d, want 3", h.model.cursor)
	}
	h.press("l") // edge
	if h.model.cursor != 3 {
		t.Fatalf("cursor moved past edge: %d", h.model.cursor)
	}
	h.press("space")
	if got := len(h.mgr.Events()); got != 1 {
		t.Fatalf("events = %d, want 1", got)
	}
}

func TestNarrowLayoutMovesVertically(t *testing.T) {
	h := newHarness(t, 3)
	h.send(tea.WindowSizeMsg{Width: 50, Height: 40})

	h.press("j", "j")
	if h.model.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 in single column", h.model.cursor)
	}
	h.press("l")
	if h.model.cursor != 2 {
		t.Fatalf("cursor = %d, want 2 after moving right in single column", h.model.cursor)
	}
}

func TestRecordClosesHistory(t *testing.T) {
	h := newHarness(t, 2)

	h.press("H")
	if !h.model.historyOpen {
		t.Fatal("H should open history")
	}
	h.press("1")
	if h.model.historyOpen {
		t.Fatal("recording should close history")
	}
}

func TestEditModeAddRemoveRename(t *testing.T) {
	h := newHarness(t, 1)

	h.press("e")
	if !h.mgr.EditMode() {
		t.Fatal("e should enter edit mode")
	}
	h.press("+", "+")
	if got := h.mgr.Buttons().ButtonCount; got != 3 {
		t.Fatalf("ButtonCount = %d, want 3", got)
	}
	if h.model.cursor != 2 {
		t.Fatalf("cursor = %d, want the new button", h.model.cursor)
	}
	h.press("-")
	if got := h.mgr.Buttons().ButtonCount; got != 2 {
		t.Fatalf("ButtonCount = %d, want 2", got)
	}
	if h.model.cursor != 1 {
		t.Fatalf("cursor = %d, want clamped to 1", h.model.cursor)
	}

	h.press("r", "ctrl+u", "S", "t", "r", "e", "t", "c", "h", "enter")
	if got := h.mgr.Label(1); got != "Stretch" {
		t.Fatalf("Label(1) = %q, want Stretch", got)
	}
	if h.model.renaming {
		t.Fatal("enter should finish renaming")
	}

	h.press("esc")
	if h.mgr.EditMode() {
		t.Fatal("esc should leave edit mode")
	}
}

func TestRenameCancel(t *testing.T) {
	h := newHarness(t, 1)

	h.press("e", "r", "x", "esc")
	if h.model.renaming {
		t.Fatal("esc should cancel renaming")
	}
	if got := h.mgr.Label(0); got != state.DefaultLabel {
		t.Fatalf("Label(0) = %q, want unchanged", got)
	}
	if !h.mgr.EditMode() {
		t.Fatal("cancelling a rename should stay in edit mode")
	}
}

func TestEditModeLimits(t *testing.T) {
	h := newHarness(t, state.MaxButtons)

	h.press("e", "+")
	if got := h.mgr.Buttons().ButtonCount; got != state.MaxButtons {
		t.Fatalf("ButtonCount = %d, want %d", got, state.MaxButtons)
	}
	if h.model.status.level != statusWarn {
		t.Fatalf("status = %+v, want a warning", h.model.status)
	}

	h = newHarness(t, 1)
	h.press("e", "x")
	if got := h.mgr.Buttons().ButtonCount; got != 1 {
		t.Fatalf("ButtonCount = %d, want 1", got)
	}
	if h.model.status.level != statusWarn {
		t.Fatalf("status = %+v, want a warning", h.model.status)
	}
}

func TestDeleteButtonInEditMode(t *testing.T) {
	h := newHarness(t, 3)
	if err := h.mgr.RenameButtonAt(1, "Walk"); err != nil {
		t.Fatal(err)
	}
	h.model.refresh()

	h.press("e", "l", "x")
	got := h.mgr.Buttons()
	if got.ButtonCount != 2 {
		t.Fatalf("ButtonCount = %d, want 2", got.ButtonCount)
	}
	for _, name := range got.ButtonNames {
		if name == "Walk" {
			t.Fatalf("Walk still present: %v", got.ButtonNames)
		}
	}
}

func TestEditModeHidesHistory(t *testing.T) {
	h := newHarness(t, 1)

	h.press("H", "e")
	if h.model.historyOpen {
		t.Fatal("entering edit mode should close history")
	}
}

func TestHistoryDeleteNewestFirst(t *testing.T) {
	h := newHarness(t, 2)
	h.press("1", "2", "H", "x")

	events := h.mgr.Events()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].ButtonName != state.DefaultLabel {
		t.Fatalf("remaining = %+v", events[0])
	}
}

func TestClearAndRestoreHistory(t *testing.T) {
	h := newHarness(t, 1)
	h.press("1", "1", "H", "C")
	if h.model.modal == nil {
		t.Fatal("C should open a confirmation")
	}

	h.send(confirmResultMsg{action: actionClearHistory, ok: true})
	if got := len(h.mgr.Events()); got != 0 {
		t.Fatalf("events = %d after clear, want 0", got)
	}
	if !h.mgr.HasCleared() {
		t.Fatal("clear should keep a backup")
	}
	if h.model.modal != nil {
		t.Fatal("modal should close after the answer")
	}

	h.press("R")
	h.send(confirmResultMsg{action: actionRestoreHistory, ok: true})
	if got := len(h.mgr.Events()); got != 2 {
		t.Fatalf("events = %d after restore, want 2", got)
	}
}

func TestRestoreWithoutBackupWarns(t *testing.T) {
	h := newHarness(t, 1)
	h.press("H", "R")
	if h.model.modal != nil {
		t.Fatal("restore without a backup should not ask")
	}
	if h.model.status.level != statusWarn {
		t.Fatalf("status = %+v, want a warning", h.model.status)
	}
}

func TestConfirmCancelled(t *testing.T) {
	h := newHarness(t, 1)
	h.press("1", "H", "C")
	h.send(confirmResultMsg{action: actionClearHistory, ok: false})

	if got := len(h.mgr.Events()); got != 1 {
		t.Fatalf("events = %d after cancel, want 1", got)
	}
}

func TestEscapeClosesModal(t *testing.T) {
	h := newHarness(t, 1)
	h.press("ctrl+r")
	if h.model.modal == nil {
		t.Fatal("ctrl+r should open a confirmation")
	}
	cmd := h.press("esc")
	if h.model.modal != nil {
		t.Fatal("esc should close the modal")
	}
	h.run(cmd)
	if got := h.mgr.Buttons().ButtonCount; got != 1 {
		t.Fatalf("ButtonCount = %d, want 1 after cancelled reset", got)
	}
}

func TestDeleteAllButtons(t *testing.T) {
	h := newHarness(t, 3)
	h.press("1")
	h.press("D")
	h.send(confirmResultMsg{action: actionDeleteConfigs, ok: true})

	if !h.mgr.Buttons().Empty() {
		t.Fatal("buttons should be gone")
	}
	if got := len(h.mgr.Events()); got != 1 {
		t.Fatalf("events = %d, want history kept", got)
	}
	if !strings.Contains(h.model.View(), "No buttons yet") {
		t.Fatal("empty screen not shown")
	}
}

func TestResetShowsSplash(t *testing.T) {
	h := newHarness(t, 2)
	h.press("1")
	h.send(confirmResultMsg{action: actionReset, ok: true})

	if h.mgr.FirstVisitDone() {
		t.Fatal("reset should clear the first-visit flag")
	}
	if !h.mgr.Buttons().Empty() || len(h.mgr.Events()) != 0 {
		t.Fatal("reset should wipe buttons and history")
	}
	if !strings.Contains(h.model.View(), "Get started") {
		t.Fatal("splash not shown after reset")
	}
}

func TestExport(t *testing.T) {
	h := newHarness(t, 1)
	h.press("1")

	h.run(h.press("s"))
	if h.model.status.level != statusSuccess {
		t.Fatalf("status = %+v, want success", h.model.status)
	}
	path := filepath.Join(h.model.cfg.ExportDir, export.FileName(fixedTime, export.FormatCSV))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "new button,2024/03/09 14:05:07") {
		t.Fatalf("export = %q", data)
	}
}

func TestExportEmptyWritesHeader(t *testing.T) {
	h := newHarness(t, 1)
	h.run(h.press("s"))
	if h.model.status.level != statusSuccess {
		t.Fatalf("status = %+v, want success", h.model.status)
	}
	path := filepath.Join(h.model.cfg.ExportDir, export.FileName(fixedTime, export.FormatCSV))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if got := string(data); got != "Button,Timestamp\n" {
		t.Fatalf("export = %q, want header only", got)
	}
}

func TestYankCopiesHistory(t *testing.T) {
	h := newHarness(t, 1)
	h.press("1", "H")
	h.run(h.press("y"))

	if h.copied != export.TSV(h.mgr.Events()) {
		t.Fatalf("copied = %q", h.copied)
	}
}

func TestInstallFlow(t *testing.T) {
	mgr := state.New(storage.NewMemory(), state.Options{})
	if err := mgr.Initialize(); err != nil {
		t.Fatal(err)
	}
	mgr.CompleteFirstVisit()
	prompt := install.NewPrompt(t.TempDir(), "tally")
	h := newHarnessWith(t, mgr, prompt)

	if !h.model.installAvailable {
		t.Fatal("install should be available")
	}
	h.press("I")
	if h.model.modal == nil {
		t.Fatal("I should open a confirmation")
	}
	cmd := h.send(confirmResultMsg{action: actionInstall, ok: true})
	if h.model.installAvailable {
		t.Fatal("install control should disappear once triggered")
	}
	h.run(cmd)

	if _, err := os.Stat(prompt.Path()); err != nil {
		t.Fatalf("launcher not written: %v", err)
	}
	if h.model.status.level != statusSuccess {
		t.Fatalf("status = %+v, want success", h.model.status)
	}

	h.press("I")
	if h.model.modal != nil {
		t.Fatal("install prompt is one-shot")
	}
}

func TestInstallDismissed(t *testing.T) {
	mgr := state.New(storage.NewMemory(), state.Options{})
	if err := mgr.Initialize(); err != nil {
		t.Fatal(err)
	}
	mgr.CompleteFirstVisit()
	prompt := install.NewPrompt(t.TempDir(), "tally")
	h := newHarnessWith(t, mgr, prompt)

	h.press("I")
	h.run(h.send(confirmResultMsg{action: actionInstall, ok: false}))

	if prompt.Available() {
		t.Fatal("dismissing should consume the prompt")
	}
	if _, err := os.Stat(prompt.Path()); !os.IsNotExist(err) {
		t.Fatalf("launcher written after dismissal: %v", err)
	}
}

func TestCycleThemeSavesPrefs(t *testing.T) {
	h := newHarness(t, 1)
	h.press("T")

	if h.model.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", h.model.theme.Name)
	}
	saved, err := prefs.Load(h.model.prefsPath)
	if err != nil {
		t.Fatalf("Load prefs: %v", err)
	}
	if saved.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", saved.Theme)
	}
}

func TestNoticesOverlay(t *testing.T) {
	h := newHarness(t, 1)
	logPath := filepath.Join(t.TempDir(), "tally.log")
	lines := "2024/03/09 14:05:07 tally: warning: disk-full\n2024/03/09 14:05:08 tally: debug: add-button\n"
	if err := os.WriteFile(logPath, []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}
	h.model.logPath = logPath

	h.run(h.press("L"))
	view := h.model.View()
	if !strings.Contains(view, "disk-full") {
		t.Fatal("warning line missing from notices")
	}
	if strings.Contains(view, "add-button") {
		t.Fatal("debug line shown while debug is hidden")
	}

	h.press("d")
	if !strings.Contains(h.model.View(), "add-button") {
		t.Fatal("debug line hidden after toggling")
	}

	h.press("esc")
	if h.model.showNotices {
		t.Fatal("esc should close notices")
	}
}

func TestHelpClosesOnAnyKey(t *testing.T) {
	h := newHarness(t, 1)
	h.press("?")
	if !strings.Contains(h.model.View(), "Keyboard Shortcuts") {
		t.Fatal("help not shown")
	}
	h.press("1")
	if h.model.showHelp {
		t.Fatal("help should close")
	}
	if got := len(h.mgr.Events()); got != 0 {
		t.Fatal("closing help should not record")
	}
}

func TestGridViewShowsLabels(t *testing.T) {
	h := newHarness(t, 2)
	if err := h.mgr.RenameButtonAt(0, "Coffee"); err != nil {
		t.Fatal(err)
	}
	h.model.refresh()

	view := h.model.View()
	if !strings.Contains(view, "Coffee") {
		t.Fatal("label missing from grid")
	}
	if !strings.Contains(view, "tally") {
		t.Fatal("header missing")
	}
}
