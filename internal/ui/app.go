package ui

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/install"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Manager   *state.Manager
	Config    config.Config
	Prefs     prefs.Prefs
	PrefsPath string
	Install   *install.Prompt // nil hides the launcher control
	LogPath   string
	Notice    string // shown in the status line at startup
	Now       func() time.Time
	Clipboard func(string) error
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarn
	statusError
)

type statusLine struct {
	text  string
	level statusLevel
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	mgr       *state.Manager
	cfg       config.Config
	prefs     prefs.Prefs
	prefsPath string
	install   *install.Prompt
	logPath   string
	now       func() time.Time
	clipboard func(string) error

	// UI state
	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool
	status statusLine

	// Data state
	snap state.Snapshot

	// Grid state
	cursor   int
	renaming bool
	input    textinput.Model

	// History panel
	historyOpen   bool
	historyCursor int

	// Overlays
	modal            Modal
	showHelp         bool
	showNotices      bool
	notices          viewport.Model
	noticeLines      []string
	installAvailable bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	userPrefs := opts.Prefs
	if userPrefs.Theme == "" {
		userPrefs.Theme = prefs.DefaultTheme
	}

	input := textinput.New()
	input.Placeholder = state.DefaultLabel
	input.CharLimit = 40
	input.Prompt = ""

	m := Model{
		ctx:       ctx,
		mgr:       opts.Manager,
		cfg:       opts.Config,
		prefs:     userPrefs,
		prefsPath: opts.PrefsPath,
		install:   opts.Install,
		logPath:   opts.LogPath,
		now:       now,
		clipboard: copyFn,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(userPrefs.Theme),
		input:     input,
	}
	if opts.Notice != "" {
		m.status = statusLine{text: opts.Notice, level: statusWarn}
	}
	m.installAvailable = m.install != nil && m.install.Available()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.updateNoticesViewport()
		if m.modal != nil {
			return m.updateModal(msg)
		}
		return m, nil

	case confirmResultMsg:
		return m.handleConfirm(msg)

	case exportDoneMsg:
		m.handleExportDone(msg)
		return m, nil

	case clipboardMsg:
		m.handleClipboard(msg)
		return m, nil

	case installOutcomeMsg:
		m.handleInstallOutcome(msg)
		return m, nil

	case noticesMsg:
		m.handleNotices(msg)
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}

	if m.renaming {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	modal, cmd, done := m.modal.Update(msg, m.keys)
	if done {
		m.modal = nil
	} else {
		m.modal = modal
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.placeModal(m.modal.View(m.theme, m.width, m.height), 60)
	}
	if m.showNotices {
		return m.renderNotices()
	}
	if !m.snap.FirstVisitDone {
		return m.renderSplash()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if m.showNotices {
		return m.handleNoticesKey(msg)
	}
	if !m.snap.FirstVisitDone {
		return m.handleSplashKey(msg)
	}
	if m.renaming {
		return m.handleRenameKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Notices):
		return m.openNotices()
	case key.Matches(msg, m.keys.Install):
		if !m.installAvailable {
			m.setStatus(statusInfo, "Launcher already installed or dismissed")
			return m, nil
		}
		return m.openConfirm(actionInstall)
	case key.Matches(msg, m.keys.Reset):
		return m.openConfirm(actionReset)
	case key.Matches(msg, m.keys.Export):
		return m, m.exportCmd()
	case key.Matches(msg, m.keys.DeleteConfigs):
		if m.snap.Buttons.Empty() {
			return m, nil
		}
		return m.openConfirm(actionDeleteConfigs)
	case key.Matches(msg, m.keys.EditMode):
		if m.snap.Buttons.Empty() {
			return m, nil
		}
		m.toggleEditMode()
		return m, nil
	}

	if m.snap.EditMode {
		return m.handleEditKey(msg)
	}

	if key.Matches(msg, m.keys.History) {
		m.historyOpen = !m.historyOpen
		m.historyCursor = 0
		return m, nil
	}
	if m.historyOpen {
		if next, cmd, handled := m.handleHistoryKey(msg); handled {
			return next, cmd
		}
	}

	if m.snap.Buttons.Empty() {
		return m.handleEmptyKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m Model) handleSplashKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Record):
		m.mgr.CompleteFirstVisit()
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

// handleEmptyKey handles the zero-button screen.
func (m Model) handleEmptyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.AddButton) || key.Matches(msg, m.keys.Record) {
		m.mgr.AddButton()
		m.mgr.EnterEditMode()
		m.historyOpen = false
		m.cursor = 0
		m.refresh()
		m.setStatus(statusInfo, "Edit mode: press r to name your button")
	}
	return m, nil
}

// handleGridKey handles view mode: recording and moving the cursor.
func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if i, ok := digitIndex(msg); ok {
		m.record(i)
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Record):
		m.record(m.cursor)
	case key.Matches(msg, m.keys.Escape):
		m.status = statusLine{}
	default:
		m.moveCursor(msg)
	}
	return m, nil
}

// handleEditKey handles edit mode.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.toggleEditMode()
	case key.Matches(msg, m.keys.AddButton):
		if m.mgr.AddButton() {
			m.refresh()
			m.cursor = m.snap.Buttons.ButtonCount - 1
			m.setStatus(statusSuccess, "Added button "+strconv.Itoa(m.snap.Buttons.ButtonCount))
		} else {
			m.setStatus(statusWarn, "A grid holds at most "+strconv.Itoa(state.MaxButtons)+" buttons")
		}
	case key.Matches(msg, m.keys.RemoveButton):
		if m.mgr.RemoveButton() {
			m.refresh()
			m.setStatus(statusInfo, "Removed the last button")
		} else {
			m.setStatus(statusWarn, "At least one button is required")
		}
	case key.Matches(msg, m.keys.DeleteButton):
		label := m.snap.Label(m.cursor)
		if err := m.mgr.RemoveButtonAt(m.cursor); err != nil {
			m.setError(err)
			break
		}
		m.refresh()
		m.setStatus(statusInfo, "Deleted "+label)
	case key.Matches(msg, m.keys.Rename):
		m.renaming = true
		m.input.SetValue(m.snap.Label(m.cursor))
		m.input.CursorEnd()
		return m, m.input.Focus()
	default:
		m.moveCursor(msg)
	}
	return m, nil
}

func (m Model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if err := m.mgr.RenameButtonAt(m.cursor, m.input.Value()); err != nil {
			m.setError(err)
		}
		m.renaming = false
		m.input.Blur()
		m.refresh()
		return m, nil
	case tea.KeyEsc:
		m.renaming = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleHistoryKey handles keys for the open history panel. It reports
// whether the key was consumed.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	n := len(m.snap.Events)
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.historyOpen = false
	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < n-1 {
			m.historyCursor++
		}
	case key.Matches(msg, m.keys.DeleteEvent):
		if n == 0 {
			return m, nil, true
		}
		ev, err := m.mgr.DeleteEventAt(m.historyCursor)
		if err != nil {
			m.setError(err)
			return m, nil, true
		}
		m.refresh()
		m.setStatus(statusInfo, "Deleted "+ev.ButtonName+" at "+ev.Timestamp)
	case key.Matches(msg, m.keys.ClearHistory):
		next, cmd := m.openConfirm(actionClearHistory)
		return next.(Model), cmd, true
	case key.Matches(msg, m.keys.Restore):
		if !m.snap.HasCleared() {
			m.setStatus(statusWarn, "Nothing to restore")
			return m, nil, true
		}
		next, cmd := m.openConfirm(actionRestoreHistory)
		return next.(Model), cmd, true
	case key.Matches(msg, m.keys.Yank):
		return m, m.yankCmd(), true
	default:
		return m, nil, false
	}
	return m, nil, true
}

func (m Model) openConfirm(action confirmAction) (tea.Model, tea.Cmd) {
	modal := newConfirmModal(action, m.width-8)
	m.modal = modal
	return m, modal.Init()
}

func (m Model) handleConfirm(msg confirmResultMsg) (tea.Model, tea.Cmd) {
	m.modal = nil
	if msg.action == actionInstall {
		return m, m.triggerInstall(msg.ok)
	}
	if !msg.ok {
		m.setStatus(statusInfo, "Cancelled")
		return m, nil
	}

	switch msg.action {
	case actionClearHistory:
		m.mgr.ClearHistory()
		m.historyCursor = 0
		m.setStatus(statusInfo, "History cleared. Press R to restore it")
	case actionRestoreHistory:
		if err := m.mgr.RestoreHistory(); err != nil {
			m.setError(err)
			break
		}
		m.historyCursor = 0
		m.setStatus(statusSuccess, "History restored")
	case actionDeleteConfigs:
		m.mgr.ClearAllButtonConfigs()
		m.cursor = 0
		m.setStatus(statusInfo, "All buttons deleted")
	case actionReset:
		m.mgr.ResetAll()
		m.cursor = 0
		m.historyOpen = false
		m.historyCursor = 0
		m.renaming = false
		m.setStatus(statusInfo, "Everything was reset")
	}
	m.refresh()
	return m, nil
}

func (m *Model) record(i int) {
	if i < 0 || i >= m.snap.Buttons.ButtonCount {
		return
	}
	ev, err := m.mgr.RecordClick(i)
	if err != nil {
		m.setError(err)
		return
	}
	m.cursor = i
	m.historyOpen = false
	m.refresh()
	m.setStatus(statusSuccess, "Recorded "+ev.ButtonName+" at "+ev.Timestamp)
}

func (m *Model) toggleEditMode() {
	m.renaming = false
	m.input.Blur()
	if m.mgr.ToggleEditMode() {
		m.historyOpen = false
		m.setStatus(statusInfo, "Edit mode")
	} else {
		m.status = statusLine{}
	}
	m.refresh()
}

func (m *Model) moveCursor(msg tea.KeyMsg) {
	n := m.snap.Buttons.ButtonCount
	g := GridFor(n, m.narrow())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = g.Move(m.cursor, n, -1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = g.Move(m.cursor, n, 1, 0)
	case key.Matches(msg, m.keys.Left):
		m.cursor = g.Move(m.cursor, n, 0, -1)
	case key.Matches(msg, m.keys.Right):
		m.cursor = g.Move(m.cursor, n, 0, 1)
	}
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	m.savePrefs()
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.setError(err)
	}
}

// refresh re-reads the manager and keeps cursors in range.
func (m *Model) refresh() {
	if m.mgr == nil {
		return
	}
	m.snap = m.mgr.Snapshot()
	if n := m.snap.Buttons.ButtonCount; m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if n := len(m.snap.Events); m.historyCursor >= n {
		m.historyCursor = max(n-1, 0)
	}
}

func (m Model) narrow() bool {
	return m.cfg.Narrow(m.width)
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.status = statusLine{text: text, level: level}
}

func (m *Model) setError(err error) {
	level := statusError
	if errors.Is(err, state.ErrMinButtons) || errors.Is(err, state.ErrNothingToRestore) {
		level = statusWarn
	}
	m.status = statusLine{text: err.Error(), level: level}
}

// digitIndex maps the keys 1-8 to button indexes.
func digitIndex(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '0'+state.MaxButtons {
		return 0, false
	}
	return int(r - '1'), true
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
