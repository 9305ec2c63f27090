package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/tally/internal/export"
	"github.com/five82/tally/internal/install"
	"github.com/five82/tally/internal/logtail"
)

// Messages

type exportDoneMsg struct {
	path string
	err  error
}

type clipboardMsg struct {
	count int
	err   error
}

type installOutcomeMsg install.Outcome

type noticesMsg struct {
	lines []string
	err   error
}

// noticeLimit bounds how much of the log the notices overlay reads.
const noticeLimit = 500

// Commands

func (m Model) exportCmd() tea.Cmd {
	events := m.snap.Events
	dir := m.cfg.ExportDir
	if dir == "" {
		dir = m.cfg.DataDir
	}
	format := m.cfg.ExportFormat
	now := m.now()
	return func() tea.Msg {
		path, err := export.Export(dir, events, format, now)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) yankCmd() tea.Cmd {
	events := m.snap.Events
	copyFn := m.clipboard
	return func() tea.Msg {
		if len(events) == 0 {
			return clipboardMsg{err: export.ErrNoEvents}
		}
		err := copyFn(export.TSV(events))
		return clipboardMsg{count: len(events), err: err}
	}
}

// triggerInstall consumes the one-shot install prompt with the answer the
// user gave in the confirmation dialog.
func (m *Model) triggerInstall(ok bool) tea.Cmd {
	if m.install == nil {
		return nil
	}
	m.installAvailable = false
	ch := m.install.Trigger(m.ctx, func(context.Context) (bool, error) {
		return ok, nil
	})
	return func() tea.Msg {
		outcome, open := <-ch
		if !open {
			return installOutcomeMsg{Result: install.Failed, Err: install.ErrUnavailable}
		}
		return installOutcomeMsg(outcome)
	}
}

func loadNoticesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return noticesMsg{}
		}
		lines, err := logtail.Read(path, noticeLimit)
		return noticesMsg{lines: lines, err: err}
	}
}

// Handlers

func (m *Model) handleExportDone(msg exportDoneMsg) {
	if msg.err != nil {
		m.setError(msg.err)
		return
	}
	m.setStatus(statusSuccess, "Exported "+msg.path)
}

func (m *Model) handleClipboard(msg clipboardMsg) {
	if msg.err != nil {
		if errors.Is(msg.err, export.ErrNoEvents) {
			m.setStatus(statusWarn, "History is empty")
			return
		}
		m.setError(msg.err)
		return
	}
	m.setStatus(statusSuccess, "Copied "+pluralize(msg.count, "event"))
}

func (m *Model) handleInstallOutcome(msg installOutcomeMsg) {
	switch msg.Result {
	case install.Accepted:
		m.setStatus(statusSuccess, "Launcher installed at "+msg.Path)
	case install.Dismissed:
		m.setStatus(statusInfo, "Launcher not installed")
	default:
		if msg.Err != nil {
			m.setError(msg.Err)
			return
		}
		m.setStatus(statusError, "Launcher install failed")
	}
}
