package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Init() tea.Cmd
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmAction names what a confirmation dialog guards.
type confirmAction int

const (
	actionClearHistory confirmAction = iota
	actionRestoreHistory
	actionDeleteConfigs
	actionReset
	actionInstall
)

type confirmText struct {
	title       string
	description string
	affirmative string
}

var confirmTexts = map[confirmAction]confirmText{
	actionClearHistory: {
		title:       "Clear history?",
		description: "The cleared history can be restored until the next clear.",
		affirmative: "Clear",
	},
	actionRestoreHistory: {
		title:       "Restore cleared history?",
		description: "The current history will be replaced.",
		affirmative: "Restore",
	},
	actionDeleteConfigs: {
		title:       "Delete all buttons?",
		description: "Button names are removed. History is kept. This cannot be undone.",
		affirmative: "Delete",
	},
	actionReset: {
		title:       "Reset everything?",
		description: "Buttons, history and the cleared backup are deleted. This cannot be undone.",
		affirmative: "Reset",
	},
	actionInstall: {
		title:       "Install tally launcher?",
		description: "Adds tally to your application menu.",
		affirmative: "Install",
	},
}

// confirmResultMsg reports the answer to a confirmation dialog.
type confirmResultMsg struct {
	action confirmAction
	ok     bool
}

// confirmModal wraps a huh confirm field.
type confirmModal struct {
	action confirmAction
	form   *huh.Form
	answer *bool
}

func newConfirmModal(action confirmAction, width int) *confirmModal {
	text := confirmTexts[action]
	answer := new(bool)
	if width <= 0 || width > 56 {
		width = 56
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(text.title).
				Description(text.description).
				Affirmative(text.affirmative).
				Negative("Cancel").
				Value(answer),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false).WithWidth(width)
	return &confirmModal{action: action, form: form, answer: answer}
}

func (c *confirmModal) Init() tea.Cmd {
	return c.form.Init()
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, keys.Escape) {
		return c, c.result(false), true
	}

	model, cmd := c.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		c.form = form
	}

	switch c.form.State {
	case huh.StateCompleted:
		return c, c.result(*c.answer), true
	case huh.StateAborted:
		return c, c.result(false), true
	}
	return c, cmd, false
}

func (c *confirmModal) result(ok bool) tea.Cmd {
	action := c.action
	return func() tea.Msg {
		return confirmResultMsg{action: action, ok: ok}
	}
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	return c.form.View()
}
