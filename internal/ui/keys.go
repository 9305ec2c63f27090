package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Notices    key.Binding
	Install    key.Binding
	Reset      key.Binding

	// Grid
	Record   key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	EditMode key.Binding

	// Edit mode
	AddButton    key.Binding
	RemoveButton key.Binding
	Rename       key.Binding
	DeleteButton key.Binding

	// History
	History       key.Binding
	DeleteEvent   key.Binding
	ClearHistory  key.Binding
	Restore       key.Binding
	DeleteConfigs key.Binding
	Yank          key.Binding
	Export        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close panel"),
		),
		Notices: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Notices"),
		),
		Install: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "Install launcher"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "Reset everything"),
		),

		Record: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/1-8", "Record"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		EditMode: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit buttons"),
		),

		AddButton: key.NewBinding(
			key.WithKeys("+", "a"),
			key.WithHelp("+/a", "Add button"),
		),
		RemoveButton: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Remove last button"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "Rename"),
		),
		DeleteButton: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete button"),
		),

		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "History"),
		),
		DeleteEvent: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "Delete entry"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "Clear history"),
		),
		Restore: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Restore history"),
		),
		DeleteConfigs: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Delete all buttons"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy history"),
		),
		Export: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Export spreadsheet"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Record, k.Up, k.Down, k.Left, k.Right},
		{k.EditMode, k.AddButton, k.RemoveButton, k.Rename, k.DeleteButton},
		{k.History, k.DeleteEvent, k.ClearHistory, k.Restore, k.DeleteConfigs, k.Yank, k.Export},
		{k.Notices, k.Install, k.Reset, k.CycleTheme, k.Help, k.Quit},
	}
}
