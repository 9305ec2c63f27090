package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/state"
)

// renderHeader renders the top bar: name, mode, counts and any storage error.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 70

	var parts []string
	parts = append(parts, bg.Render("tally", styles.Logo))

	if m.snap.EditMode {
		parts = append(parts, bg.Render("EDIT", styles.WarningText.Bold(true)))
	}

	label := "Buttons:"
	if compact {
		label = "B:"
	}
	parts = append(parts,
		bg.Render(label, styles.MutedText)+bg.Space()+
			bg.Render(strconv.Itoa(m.snap.Buttons.ButtonCount)+"/"+strconv.Itoa(state.MaxButtons), styles.Text),
	)

	label = "Events:"
	if compact {
		label = "E:"
	}
	parts = append(parts,
		bg.Render(label, styles.MutedText)+bg.Space()+
			bg.Render(strconv.Itoa(len(m.snap.Events)), styles.Text),
	)

	if m.snap.HasCleared() && !compact {
		parts = append(parts,
			bg.Render("Backup:", styles.MutedText)+bg.Space()+
				bg.Render(pluralize(m.snap.ClearedCount, "event"), styles.InfoText),
		)
	}

	if m.snap.LastError != nil {
		maxErr := 60
		if compact {
			maxErr = 24
		}
		parts = append(parts,
			bg.Render("ERROR", styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.snap.LastError.Error(), maxErr), styles.DangerText),
		)
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current mode.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.renaming:
		commands = []cmd{
			{"enter", "Save"},
			{"esc", "Cancel"},
		}
	case m.snap.EditMode:
		commands = []cmd{
			{"+", "Add"},
			{"-", "Remove last"},
			{"r", "Rename"},
			{"x", "Delete"},
			{"D", "Delete all"},
			{"e", "Done"},
		}
	case m.snap.Buttons.Empty():
		commands = []cmd{
			{"a", "Add your first button"},
			{"H", "History"},
		}
	case m.historyOpen:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"x", "Delete"},
			{"C", "Clear"},
		}
		if m.snap.HasCleared() {
			commands = append(commands, cmd{"R", "Restore"})
		}
		commands = append(commands,
			cmd{"y", "Copy"},
			cmd{"s", "Export"},
			cmd{"esc", "Close"},
		)
	default:
		commands = []cmd{
			{"1-" + strconv.Itoa(m.snap.Buttons.ButtonCount), "Record"},
			{"enter", "Record focused"},
			{"e", "Edit buttons"},
			{"H", "History"},
			{"s", "Export"},
		}
	}

	if m.installAvailable {
		commands = append(commands, cmd{"I", "Install"})
	}
	commands = append(commands, cmd{"?", "More"})

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}

// renderStatusLine renders the last feedback message at the bottom.
func (m Model) renderStatusLine() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	if m.status.text == "" {
		return bg.FillLine("", m.width)
	}

	style := styles.MutedText
	switch m.status.level {
	case statusSuccess:
		style = styles.SuccessText
	case statusWarn:
		style = styles.WarningText
	case statusError:
		style = styles.DangerText
	}
	text := truncate(m.status.text, m.width-2)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(m.width).
		Padding(0, 1).
		Render(bg.Render(text, style))
}
