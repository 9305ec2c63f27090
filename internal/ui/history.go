package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHistory renders the history panel, newest first, scrolled so the
// selected row stays visible.
func (m Model) renderHistory(height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)

	innerWidth := max(m.width-4, 10)
	innerHeight := max(height-3, 1) // border and title

	events := m.snap.NewestFirst()
	title := "History · " + pluralize(len(events), "event")
	if m.snap.HasCleared() {
		title += " · backup of " + pluralize(m.snap.ClearedCount, "event")
	}

	var lines []string
	if len(events) == 0 {
		lines = append(lines, bg.Render("No events recorded", styles.FaintText))
	} else {
		start := 0
		if m.historyCursor >= innerHeight {
			start = m.historyCursor - innerHeight + 1
		}
		end := min(start+innerHeight, len(events))

		nameWidth := max(innerWidth-len("2006/01/02 15:04:05")-4, 8)
		for i := start; i < end; i++ {
			ev := events[i]
			name := padRight(truncate(ev.ButtonName, nameWidth), nameWidth)
			if i == m.historyCursor {
				lines = append(lines, styles.Selected.Width(innerWidth).Render(" "+name+"  "+ev.Timestamp))
				continue
			}
			lines = append(lines, bg.FillLine(
				bg.Space()+bg.Render(name, styles.Text)+bg.Spaces(2)+bg.Render(ev.Timestamp, styles.MutedText),
				innerWidth,
			))
		}
	}

	content := bg.Render(title, styles.AccentText.Bold(true)) + "\n" + strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Width(m.width-2).
		Height(height-2).
		MaxHeight(height).
		Padding(0, 1).
		Render(content)
}
