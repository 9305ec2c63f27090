package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderMain renders the main screen: header, command bar, the grid or the
// empty screen, the history panel when open, and the status line.
func (m Model) renderMain() string {
	header := m.renderHeader()
	cmdBar := m.renderCommandBar()
	statusLine := m.renderStatusLine()

	bodyHeight := max(m.height-3, 1)
	historyHeight := 0
	if m.historyOpen && !m.snap.EditMode {
		historyHeight = min(historyPanelHeight, bodyHeight/2+1)
	}
	gridHeight := bodyHeight - historyHeight

	var body string
	if m.snap.Buttons.Empty() {
		body = m.renderEmpty(gridHeight)
	} else {
		body = m.renderGrid(gridHeight)
	}
	if historyHeight > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, m.renderHistory(historyHeight))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, cmdBar, body, statusLine)
}

// renderGrid lays the buttons out in the grid for the current width.
func (m Model) renderGrid(height int) string {
	styles := m.theme.Styles()
	n := m.snap.Buttons.ButtonCount
	g := GridFor(n, m.narrow())
	if g.Rows == 0 || g.Cols == 0 {
		return m.fill("", height)
	}

	cellWidth := max(m.width/g.Cols, minButtonWidth)
	cellHeight := buttonHeight
	if g.Rows*cellHeight > height {
		cellHeight = max(height/g.Rows, 3)
	}

	rows := make([]string, 0, g.Rows)
	for r := 0; r < g.Rows; r++ {
		cells := make([]string, 0, g.Cols)
		for c := 0; c < g.Cols; c++ {
			i := r*g.Cols + c
			if i >= n {
				break
			}
			cells = append(cells, m.renderButton(i, cellWidth, cellHeight, styles))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.fill(lipgloss.JoinVertical(lipgloss.Left, rows...), height)
}

// renderButton renders one grid cell. Width and height include the border.
func (m Model) renderButton(i, width, height int, styles Styles) string {
	focused := i == m.cursor
	style := styles.Button
	switch {
	case m.snap.EditMode && focused:
		style = styles.ButtonEdit
	case focused:
		style = styles.ButtonFocus
	}

	inner := max(width-2, 1)
	var label string
	if m.renaming && focused {
		m.input.Width = max(inner-2, 1)
		label = m.input.View()
	} else {
		label = strconv.Itoa(i+1) + "  " + truncate(m.snap.Label(i), max(inner-5, 1))
	}

	return style.
		Width(inner).
		Height(max(height-2, 1)).
		MaxWidth(width).
		Render(label)
}

// renderEmpty renders the zero-button screen.
func (m Model) renderEmpty(height int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("No buttons yet"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Press "))
	b.WriteString(styles.AccentText.Render("a"))
	b.WriteString(styles.MutedText.Render(" to add your first button."))
	if n := len(m.snap.Events); n > 0 {
		b.WriteString("\n")
		b.WriteString(styles.FaintText.Render("Your history still has " + pluralize(n, "event") + "."))
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, b.String())
}

// fill pads content to exactly height lines.
func (m Model) fill(content string, height int) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(height).
		MaxHeight(height).
		Render(content)
}
