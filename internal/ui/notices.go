package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/logtail"
)

// openNotices shows the log overlay and loads the log tail.
func (m Model) openNotices() (tea.Model, tea.Cmd) {
	m.showNotices = true
	m.updateNoticesViewport()
	return m, loadNoticesCmd(m.logPath)
}

func (m *Model) handleNotices(msg noticesMsg) {
	if msg.err != nil {
		m.noticeLines = []string{"could not read " + m.logPath + ": " + msg.err.Error()}
	} else {
		m.noticeLines = msg.lines
	}
	m.updateNoticesViewport()
	m.notices.GotoBottom()
}

func (m Model) handleNoticesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Notices), key.Matches(msg, m.keys.Quit):
		m.showNotices = false
		return m, nil
	case msg.String() == "d":
		m.prefs.ShowDebug = !m.prefs.ShowDebug
		m.savePrefs()
		m.updateNoticesViewport()
		m.notices.GotoBottom()
		return m, nil
	case msg.String() == "r":
		return m, loadNoticesCmd(m.logPath)
	}
	var cmd tea.Cmd
	m.notices, cmd = m.notices.Update(msg)
	return m, cmd
}

// updateNoticesViewport sizes the viewport and refreshes its content.
func (m *Model) updateNoticesViewport() {
	// Box height = m.height - 1 (hint line); inner = box - 2 borders
	w, h := max(m.width-4, 1), max(m.height-3, 1)
	if m.notices.Width == 0 {
		m.notices = viewport.New(w, h)
	}
	m.notices.Width = w
	m.notices.Height = h
	m.notices.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.notices.SetContent(m.renderNoticeContent(w))
}

func (m Model) renderNoticeContent(width int) string {
	styles := m.theme.Styles().WithBackground(m.theme.FocusBg)
	bg := NewBgStyle(m.theme.FocusBg)

	lines := logtail.Filter(m.noticeLines, m.prefs.ShowDebug)
	if len(lines) == 0 {
		return bg.FillLine(bg.Render("No notices", styles.FaintText), width)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		style := styles.Text
		switch logtail.Classify(line) {
		case logtail.LevelWarn:
			style = styles.WarningText
		case logtail.LevelDebug:
			style = styles.FaintText
		}
		out = append(out, bg.FillLine(bg.Render(truncate(line, width), style), width))
	}
	return strings.Join(out, "\n")
}

// renderNotices renders the notices overlay.
func (m Model) renderNotices() string {
	styles := m.theme.Styles()

	title := "Notices"
	if m.logPath != "" {
		title += " · " + truncate(m.logPath, max(m.width-20, 10))
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Render(m.notices.View())

	debug := ternary(m.prefs.ShowDebug, "Hide debug", "Show debug")
	hint := styles.AccentText.Render("d") + styles.MutedText.Render(":"+debug+"  ") +
		styles.AccentText.Render("r") + styles.MutedText.Render(":Reload  ") +
		styles.AccentText.Render("esc") + styles.MutedText.Render(":Close")

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.AccentText.Bold(true).Render(title),
		box,
		hint,
	)
}
