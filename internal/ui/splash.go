package ui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const splashMarkdown = `
# tally

Count the things you do. Each button is a counter: press it and tally
records the time. Your history stays on this machine.

## Getting started

1. Press **a** to add your first button.
2. Press **r** to give it a name, then **e** when you are done editing.
3. Press a number key or **enter** to record an event.
4. Press **H** to browse history and **s** to export it as a spreadsheet.

Press **?** at any time for every shortcut.
`

var (
	mdRendererMu sync.Mutex
	// Renderers keyed by style and wrap width. A fixed style avoids
	// terminal background queries.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	const style = "dark"
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// renderSplash renders the first-run screen.
func (m Model) renderSplash() string {
	styles := m.theme.Styles()
	width := min(m.width-4, 72)

	body := renderMarkdown(splashMarkdown, width)
	button := styles.ButtonFocus.
		Padding(0, 2).
		Render("Get started  ⏎")

	content := lipgloss.JoinVertical(lipgloss.Center, body, "", button)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
