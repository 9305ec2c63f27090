package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// isTerminal reports whether stdin is an interactive terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form that falls back to accessible (plain line) mode when
// stdin is not a terminal.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// confirm asks a yes/no question. skip answers yes without asking.
func confirm(ctx context.Context, skip bool, title, description, affirmative string) (bool, error) {
	if skip {
		return true, nil
	}
	ok := false
	form := newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&ok).
				Affirmative(affirmative).
				Negative("Cancel"),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return false, err
	}
	return ok, nil
}
