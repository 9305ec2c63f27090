// Package install offers a one-shot prompt that adds a desktop launcher for
// tally to the user's application menu.
package install

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Result is how a prompt ended.
type Result int

const (
	Accepted Result = iota
	Dismissed
	Failed
)

func (r Result) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case Dismissed:
		return "dismissed"
	default:
		return "failed"
	}
}

// Outcome is delivered once per Trigger.
type Outcome struct {
	Result Result
	Path   string // launcher written on Accepted
	Err    error  // set on Failed
}

// ConfirmFunc asks the user whether to install. It may block until they
// answer or ctx is done.
type ConfirmFunc func(ctx context.Context) (bool, error)

// ErrUnavailable is reported when Trigger is called after the prompt was used
// or when a launcher is already installed.
var ErrUnavailable = errors.New("install prompt unavailable")

const desktopFileName = "tally.desktop"

// Prompt is the install capability. It can be triggered once.
type Prompt struct {
	mu      sync.Mutex
	dir     string
	command string
	used    bool
}

// NewPrompt returns a prompt that writes its launcher into dir and runs
// command when launched.
func NewPrompt(dir, command string) *Prompt {
	return &Prompt{dir: dir, command: command}
}

// DefaultDir returns $XDG_DATA_HOME/applications, falling back to
// ~/.local/share/applications.
func DefaultDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); xdg != "" {
		return filepath.Join(xdg, "applications"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return filepath.Join(home, ".local", "share", "applications"), nil
}

// Path is where the launcher is written.
func (p *Prompt) Path() string {
	return filepath.Join(p.dir, desktopFileName)
}

// Available reports whether the prompt can still be shown: it has not been
// triggered and no launcher exists yet.
func (p *Prompt) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.availableLocked()
}

func (p *Prompt) availableLocked() bool {
	if p.used || p.dir == "" {
		return false
	}
	_, err := os.Stat(p.Path())
	return errors.Is(err, os.ErrNotExist)
}

// Trigger consumes the prompt, runs confirm on its own goroutine and installs
// the launcher if the user agreed. The returned channel receives exactly one
// Outcome and is then closed.
func (p *Prompt) Trigger(ctx context.Context, confirm ConfirmFunc) <-chan Outcome {
	out := make(chan Outcome, 1)

	p.mu.Lock()
	if !p.availableLocked() {
		p.mu.Unlock()
		out <- Outcome{Result: Failed, Err: ErrUnavailable}
		close(out)
		return out
	}
	p.used = true
	p.mu.Unlock()

	go func() {
		defer close(out)
		out <- p.run(ctx, confirm)
	}()
	return out
}

func (p *Prompt) run(ctx context.Context, confirm ConfirmFunc) Outcome {
	ok, err := confirm(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Outcome{Result: Dismissed}
		}
		return Outcome{Result: Failed, Err: fmt.Errorf("confirm install: %w", err)}
	}
	if !ok || ctx.Err() != nil {
		return Outcome{Result: Dismissed}
	}
	path, err := p.write()
	if err != nil {
		return Outcome{Result: Failed, Err: err}
	}
	return Outcome{Result: Accepted, Path: path}
}

func (p *Prompt) write() (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", fmt.Errorf("create applications dir: %w", err)
	}
	path := p.Path()
	if err := os.WriteFile(path, []byte(DesktopEntry(p.command)), 0o644); err != nil {
		return "", fmt.Errorf("write launcher: %w", err)
	}
	return path, nil
}

// DesktopEntry renders a freedesktop launcher that opens tally in a terminal.
func DesktopEntry(command string) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=tally\n")
	b.WriteString("Comment=Count habits with a grid of buttons\n")
	fmt.Fprintf(&b, "Exec=%s\n", quoteExec(command))
	b.WriteString("Terminal=true\n")
	b.WriteString("Categories=Utility;\n")
	return b.String()
}

func quoteExec(command string) string {
	if !strings.ContainsAny(command, " \t\"") {
		return command
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(command)
	return `"` + escaped + `"`
}
