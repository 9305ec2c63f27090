package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
	"github.com/five82/tally/internal/state"
)

func newRecordCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "record <number|label>",
		Short: "Record a press of a button",
		Long: "Record a press of a button, chosen by its position (1-8) or by its label.\n" +
			"Labels match case-insensitively; the first match wins.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				index, err := resolveButton(s.Manager.Buttons(), args[0])
				if err != nil {
					return err
				}
				ev, err := s.Manager.RecordClick(index)
				if err != nil {
					return err
				}
				return writeOut(cmd, a, ev, ev.Timestamp+"  "+ev.ButtonName)
			})
		},
	}
}

// resolveButton finds a button by 1-based position or label. A number that
// is also a label is read as a position.
func resolveButton(cfg state.ButtonConfig, arg string) (int, error) {
	if cfg.Empty() {
		return 0, fmt.Errorf("no buttons; add one with `tally buttons add`")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(arg)); err == nil {
		if n < 1 || n > cfg.ButtonCount {
			return 0, fmt.Errorf("%w: button %d (have %d)", state.ErrInvalidIndex, n, cfg.ButtonCount)
		}
		return n - 1, nil
	}
	want := strings.TrimSpace(arg)
	for i := 0; i < cfg.ButtonCount; i++ {
		if strings.EqualFold(cfg.Label(i), want) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no button labelled %q", arg)
}
