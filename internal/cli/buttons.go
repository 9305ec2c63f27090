package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
	"github.com/five82/tally/internal/state"
)

type buttonOut struct {
	Index int    `json:"index"`
	Label string `json:"label"`
}

func newButtonsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buttons",
		Short: "List and edit counter buttons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				return printButtons(cmd, a, s.Manager.Buttons())
			})
		},
	}

	addCmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a button at the end of the grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				if !s.Manager.AddButton() {
					return fmt.Errorf("grid already has %d buttons", state.MaxButtons)
				}
				index := s.Manager.Buttons().ButtonCount - 1
				if len(args) == 1 {
					if err := s.Manager.RenameButtonAt(index, args[0]); err != nil {
						return err
					}
				}
				return printButtons(cmd, a, s.Manager.Buttons())
			})
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename <number> <name>",
		Short: "Rename a button (numbers start at 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				index, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				if err := s.Manager.RenameButtonAt(index, args[1]); err != nil {
					return err
				}
				return printButtons(cmd, a, s.Manager.Buttons())
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove [number]",
		Short: "Remove a button, or the last one when no number is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				if len(args) == 0 {
					if !s.Manager.RemoveButton() {
						return state.ErrMinButtons
					}
					return printButtons(cmd, a, s.Manager.Buttons())
				}
				index, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				if err := s.Manager.RemoveButtonAt(index); err != nil {
					return err
				}
				return printButtons(cmd, a, s.Manager.Buttons())
			})
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every button (history is kept)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd.Context(), yes,
				"Delete all buttons?",
				"Button names are removed. History is kept. This cannot be undone.",
				"Delete")
			if err != nil || !ok {
				return err
			}
			return withSession(cmd, a, func(s *app.Session) error {
				s.Manager.ClearAllButtonConfigs()
				return printButtons(cmd, a, s.Manager.Buttons())
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	cmd.AddCommand(addCmd, renameCmd, removeCmd, clearCmd)
	return cmd
}

func printButtons(cmd *cobra.Command, a *App, cfg state.ButtonConfig) error {
	out := make([]buttonOut, 0, cfg.ButtonCount)
	var b strings.Builder
	for i := 0; i < cfg.ButtonCount; i++ {
		label := cfg.Label(i)
		out = append(out, buttonOut{Index: i + 1, Label: label})
		fmt.Fprintf(&b, "%d  %s\n", i+1, label)
	}
	if cfg.Empty() {
		b.WriteString("no buttons\n")
	}
	return writeOut(cmd, a, map[string]any{"buttons": out}, b.String())
}

// parsePosition converts a 1-based position to an index.
func parsePosition(value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a position (use 1, 2, ...)", state.ErrInvalidIndex, value)
	}
	return n - 1, nil
}
