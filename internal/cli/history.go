package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
)

func newHistoryCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded events (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				events := s.Manager.EventsNewestFirst()
				if limit > 0 && len(events) > limit {
					events = events[:limit]
				}
				var b strings.Builder
				for i, ev := range events {
					fmt.Fprintf(&b, "%3d  %s  %s\n", i+1, ev.Timestamp, ev.ButtonName)
				}
				if len(events) == 0 {
					b.WriteString("no events\n")
				}
				return writeOut(cmd, a, map[string]any{
					"events":  events,
					"cleared": s.Manager.HasCleared(),
				}, b.String())
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max events to list (0 = all)")

	deleteCmd := &cobra.Command{
		Use:   "delete <number>",
		Short: "Delete one event by its number in `tally history`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				index, err := parsePosition(args[0])
				if err != nil {
					return err
				}
				ev, err := s.Manager.DeleteEventAt(index)
				if err != nil {
					return err
				}
				return writeOut(cmd, a, ev, "deleted "+ev.Timestamp+"  "+ev.ButtonName)
			})
		},
	}

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear history, keeping a backup for restore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd.Context(), yes,
				"Clear history?",
				"The cleared history can be restored until the next clear.",
				"Clear")
			if err != nil || !ok {
				return err
			}
			return withSession(cmd, a, func(s *app.Session) error {
				n := len(s.Manager.Events())
				s.Manager.ClearHistory()
				return writeOut(cmd, a, map[string]int{"cleared": n}, fmt.Sprintf("cleared %d events", n))
			})
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Replace history with the last cleared backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				if err := s.Manager.RestoreHistory(); err != nil {
					return err
				}
				n := len(s.Manager.Events())
				return writeOut(cmd, a, map[string]int{"restored": n}, fmt.Sprintf("restored %d events", n))
			})
		},
	}

	cmd.AddCommand(deleteCmd, clearCmd, restoreCmd)
	return cmd
}
