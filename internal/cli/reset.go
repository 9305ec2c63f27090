package cli

import (
	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
)

func newResetCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete buttons, history and the cleared backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := confirm(cmd.Context(), yes,
				"Reset everything?",
				"Buttons, history and the cleared backup are deleted. This cannot be undone.",
				"Reset")
			if err != nil || !ok {
				return err
			}
			return withSession(cmd, a, func(s *app.Session) error {
				s.Manager.ResetAll()
				return writeOut(cmd, a, map[string]bool{"reset": true}, "all data reset")
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
