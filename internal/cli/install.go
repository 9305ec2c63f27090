package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/install"
)

type installOut struct {
	Result string `json:"result"`
	Path   string `json:"path,omitempty"`
}

func newInstallCmd(a *App) *cobra.Command {
	var (
		yes bool
		dir string
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Add tally to your application menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				d, err := install.DefaultDir()
				if err != nil {
					return err
				}
				dir = d
			}
			exe, err := os.Executable()
			if err != nil {
				return err
			}

			prompt := install.NewPrompt(dir, exe)
			if !prompt.Available() {
				return writeOut(cmd, a, installOut{Result: "exists", Path: prompt.Path()},
					"launcher already installed at "+prompt.Path())
			}

			outcome := <-prompt.Trigger(cmd.Context(), func(ctx context.Context) (bool, error) {
				return confirm(ctx, yes,
					"Install tally launcher?",
					"Adds tally to your application menu.",
					"Install")
			})
			switch outcome.Result {
			case install.Accepted:
				return writeOut(cmd, a, installOut{Result: outcome.Result.String(), Path: outcome.Path},
					"launcher installed at "+outcome.Path)
			case install.Dismissed:
				return writeOut(cmd, a, installOut{Result: outcome.Result.String()}, "launcher not installed")
			default:
				if outcome.Err != nil {
					return outcome.Err
				}
				return errors.New("install failed")
			}
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().StringVar(&dir, "dir", "", "Applications directory (default $XDG_DATA_HOME/applications)")
	return cmd
}
