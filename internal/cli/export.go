package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
	"github.com/five82/tally/internal/export"
)

func newExportCmd(a *App) *cobra.Command {
	var (
		format string
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write history to a spreadsheet named button_history_<date>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, a, func(s *app.Session) error {
				f := s.Config.ExportFormat
				if format != "" {
					parsed, err := export.ParseFormat(format)
					if err != nil {
						return err
					}
					f = parsed
				}
				target := s.Config.ExportDir
				if dir != "" {
					target = dir
				}
				path, err := export.Export(target, s.Manager.Events(), f, time.Now())
				if err != nil {
					return err
				}
				return writeOut(cmd, a, map[string]string{"path": path}, path)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "xlsx or csv (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default from config)")
	return cmd
}
