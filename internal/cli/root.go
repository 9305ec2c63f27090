package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/five82/tally/internal/app"
)

// App holds the persistent flags shared by every command.
type App struct {
	ConfigPath string
	PrefsPath  string
	DataDir    string
	Debug      bool
	JSON       bool
}

// NewRootCmd builds the tally command tree. With no subcommand it starts the
// TUI.
func NewRootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "Count habits and events from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tally

  # Scriptable commands
  tally buttons add Coffee
  tally record Coffee
  tally history --limit 10
  tally export --format csv --dir ~/Documents
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), a.options())
		},
	}

	cmd.PersistentFlags().StringVar(&a.ConfigPath, "config", envOr("TALLY_CONFIG", ""), "Config file (default ~/.config/tally/config.toml)")
	cmd.PersistentFlags().StringVar(&a.PrefsPath, "prefs", envOr("TALLY_PREFS", ""), "Preferences file (default ~/.config/tally/prefs.toml)")
	cmd.PersistentFlags().StringVar(&a.DataDir, "data-dir", envOr("TALLY_DATA_DIR", ""), "Data directory (overrides data_dir in the config file)")
	cmd.PersistentFlags().BoolVar(&a.Debug, "debug", false, "Log every state command")
	cmd.PersistentFlags().BoolVar(&a.JSON, "json", false, "Print JSON instead of text")

	cmd.AddCommand(newButtonsCmd(a))
	cmd.AddCommand(newRecordCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newResetCmd(a))
	cmd.AddCommand(newInstallCmd(a))

	return cmd
}

func (a *App) options() app.Options {
	return app.Options{
		ConfigPath: a.ConfigPath,
		PrefsPath:  a.PrefsPath,
		DataDir:    a.DataDir,
		Debug:      a.Debug,
	}
}

// withSession opens the data directory for the duration of fn. A notice from
// loading is printed to stderr.
func withSession(cmd *cobra.Command, a *App, fn func(s *app.Session) error) error {
	s, err := app.Open(a.options())
	if err != nil {
		return err
	}
	defer s.Close()

	if s.Notice != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", s.Notice)
	}
	if err := fn(s); err != nil {
		return err
	}
	// Persist failures are kept on the manager, not returned by commands.
	return s.Manager.LastError()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// writeOut prints v as indented JSON when --json is set, otherwise text.
func writeOut(cmd *cobra.Command, a *App, v any, text string) error {
	w := cmd.OutOrStdout()
	if !a.JSON {
		if text == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, strings.TrimRight(text, "\n"))
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
