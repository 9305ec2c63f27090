package app

import (
	"context"
	"os"

	"github.com/five82/tally/internal/install"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/ui"
)

// Run boots the tally TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	s, err := Open(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		s.Logger.Printf("warning: load prefs: %v", err)
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Manager:   s.Manager,
		Config:    s.Config,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Install:   InstallPrompt(),
		LogPath:   s.Config.LogFile,
		Notice:    s.Notice,
	}
	return ui.Run(uiOpts)
}

// InstallPrompt returns the launcher prompt for the running binary, or nil
// when the applications directory or executable cannot be resolved.
func InstallPrompt() *install.Prompt {
	dir, err := install.DefaultDir()
	if err != nil {
		return nil
	}
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	return install.NewPrompt(dir, exe)
}
