package app

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/tally/internal/config"
	"github.com/five82/tally/internal/state"
	"github.com/five82/tally/internal/storage"
)

const (
	loadNotice    = "Some saved data could not be read and was reset. Press L for details."
	storageNotice = "Storage could not be read. Changes may not be saved."
)

// Options configure a tally session.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tally/prefs.toml
	DataDir    string // overrides data_dir from the config file
	Debug      bool   // also enabled by TALLY_DEBUG=1
}

// Session is an open data directory: config, logger, storage and the state
// manager loaded from it. Close releases the storage and the log file.
type Session struct {
	Config  config.Config
	Manager *state.Manager
	Logger  *log.Logger
	// Notice is a startup problem worth showing to the user, or "".
	Notice string

	store   storage.Provider
	logFile *os.File
}

// Open loads config, opens the log and storage and initializes the state
// manager. Only config failures are returned. Storage that cannot be opened
// falls back to memory, and unreadable saved data loads as empty; both are
// reported through Notice.
func Open(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load tally config: %w", err)
	}
	if dir := strings.TrimSpace(opts.DataDir); dir != "" {
		cfg.SetDataDir(dir)
	}

	s := &Session{Config: cfg}
	s.Logger = s.openLog(cfg.LogFile)

	store, err := storage.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		s.Logger.Printf("open %s storage at %s: %v; using memory", cfg.Storage, cfg.StoragePath(), err)
		store = storage.NewMemory()
		s.Notice = storageNotice
	}
	if f, ok := store.(*storage.File); ok && f.Corrupt() != "" {
		s.Logger.Printf("unparsable storage file moved to %s", f.Corrupt())
		s.Notice = loadNotice
	}
	s.store = store

	s.Manager = state.New(store, state.Options{
		Logger: s.Logger,
		Debug:  opts.Debug || debugEnabled(),
	})
	// Initialize logs each failing key itself.
	if err := s.Manager.Initialize(); err != nil {
		s.Notice = loadNotice
		if errors.Is(err, state.ErrStorageUnavailable) {
			s.Notice = storageNotice
		}
	}
	return s, nil
}

// openLog appends to path, creating its directory. A log that cannot be
// opened is discarded rather than failing startup.
func (s *Session) openLog(path string) *log.Logger {
	var w io.Writer = io.Discard
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				s.logFile = f
				w = f
			}
		}
	}
	return log.New(w, "tally: ", log.LstdFlags)
}

func (s *Session) closeLog() {
	if s.logFile != nil {
		_ = s.logFile.Close()
		s.logFile = nil
	}
}

// Close releases storage and the log file.
func (s *Session) Close() error {
	var err error
	if s.store != nil {
		err = s.store.Close()
		s.store = nil
	}
	s.closeLog()
	return err
}

func debugEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("TALLY_DEBUG"))) {
	case "1", "true", "yes":
		return true
	}
	return false
}
