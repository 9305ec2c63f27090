package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/tally/internal/export"
	"github.com/five82/tally/internal/storage"
	toml "github.com/pelletier/go-toml/v2"
)

// Layout selects how the button grid is arranged.
type Layout string

const (
	LayoutAuto    Layout = "auto"
	LayoutCompact Layout = "compact"
	LayoutNarrow  Layout = "narrow"
)

// Config holds tally's settings after defaults and path expansion.
type Config struct {
	DataDir      string
	Storage      storage.Backend
	Layout       Layout
	NarrowWidth  int
	ExportDir    string
	ExportFormat export.Format
	LogFile      string
}

const (
	defaultConfigPath  = "~/.config/tally/config.toml"
	defaultDataDir     = "~/.local/share/tally"
	defaultLogFile     = "~/.local/state/tally/tally.log"
	defaultNarrowWidth = 80
)

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Default returns the configuration used when no file exists.
func Default() Config {
	dataDir := mustExpand(defaultDataDir)
	return Config{
		DataDir:      dataDir,
		Storage:      storage.BackendSQLite,
		Layout:       LayoutAuto,
		NarrowWidth:  defaultNarrowWidth,
		ExportDir:    dataDir,
		ExportFormat: export.FormatXLSX,
		LogFile:      mustExpand(defaultLogFile),
	}
}

// Load reads the TOML config at path (or the default location when path is
// empty). A missing file yields Default().
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataDir      string `toml:"data_dir"`
		Storage      string `toml:"storage"`
		Layout       string `toml:"layout"`
		NarrowWidth  int    `toml:"narrow_width"`
		ExportDir    string `toml:"export_dir"`
		ExportFormat string `toml:"export_format"`
		LogFile      string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
		cfg.ExportDir = cfg.DataDir
	}
	if dir := strings.TrimSpace(raw.ExportDir); dir != "" {
		cfg.ExportDir = mustExpand(dir)
	}
	if file := strings.TrimSpace(raw.LogFile); file != "" {
		cfg.LogFile = mustExpand(file)
	}
	if raw.NarrowWidth > 0 {
		cfg.NarrowWidth = raw.NarrowWidth
	}

	if cfg.Storage, err = storage.ParseBackend(raw.Storage); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.ExportFormat, err = export.ParseFormat(raw.ExportFormat); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Layout, err = ParseLayout(raw.Layout); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// ParseLayout maps a config value to a Layout. Empty selects LayoutAuto.
func ParseLayout(value string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(value))) {
	case "", LayoutAuto:
		return LayoutAuto, nil
	case LayoutCompact:
		return LayoutCompact, nil
	case LayoutNarrow:
		return LayoutNarrow, nil
	default:
		return "", fmt.Errorf("unknown layout %q", value)
	}
}

// SetDataDir points the data directory at dir. The export directory follows
// when it was still the old data directory.
func (c *Config) SetDataDir(dir string) {
	expanded := mustExpand(dir)
	if c.ExportDir == "" || c.ExportDir == c.DataDir {
		c.ExportDir = expanded
	}
	c.DataDir = expanded
}

// StoragePath returns the file the configured backend persists to.
func (c Config) StoragePath() string {
	return storage.Path(c.Storage, c.DataDir)
}

// Narrow reports whether the grid should use one column at the given
// terminal width.
func (c Config) Narrow(width int) bool {
	switch c.Layout {
	case LayoutNarrow:
		return true
	case LayoutCompact:
		return false
	default:
		limit := c.NarrowWidth
		if limit <= 0 {
			limit = defaultNarrowWidth
		}
		return width > 0 && width <= limit
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
