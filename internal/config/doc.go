// Package config loads tally's TOML configuration.
//
// The file lives at ~/.config/tally/config.toml unless a path is given. A
// missing file is not an error: Default() is used. Every field is optional
// and blank values fall back to defaults:
//
//	data_dir      = "~/.local/share/tally"
//	storage       = "sqlite"        # sqlite | file | memory
//	layout        = "auto"          # auto | compact | narrow
//	narrow_width  = 80
//	export_dir    = ""              # defaults to data_dir
//	export_format = "xlsx"          # xlsx | csv
//	log_file      = "~/.local/state/tally/tally.log"
//
// Paths get tilde expansion and are made absolute. Unknown values for
// storage, layout or export_format fail Load with a "parse config" error.
package config
