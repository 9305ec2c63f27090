// Package app is the composition root for tally.
//
// # Overview
//
// Open wires configuration, logging, storage and the state manager into a
// Session. Run opens a session, loads preferences and starts the TUI. The
// CLI subcommands use Open directly so they share the same data directory.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()
//	       │        ├─> config.Load()       Read ~/.config/tally/config.toml
//	       │        ├─> log file            Append-only, prefix "tally: "
//	       │        ├─> storage.Open()      sqlite, file or memory backend
//	       │        └─> Manager.Initialize  Load the four persisted keys
//	       ├─────> prefs.Load()             Theme and notice settings
//	       ├─────> InstallPrompt()          Desktop launcher capability
//	       └─────> ui.Run()                 Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Open and Run):
//   - Config file unreadable or invalid
//   - Storage backend cannot be opened
//
// Recoverable errors (logged, surfaced as Session.Notice):
//   - Malformed persisted values, which load as empty
//   - Storage reads that fail during Initialize
//   - Unreadable prefs or log file
//
// Set TALLY_DEBUG=1 to log every state command.
package app
