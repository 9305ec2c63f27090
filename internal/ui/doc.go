// Package ui provides the terminal user interface for tally.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds a state.Snapshot and refreshes
// it after every command it sends to the state.Manager; it never mutates
// buttons or history directly.
//
// # Package Structure
//
//   - app.go: Model, key routing and Run
//   - commands.go: async commands (export, clipboard, install, notices) and their messages
//   - grid.go: main screen, button grid and the zero-button screen
//   - history.go: history panel
//   - header.go: header, command bar and status line
//   - splash.go: first-run screen rendered with glamour
//   - modal.go: huh confirmation dialogs
//   - notices.go: log tail overlay
//   - layout.go: grid heuristic (GridFor) and cursor movement
//   - theme.go, style_helpers.go: colors and background-safe rendering
//
// # Screens
//
//   - Splash: shown until the first-visit flag is set
//   - Grid: record events with 1-8 or enter on the focused button
//   - Edit mode: add, remove, rename and delete buttons
//   - History: newest first, delete, clear, restore, copy, export
//   - Overlays: help (?), notices (L) and confirmations
//
// # Key Bindings
//
//   - 1-8 / enter: Record
//   - h/j/k/l or arrows: Move focus
//   - e: Toggle edit mode
//   - H: Toggle history
//   - s: Export spreadsheet
//   - I: Install launcher (while available)
//   - ctrl+r: Reset everything
//   - T: Cycle theme
//   - q or ctrl+c: Quit
package ui
