// Package state owns the counter buttons and their click history.
//
// A Manager holds four entities: the ButtonConfig (ordered labels), the event
// log, a single-slot backup of the last cleared log, and the edit-mode flag.
// The UI and the CLI read through Snapshot and mutate only through Manager
// commands.
//
// # Persistence
//
// Every mutating command writes the entities it touched back to a
// storage.Provider before returning. The persisted layout is four keys:
//
//	buttonCounterData     {"buttonCount":n,"buttonNames":[...]}
//	buttonCounterHistory  [{"buttonName":..., "timestamp":...}, ...]
//	clearedHistory        same shape as buttonCounterHistory
//	firstVisit            "true" once the splash was dismissed
//
// A failed write is logged and kept as LastError; in-memory state is never
// rolled back. Undecodable values load as empty for that key only.
//
// # Invariants
//
// ButtonCount always equals len(ButtonNames). AddButton and RemoveButton
// append or pop a default-named slot. Count 0 is only reached through
// ClearAllButtonConfigs or a fresh install.
//
// Events are stored oldest first. The history panel shows them newest first,
// so DeleteEventAt takes a display index and maps it back.
package state
