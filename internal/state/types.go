package state

import (
	"strings"
	"time"
)

const (
	// MinButtons is the smallest grid the add/remove controls allow.
	MinButtons = 1
	// MaxButtons is the largest grid.
	MaxButtons = 8

	// DefaultLabel replaces blank button names.
	DefaultLabel = "new button"

	// TimestampLayout formats ClickEvent timestamps (local time, fixed width).
	TimestampLayout = "2006/01/02 15:04:05"
)

// Storage keys. The layout is shared with earlier releases and carries no
// version field.
const (
	KeyButtonData     = "buttonCounterData"
	KeyHistory        = "buttonCounterHistory"
	KeyClearedHistory = "clearedHistory"
	KeyFirstVisit     = "firstVisit"
)

// ButtonConfig is the ordered set of button labels. ButtonCount always equals
// len(ButtonNames) once it has passed through the Manager.
type ButtonConfig struct {
	ButtonCount int      `json:"buttonCount"`
	ButtonNames []string `json:"buttonNames"`
}

// Label returns the label for button i, or DefaultLabel when i has no usable name.
func (c ButtonConfig) Label(i int) string {
	if i < 0 || i >= len(c.ButtonNames) {
		return DefaultLabel
	}
	return NormalizeLabel(c.ButtonNames[i])
}

// Empty reports whether the grid has no buttons.
func (c ButtonConfig) Empty() bool {
	return c.ButtonCount == 0
}

func (c ButtonConfig) clone() ButtonConfig {
	names := make([]string, len(c.ButtonNames))
	copy(names, c.ButtonNames)
	return ButtonConfig{ButtonCount: c.ButtonCount, ButtonNames: names}
}

// ClickEvent is one timestamped button press.
type ClickEvent struct {
	ButtonName string `json:"buttonName"`
	Timestamp  string `json:"timestamp"`
}

// NormalizeLabel maps blank names to DefaultLabel.
func NormalizeLabel(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultLabel
	}
	return name
}

// FormatTimestamp renders t in local time as YYYY/MM/DD HH:MM:SS.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

func cloneEvents(events []ClickEvent) []ClickEvent {
	if len(events) == 0 {
		return nil
	}
	dup := make([]ClickEvent, len(events))
	copy(dup, events)
	return dup
}

func reversed(events []ClickEvent) []ClickEvent {
	if len(events) == 0 {
		return nil
	}
	out := make([]ClickEvent, len(events))
	for i, ev := range events {
		out[len(events)-1-i] = ev
	}
	return out
}
