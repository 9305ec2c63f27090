package state

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// storedButtons mirrors the persisted button blob. Pointers distinguish
// missing fields from zero values.
type storedButtons struct {
	ButtonCount *int      `json:"buttonCount"`
	ButtonNames *[]string `json:"buttonNames"`
}

// decodeButtons parses a persisted ButtonConfig and reconciles it so that
// ButtonCount == len(ButtonNames) and the count never exceeds MaxButtons.
func decodeButtons(raw string) (ButtonConfig, error) {
	var stored storedButtons
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return ButtonConfig{}, err
	}

	var count int
	switch {
	case stored.ButtonCount != nil:
		count = *stored.ButtonCount
	case stored.ButtonNames != nil:
		count = len(*stored.ButtonNames)
	default:
		return ButtonConfig{}, errors.New("missing buttonCount")
	}
	if count < 0 {
		return ButtonConfig{}, fmt.Errorf("negative buttonCount %d", count)
	}
	if count > MaxButtons {
		count = MaxButtons
	}

	names := make([]string, count)
	for i := range names {
		names[i] = DefaultLabel
	}
	if stored.ButtonNames != nil {
		for i, name := range *stored.ButtonNames {
			if i >= count {
				break
			}
			names[i] = NormalizeLabel(name)
		}
	}
	return ButtonConfig{ButtonCount: count, ButtonNames: names}, nil
}

func encodeButtons(cfg ButtonConfig) (string, error) {
	names := cfg.ButtonNames
	if names == nil {
		names = []string{}
	}
	b, err := json.Marshal(ButtonConfig{ButtonCount: cfg.ButtonCount, ButtonNames: names})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeEvents(raw string) ([]ClickEvent, error) {
	var events []ClickEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func encodeEvents(events []ClickEvent) (string, error) {
	if events == nil {
		events = []ClickEvent{}
	}
	b, err := json.Marshal(events)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
