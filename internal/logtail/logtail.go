package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level is the severity inferred from a log line.
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
	LevelWarn
)

// Classify infers the level of a line written by the app logger. Lines carry
// a "warning:" or "debug:" marker after the timestamp; anything else is info.
func Classify(line string) Level {
	switch {
	case strings.Contains(line, " warning: "), strings.Contains(line, " load: "):
		return LevelWarn
	case strings.Contains(line, " debug: "):
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Filter drops debug lines unless includeDebug is set.
func Filter(lines []string, includeDebug bool) []string {
	if includeDebug {
		return lines
	}
	out := lines[:0:0]
	for _, line := range lines {
		if Classify(line) != LevelDebug {
			out = append(out, line)
		}
	}
	return out
}
