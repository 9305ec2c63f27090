// Package export writes the click history to a spreadsheet file.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/five82/tally/internal/state"
	"github.com/xuri/excelize/v2"
)

// Format selects the output file type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const (
	// SheetName is the worksheet that holds the history in xlsx exports.
	SheetName   = "History"
	columnWidth = 20
	filePrefix  = "button_history_"
)

// Header is the first row of every export.
var Header = []string{"Button", "Timestamp"}

// ErrNoEvents is returned when there is nothing to copy.
var ErrNoEvents = errors.New("no history to copy")

// ParseFormat maps a config or flag value to a Format. Empty selects xlsx.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown export format %q", value)
	}
}

// FileName returns button_history_YYYY-MM-DD.<ext> for the local date of now.
func FileName(now time.Time, format Format) string {
	if format == "" {
		format = FormatXLSX
	}
	return filePrefix + now.Local().Format("2006-01-02") + "." + string(format)
}

// Export writes events in chronological order to dir and returns the path of
// the new file. An existing file with the same name is replaced. An empty
// history still writes the header row.
func Export(dir string, events []state.ClickEvent, format Format, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now, format))

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(path, events)
	case FormatXLSX, "":
		err = writeXLSX(path, events)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeXLSX(path string, events []state.ClickEvent) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, ev := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []string{ev.ButtonName, ev.Timestamp}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "B", columnWidth); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func writeCSV(path string, events []state.ClickEvent) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := csv.NewWriter(tmp)
	_ = w.Write(Header)
	for _, ev := range events {
		_ = w.Write([]string{ev.ButtonName, ev.Timestamp})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

// TSV renders events as tab-separated text with the header row, for pasting
// into a spreadsheet.
func TSV(events []state.ClickEvent) string {
	var b strings.Builder
	b.WriteString(strings.Join(Header, "\t"))
	b.WriteByte('\n')
	for _, ev := range events {
		b.WriteString(ev.ButtonName)
		b.WriteByte('\t')
		b.WriteString(ev.Timestamp)
		b.WriteByte('\n')
	}
	return b.String()
}
