// Package export renders tabular schedule data — rosters, per-person
// timetables — to CSV and PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
)

// Table is an ordered grid of cells: a column header row plus data rows,
// each row aligned positionally with Columns.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// CSV encodes the table (headers first, then rows) as CSV bytes. The
// title is not emitted; CSV consumers want a clean header row.
func CSV(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, errors.New("export: table has no columns")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns); err != nil {
		return nil, fmt.Errorf("export: write header: %w", err)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("export: row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("export: write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush: %w", err)
	}
	return buf.Bytes(), nil
}
