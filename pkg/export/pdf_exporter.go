package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 190.0
	pdfHeaderRow  = 8.0
	pdfDataRow    = 7.0
	pdfHeaderFont = 10.0
	pdfDataFont   = 9.0
)

// PDF lays the table out as a bordered grid on an A4 portrait page, with
// the title centered above it. Column widths are uniform.
func PDF(t Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, errors.New("export: table has no columns")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(10, 15, 10)
	doc.AddPage()

	if t.Title != "" {
		doc.SetFont("Arial", "B", 14)
		doc.CellFormat(0, 10, t.Title, "", 1, "C", false, 0, "")
		doc.Ln(4)
	}

	width := pdfPageWidth / float64(len(t.Columns))

	doc.SetFont("Arial", "B", pdfHeaderFont)
	for _, col := range t.Columns {
		doc.CellFormat(width, pdfHeaderRow, col, "1", 0, "C", false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Arial", "", pdfDataFont)
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return nil, fmt.Errorf("export: row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
		for _, cell := range row {
			doc.CellFormat(width, pdfDataRow, cell, "1", 0, "", false, 0, "")
		}
		doc.Ln(-1)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
