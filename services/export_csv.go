package services

import (
	"bytes"
	"encoding/csv"

	"scopus-dashboard/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportCSV writes the view as comma-separated text with a UTF-8 BOM so that
// spreadsheet tools pick the right encoding.
func ExportCSV(view []*models.Publication, columns []models.Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = string(c)
	}
	if err := w.Write(header); err != nil {
		return nil, &ExportError{Format: ExportCSVFormat, Err: err}
	}

	row := make([]string, len(columns))
	for _, p := range view {
		for i, c := range columns {
			row[i] = p.Display(c)
		}
		if err := w.Write(row); err != nil {
			return nil, &ExportError{Format: ExportCSVFormat, Err: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &ExportError{Format: ExportCSVFormat, Err: err}
	}
	return buf.Bytes(), nil
}
