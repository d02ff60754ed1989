package services

import (
	"fmt"

	"scopus-dashboard/models"

	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the single worksheet of the xlsx export.
const ExportSheetName = "Export"

// ExportXLSX writes the view to a one-sheet workbook. Numbers stay numeric and
// absent values leave the cell empty.
func ExportXLSX(view []*models.Publication, columns []models.Field) (data []byte, err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &ExportError{Format: ExportXLSXFormat, Err: cerr}
		}
	}()

	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		return nil, &ExportError{Format: ExportXLSXFormat, Err: err}
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = string(c)
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return nil, &ExportError{Format: ExportXLSXFormat, Err: err}
	}

	for r, p := range view {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			row[i] = p.Value(c)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return nil, &ExportError{Format: ExportXLSXFormat, Err: err}
		}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			return nil, &ExportError{Format: ExportXLSXFormat, Err: fmt.Errorf("row %d: %w", r+2, err)}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, &ExportError{Format: ExportXLSXFormat, Err: err}
	}
	return buf.Bytes(), nil
}
