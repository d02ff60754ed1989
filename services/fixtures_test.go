package services

import (
	"path/filepath"
	"testing"

	"scopus-dashboard/models"

	"github.com/xuri/excelize/v2"
)

var articleHeader = []interface{}{
	"Автор (ы)", "Author full names", "Название документа", "Год", "Название источника",
	"Цитирования", "DOI", "Ссылка", "ISSN", "Квартиль", "Процентиль 2024",
}

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for i, row := range rows {
		row := row
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}

	path := filepath.Join(t.TempDir(), "scopus.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func newPub(title string, year *int, source string, cited int, quartile *string, pct *float64, authors string) *models.Publication {
	p := &models.Publication{
		AuthorsRaw:     authors,
		AuthorsFull:    authors,
		Title:          title,
		Year:           year,
		Source:         source,
		CitedBy:        cited,
		Quartile:       quartile,
		Percentile2024: pct,
	}
	p.Normalize()
	return p
}

func titles(pubs []*models.Publication) []string {
	out := make([]string, len(pubs))
	for i, p := range pubs {
		out[i] = p.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
