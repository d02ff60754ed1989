package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"scopus-dashboard/models"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet holding the article export.
const DefaultSheet = "ARTICLE"

// DatasetLoader reads a publication workbook into a Dataset.
type DatasetLoader struct{}

// NewDatasetLoader constructs a DatasetLoader.
func NewDatasetLoader() *DatasetLoader {
	return &DatasetLoader{}
}

// Load parses the named sheet of the workbook at path.
func (l *DatasetLoader) Load(ctx context.Context, path, sheet string) (*models.Dataset, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
	}

	ds, err := l.LoadBytes(ctx, data, sheet)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.Path = path
		}
		return nil, err
	}
	ds.Path = path
	log.Printf("dataset: loaded %d publications from %s (sheet %s)", len(ds.Publications), path, sheet)
	return ds, nil
}

// LoadBytes parses a workbook held in memory.
func (l *DatasetLoader) LoadBytes(ctx context.Context, data []byte, sheet string) (*models.Dataset, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Sheet: sheet, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer wb.Close()

	ds, err := readSheet(ctx, wb, sheet)
	if err != nil {
		return nil, &LoadError{Sheet: sheet, Err: err}
	}

	sum := sha256.Sum256(data)
	ds.Version = hex.EncodeToString(sum[:])
	ds.Sheet = sheet
	ds.LoadedAt = time.Now()
	return ds, nil
}

func readSheet(ctx context.Context, wb *excelize.File, sheet string) (*models.Dataset, error) {
	found := false
	for _, name := range wb.GetSheetList() {
		if name == sheet {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSheetNotFound
	}

	rows, err := wb.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return models.NewDataset([]*models.Publication{}, []models.Field{}), nil
	}

	columns := make(map[models.Field]int)
	present := make([]models.Field, 0, len(rows[0]))
	for idx, header := range rows[0] {
		field, ok := models.FieldForHeader(header)
		if !ok {
			continue
		}
		if _, dup := columns[field]; dup {
			continue
		}
		columns[field] = idx
		present = append(present, field)
	}

	publications := make([]*models.Publication, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isBlankRow(row) {
			continue
		}
		publications = append(publications, buildPublication(row, columns))
	}

	return models.NewDataset(publications, present), nil
}

func buildPublication(row []string, columns map[models.Field]int) *models.Publication {
	cell := func(field models.Field) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	p := &models.Publication{
		AuthorsRaw:     strings.TrimSpace(cell(models.FieldAuthorsRaw)),
		AuthorsFull:    strings.TrimSpace(cell(models.FieldAuthorsFull)),
		Title:          strings.TrimSpace(cell(models.FieldTitle)),
		Year:           parseYear(cell(models.FieldYear)),
		Source:         strings.TrimSpace(cell(models.FieldSource)),
		CitedBy:        parseCitedBy(cell(models.FieldCitedBy)),
		DOI:            optionalText(cell(models.FieldDOI)),
		URL:            optionalText(cell(models.FieldURL)),
		ISSN:           optionalText(cell(models.FieldISSN)),
		Quartile:       parseQuartile(cell(models.FieldQuartile)),
		Percentile2024: parsePercentile(cell(models.FieldPercentile2024)),
	}
	p.Normalize()
	return p
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
