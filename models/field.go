package models

import "strings"

// Field names a canonical publication column.
type Field string

const (
	FieldAuthorsRaw     Field = "authors_raw"
	FieldAuthorsFull    Field = "authors_full"
	FieldTitle          Field = "title"
	FieldYear           Field = "year"
	FieldSource         Field = "source"
	FieldCitedBy        Field = "cited_by"
	FieldDOI            Field = "doi"
	FieldDOILink        Field = "doi_link"
	FieldURL            Field = "url"
	FieldISSN           Field = "issn"
	FieldQuartile       Field = "quartile"
	FieldPercentile2024 Field = "percentile_2024"
)

// AllFields is the canonical column order.
var AllFields = []Field{
	FieldAuthorsRaw,
	FieldAuthorsFull,
	FieldTitle,
	FieldYear,
	FieldSource,
	FieldCitedBy,
	FieldDOI,
	FieldDOILink,
	FieldURL,
	FieldISSN,
	FieldQuartile,
	FieldPercentile2024,
}

// DisplayFields is the column order used by the table view and every export.
var DisplayFields = []Field{
	FieldAuthorsFull,
	FieldTitle,
	FieldYear,
	FieldSource,
	FieldQuartile,
	FieldPercentile2024,
	FieldCitedBy,
	FieldDOI,
	FieldURL,
	FieldISSN,
}

// HeaderAliases maps the sheet headers of the original export to canonical fields.
// Canonical names are accepted as headers too.
var HeaderAliases = map[string]Field{
	"Автор (ы)":          FieldAuthorsRaw,
	"Author full names":  FieldAuthorsFull,
	"Название документа": FieldTitle,
	"Год":                FieldYear,
	"Название источника": FieldSource,
	"Цитирования":        FieldCitedBy,
	"DOI":                FieldDOI,
	"Ссылка":             FieldURL,
	"ISSN":               FieldISSN,
	"Квартиль":           FieldQuartile,
	"Процентиль 2024":    FieldPercentile2024,
}

// ParseField resolves a canonical field name.
func ParseField(name string) (Field, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range AllFields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// FieldForHeader resolves a sheet header through HeaderAliases, falling back to
// canonical names. doi_link is derived and never read from a sheet.
func FieldForHeader(header string) (Field, bool) {
	header = strings.TrimSpace(header)
	if f, ok := HeaderAliases[header]; ok {
		return f, true
	}
	f, ok := ParseField(header)
	if !ok || f == FieldDOILink {
		return "", false
	}
	return f, true
}

// PresentColumns filters wanted down to the fields the dataset carries, keeping order.
func PresentColumns(ds *Dataset, wanted []Field) []Field {
	cols := make([]Field, 0, len(wanted))
	for _, f := range wanted {
		if ds == nil || ds.Has(f) {
			cols = append(cols, f)
		}
	}
	return cols
}
