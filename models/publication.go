package models

import (
	"strconv"
	"strings"
	"time"
)

// DOIBaseURL is prepended to a trimmed DOI to build the resolver link.
const DOIBaseURL = "https://doi.org/"

// QuartileUnset is the label a filter uses to select publications without a quartile.
const QuartileUnset = "None"

// Quartiles lists the ranking tiers from highest to lowest.
var Quartiles = []string{"Q1", "Q2", "Q3", "Q4"}

// Publication is one row of the exported Scopus sheet.
type Publication struct {
	AuthorsRaw     string   `json:"authors_raw"`
	AuthorsFull    string   `json:"authors_full"`
	Title          string   `json:"title"`
	Year           *int     `json:"year"`
	Source         string   `json:"source"`
	CitedBy        int      `json:"cited_by"`
	DOI            *string  `json:"doi"`
	DOILink        *string  `json:"doi_link"`
	URL            *string  `json:"url"`
	ISSN           *string  `json:"issn"`
	Quartile       *string  `json:"quartile"`
	Percentile2024 *float64 `json:"percentile_2024"`

	authorsRawLC  string
	authorsFullLC string
	titleLC       string
	sourceLC      string
}

// Normalize derives the DOI link and the lowercase search helpers.
// It must be called once after the exported fields are populated.
func (p *Publication) Normalize() {
	p.DOI = trimmedOrNil(p.DOI)
	p.DOILink = nil
	if p.DOI != nil {
		link := DOIBaseURL + *p.DOI
		p.DOILink = &link
	}
	if p.CitedBy < 0 {
		p.CitedBy = 0
	}

	p.authorsRawLC = strings.ToLower(p.AuthorsRaw)
	p.authorsFullLC = strings.ToLower(p.AuthorsFull)
	p.titleLC = strings.ToLower(p.Title)
	p.sourceLC = strings.ToLower(p.Source)
}

// ContainsText reports whether a lowercase query occurs in any searchable field.
func (p *Publication) ContainsText(query string) bool {
	return strings.Contains(p.authorsRawLC, query) ||
		strings.Contains(p.authorsFullLC, query) ||
		strings.Contains(p.titleLC, query) ||
		strings.Contains(p.sourceLC, query)
}

// AuthorList splits AuthorsFull on ';' and drops blank names.
func (p *Publication) AuthorList() []string {
	return SplitAuthors(p.AuthorsFull)
}

// Link is the external link shown to users: the DOI link, otherwise the URL.
func (p *Publication) Link() *string {
	if p.DOILink != nil {
		return p.DOILink
	}
	return p.URL
}

// QuartileLabel returns the quartile or QuartileUnset when it is absent.
func (p *Publication) QuartileLabel() string {
	if p.Quartile == nil {
		return QuartileUnset
	}
	return *p.Quartile
}

// Value returns the typed value of a field, or nil when it is absent.
func (p *Publication) Value(field Field) interface{} {
	switch field {
	case FieldAuthorsRaw:
		return p.AuthorsRaw
	case FieldAuthorsFull:
		return p.AuthorsFull
	case FieldTitle:
		return p.Title
	case FieldYear:
		if p.Year == nil {
			return nil
		}
		return *p.Year
	case FieldSource:
		return p.Source
	case FieldCitedBy:
		return p.CitedBy
	case FieldDOI:
		return derefOrNil(p.DOI)
	case FieldDOILink:
		return derefOrNil(p.DOILink)
	case FieldURL:
		return derefOrNil(p.URL)
	case FieldISSN:
		return derefOrNil(p.ISSN)
	case FieldQuartile:
		return derefOrNil(p.Quartile)
	case FieldPercentile2024:
		if p.Percentile2024 == nil {
			return nil
		}
		return *p.Percentile2024
	}
	return nil
}

// Display formats a field for tabular output; absent values render as "".
func (p *Publication) Display(field Field) string {
	switch v := p.Value(field).(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// SplitAuthors splits a semicolon-delimited author list, trimming names and
// discarding empty ones.
func SplitAuthors(list string) []string {
	parts := strings.Split(list, ";")
	authors := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			authors = append(authors, name)
		}
	}
	return authors
}

// Dataset is the immutable base set loaded from one sheet of a workbook.
type Dataset struct {
	Path         string
	Sheet        string
	Version      string
	LoadedAt     time.Time
	Publications []*Publication

	present map[Field]bool
}

// NewDataset builds a dataset; present lists the canonical fields found in the source.
// A nil present slice marks every field as present.
func NewDataset(publications []*Publication, present []Field) *Dataset {
	ds := &Dataset{Publications: publications, present: make(map[Field]bool)}
	if present == nil {
		present = AllFields
	}
	for _, f := range present {
		ds.present[f] = true
	}
	if ds.present[FieldDOI] {
		ds.present[FieldDOILink] = true
	}
	return ds
}

// Has reports whether the source sheet carried the field.
func (d *Dataset) Has(field Field) bool {
	return d.present[field]
}

// Fields returns the present fields in canonical order.
func (d *Dataset) Fields() []Field {
	fields := make([]Field, 0, len(d.present))
	for _, f := range AllFields {
		if d.present[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// YearBounds returns the smallest and largest valid year.
func (d *Dataset) YearBounds() (min, max int, ok bool) {
	for _, p := range d.Publications {
		if p.Year == nil {
			continue
		}
		y := *p.Year
		if !ok {
			min, max, ok = y, y, true
			continue
		}
		if y < min {
			min = y
		}
		if y > max {
			max = y
		}
	}
	return min, max, ok
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
