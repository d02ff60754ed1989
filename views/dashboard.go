package views

import (
	"bytes"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"scopus-dashboard/models"
	"scopus-dashboard/services"
	"scopus-dashboard/utils"
)

// compiledDashboard is parsed at init time to fail fast on template errors.
var compiledDashboard = template.Must(template.New("dashboard").Parse(dashboardTemplate))

// MaxTableRows caps the rows rendered into the page; exports carry the full view.
const MaxTableRows = 500

// MaxCards caps the card view.
const MaxCards = 50

type SortOption struct {
	Key      services.SortKey
	Label    string
	Selected bool
}

type PresetOption struct {
	Key      services.YearPreset
	Label    string
	Range    string
	Selected bool
}

type Option struct {
	Label   string
	Checked bool
}

type ExportLink struct {
	Label string
	Href  string
}

// Row is one publication prepared for display.
type Row struct {
	Authors    string
	Title      string
	Year       string
	Source     string
	Quartile   string
	Percentile string
	CitedBy    string
	DOI        string
	URL        string
	ISSN       string
	Link       string
}

type DashboardPage struct {
	Title   string
	Caption string
	Error   string

	Info      *services.DatasetInfo
	Presets   []PresetOption
	Quartiles []Option
	Sources   []Option
	Sorts     []SortOption
	Ascending bool
	YearFrom  string
	YearTo    string
	PctMin    string
	PctMax    string
	Search    string
	Author    string

	KPIs       services.PublicationKPIs
	Columns    []models.Field
	Rows       []Row
	Cards      []Row
	Total      int
	Truncated  bool
	TopSources []services.GroupSummary
	TopAuthors []services.GroupSummary
	Exports    []ExportLink
}

var presetLabels = map[services.YearPreset]string{
	services.PresetAllYears: "Все годы",
	services.PresetLast5:    "Последние 5 лет",
	services.PresetLast10:   "Последние 10 лет",
}

var sortLabels = map[services.SortKey]string{
	services.SortByYear:        "Год",
	services.SortByCitedBy:     "Цитирования",
	services.SortByPercentile:  "Процентиль 2024",
	services.SortByQuartile:    "Квартиль",
	services.SortByTitle:       "Название",
	services.SortByAuthorsFull: "Авторы",
	services.SortBySource:      "Источник",
}

// NewErrorPage renders only the header and a fatal message.
func NewErrorPage(title, message string) *DashboardPage {
	return &DashboardPage{Title: title, Caption: "Университет Жубанова • Аналитика Scopus", Error: message}
}

// NewDashboardPage prepares a view, its summary and the export links.
// exportBase is the URL prefix of the export endpoint.
func NewDashboardPage(title string, info *services.DatasetInfo, view *services.PublicationView, summary services.DashboardSummary, exportBase string) *DashboardPage {
	q := view.Query
	page := &DashboardPage{
		Title:      title,
		Caption:    "Университет Жубанова • Аналитика Scopus",
		Info:       info,
		Ascending:  q.Direction == services.SortAscending,
		Search:     q.Filter.SearchText,
		KPIs:       summary.KPIs,
		Columns:    view.Columns,
		Total:      len(view.Publications),
		TopSources: summary.TopSources,
		TopAuthors: summary.TopAuthors,
	}

	for _, p := range services.YearPresets {
		r := p.Range(info.YearMin, info.YearMax)
		page.Presets = append(page.Presets, PresetOption{
			Key:      p,
			Label:    presetLabels[p],
			Range:    strconv.Itoa(r.Min) + "–" + strconv.Itoa(r.Max),
			Selected: p == q.Preset,
		})
	}

	selected := make(map[string]bool)
	for _, quartile := range q.Filter.Quartiles {
		selected[quartile] = true
	}
	for _, label := range info.Quartiles {
		page.Quartiles = append(page.Quartiles, Option{
			Label:   label,
			Checked: q.Filter.Quartiles == nil || selected[label],
		})
	}

	chosen := make(map[string]bool)
	for _, source := range q.Filter.Sources {
		chosen[source] = true
	}
	for _, source := range info.Sources {
		page.Sources = append(page.Sources, Option{Label: source, Checked: chosen[source]})
	}
	if len(q.Filter.Authors) > 0 {
		page.Author = q.Filter.Authors[0]
	}

	for _, key := range services.SortKeys {
		page.Sorts = append(page.Sorts, SortOption{Key: key, Label: sortLabels[key], Selected: key == q.Sort})
	}

	if r := q.Filter.YearRange; r != nil {
		page.YearFrom, page.YearTo = strconv.Itoa(r.Min), strconv.Itoa(r.Max)
	} else {
		page.YearFrom, page.YearTo = strconv.Itoa(info.YearMin), strconv.Itoa(info.YearMax)
	}
	if r := q.Filter.PercentileRange; r != nil {
		page.PctMin = strconv.FormatFloat(r.Min, 'f', -1, 64)
		page.PctMax = strconv.FormatFloat(r.Max, 'f', -1, 64)
	} else {
		page.PctMin, page.PctMax = "0", "100"
	}

	pubs := view.Publications
	if len(pubs) > MaxTableRows {
		pubs = pubs[:MaxTableRows]
		page.Truncated = true
	}
	for _, p := range pubs {
		page.Rows = append(page.Rows, NewRow(p))
	}
	if len(page.Rows) > MaxCards {
		page.Cards = page.Rows[:MaxCards]
	} else {
		page.Cards = page.Rows
	}

	params := q.Encode()
	for _, f := range services.ExportFormats {
		page.Exports = append(page.Exports, ExportLink{
			Label: "Скачать " + exportLabel(f),
			Href:  exportHref(exportBase, f, params),
		})
	}
	return page
}

// NewRow formats a publication for the table and card views.
func NewRow(p *models.Publication) Row {
	row := Row{
		Authors:    p.AuthorsFull,
		Title:      p.Title,
		Year:       p.Display(models.FieldYear),
		Source:     p.Source,
		Quartile:   p.Display(models.FieldQuartile),
		Percentile: p.Display(models.FieldPercentile2024),
		CitedBy:    utils.FormatThousands(p.CitedBy),
		DOI:        p.Display(models.FieldDOI),
		URL:        p.Display(models.FieldURL),
		ISSN:       p.Display(models.FieldISSN),
	}
	if link := p.Link(); link != nil {
		row.Link = *link
	}
	return row
}

// Cell returns the display value of field for the table view.
func (r Row) Cell(field models.Field) string {
	switch field {
	case models.FieldAuthorsFull, models.FieldAuthorsRaw:
		return r.Authors
	case models.FieldTitle:
		return r.Title
	case models.FieldYear:
		return r.Year
	case models.FieldSource:
		return r.Source
	case models.FieldQuartile:
		return r.Quartile
	case models.FieldPercentile2024:
		return r.Percentile
	case models.FieldCitedBy:
		return r.CitedBy
	case models.FieldDOI:
		return r.DOI
	case models.FieldURL:
		return r.URL
	case models.FieldISSN:
		return r.ISSN
	}
	return ""
}

func exportLabel(f services.ExportFormat) string {
	switch f {
	case services.ExportXLSXFormat:
		return "Excel"
	case services.ExportPDFFormat:
		return "PDF (бета)"
	}
	return "CSV"
}

func exportHref(base string, f services.ExportFormat, params url.Values) string {
	href := base + "/" + string(f)
	if encoded := params.Encode(); encoded != "" {
		href += "?" + encoded
	}
	return href
}

// RenderDashboard writes the page as HTML.
func RenderDashboard(w io.Writer, page *DashboardPage) error {
	var buf bytes.Buffer
	if err := compiledDashboard.Execute(&buf, page); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
