package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"scopus-dashboard/models"
)

type YearPreset string

const (
	PresetAllYears YearPreset = "all"
	PresetLast5    YearPreset = "last5"
	PresetLast10   YearPreset = "last10"
)

// YearPresets lists the quick year ranges in menu order.
var YearPresets = []YearPreset{PresetAllYears, PresetLast5, PresetLast10}

// ParseYearPreset resolves a preset name; blank means no preset.
func ParseYearPreset(raw string) (YearPreset, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return "", nil
	}
	for _, p := range YearPresets {
		if string(p) == raw {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPreset, raw)
}

// Range resolves the preset against the dataset's year bounds. The last-N
// presets end at maxYear and never start before minYear.
func (p YearPreset) Range(minYear, maxYear int) IntRange {
	span := 0
	switch p {
	case PresetLast5:
		span = 5
	case PresetLast10:
		span = 10
	default:
		return IntRange{Min: minYear, Max: maxYear}
	}
	start := maxYear - (span - 1)
	if start < minYear {
		start = minYear
	}
	return IntRange{Min: start, Max: maxYear}
}

// ViewQuery is everything that shapes a view of the dataset.
type ViewQuery struct {
	Filter    FilterSpec
	Preset    YearPreset
	Sort      SortKey
	Direction SortDirection
}

// PublicationView is a filtered, sorted projection of the base dataset.
type PublicationView struct {
	Dataset      *models.Dataset
	Query        ViewQuery
	Publications []*models.Publication
	Columns      []models.Field
}

// DashboardSummary bundles the readouts shown next to a view.
type DashboardSummary struct {
	KPIs       PublicationKPIs `json:"kpis"`
	TopSources []GroupSummary  `json:"top_sources"`
	TopAuthors []GroupSummary  `json:"top_authors"`
}

// DatasetInfo describes the loaded base set.
type DatasetInfo struct {
	Path          string                  `json:"path"`
	Sheet         string                  `json:"sheet"`
	Version       string                  `json:"version"`
	LoadedAt      time.Time               `json:"loaded_at"`
	Rows          int                     `json:"rows"`
	Fields        []models.Field          `json:"fields"`
	YearMin       int                     `json:"year_min"`
	YearMax       int                     `json:"year_max"`
	Presets       map[YearPreset]IntRange `json:"presets"`
	Quartiles     []string                `json:"quartiles"`
	Sources       []string                `json:"sources"`
	SortKeys      []SortKey               `json:"sort_keys"`
	ExportFormats []ExportFormat          `json:"export_formats"`
}

type DashboardOptions struct {
	TopSourcesLimit int
	TopAuthorsLimit int
}

// DashboardService runs the load, filter, sort, aggregate and export pipeline.
type DashboardService struct {
	provider DatasetProvider
	exporter *Exporter
	opts     DashboardOptions
}

func NewDashboardService(provider DatasetProvider, exporter *Exporter, opts DashboardOptions) *DashboardService {
	if exporter == nil {
		exporter = NewExporter(ExportOptions{})
	}
	if opts.TopSourcesLimit <= 0 {
		opts.TopSourcesLimit = 10
	}
	if opts.TopAuthorsLimit <= 0 {
		opts.TopAuthorsLimit = 10
	}
	return &DashboardService{provider: provider, exporter: exporter, opts: opts}
}

// Exporter returns the exporter used for downloads.
func (s *DashboardService) Exporter() *Exporter { return s.exporter }

// Options returns the effective aggregation limits.
func (s *DashboardService) Options() DashboardOptions { return s.opts }

// Dataset returns the current base set. A dataset without any valid year is
// rejected with ErrNoValidYears.
func (s *DashboardService) Dataset(ctx context.Context) (*models.Dataset, error) {
	ds, err := s.provider.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if _, _, ok := ds.YearBounds(); !ok {
		return nil, ErrNoValidYears
	}
	return ds, nil
}

// Reload forces the base set to be parsed again.
func (s *DashboardService) Reload(ctx context.Context) (*models.Dataset, error) {
	if _, err := s.provider.Reload(ctx); err != nil {
		return nil, err
	}
	return s.Dataset(ctx)
}

// Info describes the dataset and the choices a client can make against it.
func (s *DashboardService) Info(ctx context.Context) (*DatasetInfo, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	minYear, maxYear, _ := ds.YearBounds()

	presets := make(map[YearPreset]IntRange, len(YearPresets))
	for _, p := range YearPresets {
		presets[p] = p.Range(minYear, maxYear)
	}

	return &DatasetInfo{
		Path:          ds.Path,
		Sheet:         ds.Sheet,
		Version:       ds.Version,
		LoadedAt:      ds.LoadedAt,
		Rows:          len(ds.Publications),
		Fields:        ds.Fields(),
		YearMin:       minYear,
		YearMax:       maxYear,
		Presets:       presets,
		Quartiles:     append(append([]string{}, models.Quartiles...), models.QuartileUnset),
		Sources:       distinctSources(ds.Publications),
		SortKeys:      SortKeys,
		ExportFormats: ExportFormats,
	}, nil
}

// Query filters and sorts the base set. The last-N presets replace any
// explicit year range; the all-years preset only fills in a missing one.
func (s *DashboardService) Query(ctx context.Context, q ViewQuery) (*PublicationView, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	if q.Sort == "" {
		q.Sort = SortByYear
	}
	if q.Direction == "" {
		q.Direction = SortDescending
	}
	if q.Preset == PresetLast5 || q.Preset == PresetLast10 || (q.Preset == PresetAllYears && q.Filter.YearRange == nil) {
		minYear, maxYear, _ := ds.YearBounds()
		r := q.Preset.Range(minYear, maxYear)
		q.Filter.YearRange = &r
	}

	filtered := FilterPublications(ds.Publications, applicableFilter(ds, q.Filter))
	return &PublicationView{
		Dataset:      ds,
		Query:        q,
		Publications: SortPublications(filtered, q.Sort, q.Direction),
		Columns:      models.PresentColumns(ds, models.DisplayFields),
	}, nil
}

// applicableFilter drops the quartile and percentile options when the sheet
// has no such column.
func applicableFilter(ds *models.Dataset, filter FilterSpec) FilterSpec {
	if !ds.Has(models.FieldQuartile) {
		filter.Quartiles = nil
	}
	if !ds.Has(models.FieldPercentile2024) {
		filter.PercentileRange = nil
	}
	return filter
}

// Summarize computes the KPIs and top lists of a view.
func (s *DashboardService) Summarize(view *PublicationView) DashboardSummary {
	return DashboardSummary{
		KPIs:       ComputeKPIs(view.Publications),
		TopSources: TopSources(view.Publications, s.opts.TopSourcesLimit),
		TopAuthors: TopAuthors(view.Publications, s.opts.TopAuthorsLimit),
	}
}

// Export serializes a view in one format.
func (s *DashboardService) Export(ctx context.Context, view *PublicationView, format ExportFormat) (*ExportArtifact, error) {
	return s.exporter.Build(ctx, format, view.Publications, view.Columns)
}

// PlanExports lists the downloadable formats of a view without rendering them.
func (s *DashboardService) PlanExports(ctx context.Context, view *PublicationView, formats []ExportFormat) ([]ExportPlan, []ExportWarning) {
	return s.exporter.Plan(ctx, formats, view.Publications, view.Columns)
}

// ExportAll serializes a view in several formats; failed formats become warnings.
func (s *DashboardService) ExportAll(ctx context.Context, view *PublicationView, formats []ExportFormat) ([]*ExportArtifact, []ExportWarning) {
	return s.exporter.BuildAll(ctx, formats, view.Publications, view.Columns)
}

func distinctSources(pubs []*models.Publication) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range pubs {
		if strings.TrimSpace(p.Source) == "" {
			continue
		}
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		out = append(out, p.Source)
	}
	sort.Strings(out)
	return out
}
