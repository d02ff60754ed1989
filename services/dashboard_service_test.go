package services

import (
	"context"
	"errors"
	"testing"

	"scopus-dashboard/models"
)

func newTestDashboard(pubs []*models.Publication) *DashboardService {
	ds := models.NewDataset(pubs, nil)
	ds.Path, ds.Sheet, ds.Version = "memory.xlsx", DefaultSheet, "test"
	return NewDashboardService(NewStaticDatasetRepository(ds), nil, DashboardOptions{})
}

func TestYearPresetRange(t *testing.T) {
	tests := []struct {
		preset   YearPreset
		min, max int
		want     IntRange
	}{
		{PresetAllYears, 2001, 2024, IntRange{2001, 2024}},
		{PresetLast5, 2001, 2024, IntRange{2020, 2024}},
		{PresetLast10, 2001, 2024, IntRange{2015, 2024}},
		{PresetLast10, 2019, 2024, IntRange{2019, 2024}},
		{PresetLast5, 2024, 2024, IntRange{2024, 2024}},
	}
	for _, tt := range tests {
		if got := tt.preset.Range(tt.min, tt.max); got != tt.want {
			t.Fatalf("%s over %d..%d: expected %+v, got %+v", tt.preset, tt.min, tt.max, tt.want, got)
		}
	}

	if p, err := ParseYearPreset(" "); err != nil || p != "" {
		t.Fatalf("blank preset must parse to none, got %q %v", p, err)
	}
	if _, err := ParseYearPreset("decade"); !errors.Is(err, ErrInvalidPreset) {
		t.Fatalf("expected ErrInvalidPreset, got %v", err)
	}
}

func TestDashboardRejectsDatasetWithoutYears(t *testing.T) {
	svc := newTestDashboard([]*models.Publication{
		newPub("undated", nil, "S", 1, nil, nil, ""),
	})

	if _, err := svc.Query(context.Background(), ViewQuery{}); !errors.Is(err, ErrNoValidYears) {
		t.Fatalf("expected ErrNoValidYears, got %v", err)
	}
	if _, err := svc.Info(context.Background()); !errors.Is(err, ErrNoValidYears) {
		t.Fatalf("expected ErrNoValidYears from Info, got %v", err)
	}
}

func TestDashboardInfo(t *testing.T) {
	info, err := newTestDashboard(sampleView()).Info(context.Background())
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.Rows != 5 || info.YearMin != 2018 || info.YearMax != 2023 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.Presets[PresetLast5] != (IntRange{2019, 2023}) {
		t.Fatalf("unexpected last5 range: %+v", info.Presets[PresetLast5])
	}
	if !equalStrings(info.Sources, []string{"Climate Letters", "Field Crops", "Geoderma"}) {
		t.Fatalf("unexpected sources: %v", info.Sources)
	}
	if !equalStrings(info.Quartiles, []string{"Q1", "Q2", "Q3", "Q4", "None"}) {
		t.Fatalf("unexpected quartiles: %v", info.Quartiles)
	}
}

func TestDashboardQueryDefaultsToYearDescending(t *testing.T) {
	view, err := newTestDashboard(sampleView()).Query(context.Background(), ViewQuery{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if view.Query.Sort != SortByYear || view.Query.Direction != SortDescending {
		t.Fatalf("unexpected defaults: %+v", view.Query)
	}
	if len(view.Publications) != 5 || view.Publications[0].Title != "Steppe climate" {
		t.Fatalf("unexpected view: %v", titles(view.Publications))
	}
	if len(view.Columns) != len(models.DisplayFields) {
		t.Fatalf("expected every display column, got %v", view.Columns)
	}
}

func TestDashboardQueryPresets(t *testing.T) {
	svc := newTestDashboard(sampleView())
	ctx := context.Background()

	view, err := svc.Query(ctx, ViewQuery{
		Preset: PresetLast5,
		Filter: FilterSpec{YearRange: &IntRange{Min: 1900, Max: 2018}},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	// last5 over 2018..2023 is 2019..2023 and replaces the explicit range.
	if !equalStrings(titles(view.Publications), []string{"Steppe climate", "Dust storms", "Wheat yields"}) {
		t.Fatalf("unexpected last5 view: %v", titles(view.Publications))
	}

	view, err = svc.Query(ctx, ViewQuery{
		Preset: PresetAllYears,
		Filter: FilterSpec{YearRange: &IntRange{Min: 2018, Max: 2020}},
	})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !equalStrings(titles(view.Publications), []string{"Wheat yields", "Soil carbon"}) {
		t.Fatalf("all-years preset must keep an explicit range: %v", titles(view.Publications))
	}

	view, err = svc.Query(ctx, ViewQuery{Preset: PresetAllYears})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(view.Publications) != 4 {
		t.Fatalf("all-years preset must drop undated records, got %v", titles(view.Publications))
	}
}

func TestDashboardSummarizeAndExport(t *testing.T) {
	svc := newTestDashboard(sampleView())
	ctx := context.Background()

	view, err := svc.Query(ctx, ViewQuery{Filter: FilterSpec{Sources: []string{"Field Crops"}}})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	summary := svc.Summarize(view)
	if summary.KPIs.Total != 2 || summary.KPIs.TotalCitations != 11 {
		t.Fatalf("unexpected KPIs: %+v", summary.KPIs)
	}
	if len(summary.TopSources) != 1 || summary.TopSources[0].Key != "Field Crops" {
		t.Fatalf("unexpected top sources: %+v", summary.TopSources)
	}

	artifacts, warnings := svc.ExportAll(ctx, view, ExportFormats)
	if len(warnings) != 0 || len(artifacts) != 3 {
		t.Fatalf("expected three artifacts, got %d (warnings %+v)", len(artifacts), warnings)
	}
	for _, a := range artifacts {
		if a.Rows != 2 || len(a.Data) == 0 {
			t.Fatalf("unexpected %s artifact: rows=%d size=%d", a.Format, a.Rows, len(a.Data))
		}
	}
}

func TestDashboardPropagatesLoadError(t *testing.T) {
	repo := NewDatasetRepository(nil, "/nonexistent/scopus.xlsx", "")
	svc := NewDashboardService(repo, nil, DashboardOptions{})

	_, err := svc.Query(context.Background(), ViewQuery{})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
}

func TestQueryIgnoresFiltersOnMissingColumns(t *testing.T) {
	year := 2021
	pubs := []*models.Publication{{Title: "Dust storms", Year: &year}}
	ds := models.NewDataset(pubs, []models.Field{models.FieldTitle, models.FieldYear})
	svc := NewDashboardService(NewStaticDatasetRepository(ds), nil, DashboardOptions{})

	q := ViewQuery{Filter: FilterSpec{
		Quartiles:       []string{"Q1", "Q2", "Q3", "Q4"},
		PercentileRange: &FloatRange{Min: 10, Max: 100},
	}}
	view, err := svc.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(view.Publications) != 1 {
		t.Fatalf("quartile and percentile must be ignored without their columns, got %d rows", len(view.Publications))
	}
	if len(view.Query.Filter.Quartiles) != 4 {
		t.Fatalf("the requested filter must be kept on the view, got %v", view.Query.Filter.Quartiles)
	}

	full := newTestDashboard(pubs)
	view, err = full.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(view.Publications) != 0 {
		t.Fatalf("with the columns present the filters apply, got %d rows", len(view.Publications))
	}
}
