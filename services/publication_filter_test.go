package services

import (
	"testing"

	"scopus-dashboard/models"
)

func sampleView() []*models.Publication {
	return []*models.Publication{
		newPub("Soil carbon", intPtr(2018), "Geoderma", 10, strPtr("Q1"), floatPtr(91), "Smith J.; Lee K."),
		newPub("Wheat yields", intPtr(2020), "Field Crops", 4, strPtr("Q2"), floatPtr(64.5), "Lee K. Jr."),
		newPub("Steppe climate", intPtr(2023), "Climate Letters", 0, nil, nil, "Ivanov I."),
		newPub("Irrigation", nil, "Field Crops", 7, strPtr("Q3"), floatPtr(40), "Petrov P.; Smith J."),
		newPub("Dust storms", intPtr(2022), "", 2, strPtr("Q4"), floatPtr(12), ""),
	}
}

func isSubsequence(sub, full []*models.Publication) bool {
	i := 0
	for _, p := range full {
		if i < len(sub) && sub[i] == p {
			i++
		}
	}
	return i == len(sub)
}

func TestFilterYearRangeScenario(t *testing.T) {
	pubs := []*models.Publication{
		newPub("old", intPtr(2020), "S", 5, strPtr("Q1"), nil, ""),
		newPub("new", intPtr(2023), "S", 0, strPtr("Q3"), nil, ""),
	}

	got := FilterPublications(pubs, FilterSpec{YearRange: &IntRange{Min: 2021, Max: 2023}})
	if len(got) != 1 || got[0].Title != "new" {
		t.Fatalf("expected only the 2023 record, got %v", titles(got))
	}

	kpi := ComputeKPIs(got)
	if kpi.Total != 1 || kpi.TotalCitations != 0 {
		t.Fatalf("expected total=1 citations=0, got %+v", kpi)
	}
}

func TestFilterYearRangeExcludesMissingYears(t *testing.T) {
	got := FilterPublications(sampleView(), FilterSpec{YearRange: &IntRange{Min: 0, Max: 9999}})
	for _, p := range got {
		if p.Year == nil {
			t.Fatalf("record %q without year passed a year range", p.Title)
		}
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 records with years, got %v", titles(got))
	}
}

func TestFilterPercentileRange(t *testing.T) {
	missing := newPub("no percentile", intPtr(2020), "S", 0, nil, nil, "")
	pubs := []*models.Publication{missing}

	tests := []struct {
		name   string
		r      FloatRange
		expect int
	}{
		{"narrow range excludes missing", FloatRange{Min: 50, Max: 100}, 0},
		{"full range is no restriction", FloatRange{Min: 0, Max: 100}, 1},
		{"sentinel minimum includes missing", FloatRange{Min: MissingPercentile, Max: 30}, 1},
		{"upper bound below 100 excludes missing", FloatRange{Min: 0, Max: 99}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.r
			got := FilterPublications(pubs, FilterSpec{PercentileRange: &r})
			if len(got) != tt.expect {
				t.Fatalf("expected %d records, got %d", tt.expect, len(got))
			}
		})
	}

	got := FilterPublications(sampleView(), FilterSpec{PercentileRange: &FloatRange{Min: 40, Max: 65}})
	if !equalStrings(titles(got), []string{"Wheat yields", "Irrigation"}) {
		t.Fatalf("expected inclusive bounds, got %v", titles(got))
	}
}

func TestFilterQuartiles(t *testing.T) {
	view := sampleView()

	got := FilterPublications(view, FilterSpec{Quartiles: []string{"Q1", "Q3"}})
	if !equalStrings(titles(got), []string{"Soil carbon", "Irrigation"}) {
		t.Fatalf("unexpected quartile filter result: %v", titles(got))
	}

	got = FilterPublications(view, FilterSpec{Quartiles: []string{models.QuartileUnset}})
	if !equalStrings(titles(got), []string{"Steppe climate"}) {
		t.Fatalf("expected only the record without quartile, got %v", titles(got))
	}

	got = FilterPublications(view, FilterSpec{Quartiles: []string{}})
	if len(got) != 0 {
		t.Fatalf("an empty quartile selection must allow nothing, got %v", titles(got))
	}

	got = FilterPublications(view, FilterSpec{})
	if len(got) != len(view) {
		t.Fatalf("an empty filter must keep everything, got %d of %d", len(got), len(view))
	}
}

func TestFilterSearchTextIsCaseInsensitive(t *testing.T) {
	view := sampleView()

	got := FilterPublications(view, FilterSpec{SearchText: "  FIELD crops "})
	if !equalStrings(titles(got), []string{"Wheat yields", "Irrigation"}) {
		t.Fatalf("expected source match, got %v", titles(got))
	}
	got = FilterPublications(view, FilterSpec{SearchText: "ivanov"})
	if !equalStrings(titles(got), []string{"Steppe climate"}) {
		t.Fatalf("expected author match, got %v", titles(got))
	}
	got = FilterPublications(view, FilterSpec{SearchText: "SOIL"})
	if !equalStrings(titles(got), []string{"Soil carbon"}) {
		t.Fatalf("expected title match, got %v", titles(got))
	}
}

func TestFilterSourcesExact(t *testing.T) {
	got := FilterPublications(sampleView(), FilterSpec{Sources: []string{"Field Crops", "Field"}})
	if !equalStrings(titles(got), []string{"Wheat yields", "Irrigation"}) {
		t.Fatalf("expected exact source matches only, got %v", titles(got))
	}
}

func TestFilterAuthorsIsSubstringMatch(t *testing.T) {
	got := FilterPublications(sampleView(), FilterSpec{Authors: []string{"Lee K."}})
	// "Lee K." also selects "Lee K. Jr."
	if !equalStrings(titles(got), []string{"Soil carbon", "Wheat yields"}) {
		t.Fatalf("expected substring author matches, got %v", titles(got))
	}
}

func TestFilterCombinesOptionsAndPreservesOrder(t *testing.T) {
	view := sampleView()
	fs := FilterSpec{
		YearRange: &IntRange{Min: 2018, Max: 2022},
		Quartiles: []string{"Q1", "Q2", "Q4"},
		Authors:   []string{"Lee"},
	}

	got := FilterPublications(view, fs)
	if !equalStrings(titles(got), []string{"Soil carbon", "Wheat yields"}) {
		t.Fatalf("unexpected combined result: %v", titles(got))
	}
	if !isSubsequence(got, view) {
		t.Fatalf("filter result is not a subsequence of its input")
	}

	again := FilterPublications(got, fs)
	if !equalStrings(titles(again), titles(got)) {
		t.Fatalf("filter is not idempotent: %v vs %v", titles(again), titles(got))
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	view := sampleView()
	before := titles(view)
	_ = FilterPublications(view, FilterSpec{SearchText: "soil"})
	if !equalStrings(before, titles(view)) {
		t.Fatalf("input was modified: %v", titles(view))
	}
}
