package services

import (
	"testing"

	"scopus-dashboard/models"
)

func TestTopAuthorsScenario(t *testing.T) {
	pubs := []*models.Publication{
		newPub("first", intPtr(2021), "S", 3, nil, nil, "Smith J.; Lee K."),
		newPub("second", intPtr(2022), "S", 3, nil, nil, "Lee K."),
	}

	got := TopAuthors(pubs, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 authors, got %+v", got)
	}
	if got[0] != (GroupSummary{Key: "Lee K.", PubCount: 2, Cites: 6}) {
		t.Fatalf("unexpected first group: %+v", got[0])
	}
	if got[1] != (GroupSummary{Key: "Smith J.", PubCount: 1, Cites: 3}) {
		t.Fatalf("unexpected second group: %+v", got[1])
	}
}

func TestTopAuthorsCountsEachPublicationOnce(t *testing.T) {
	pubs := []*models.Publication{
		newPub("dup", nil, "S", 5, nil, nil, " Lee K. ;Lee K.;; "),
	}
	got := TopAuthors(pubs, 0)
	if len(got) != 1 || got[0].PubCount != 1 || got[0].Cites != 5 {
		t.Fatalf("expected a single group counted once, got %+v", got)
	}
}

func TestTopAuthorsCoversEveryAuthoredRecord(t *testing.T) {
	view := sampleView()
	groups := TopAuthors(view, 0)

	sum := 0
	for _, g := range groups {
		sum += g.PubCount
	}
	authored := 0
	for _, p := range view {
		if len(p.AuthorList()) > 0 {
			authored++
		}
	}
	if sum < authored {
		t.Fatalf("group counts %d below authored records %d", sum, authored)
	}
}

func TestTopSourcesOrderingAndLimit(t *testing.T) {
	view := sampleView()

	got := TopSources(view, 0)
	// "Dust storms" has no source.
	if len(got) != 3 {
		t.Fatalf("expected 3 non-blank sources, got %+v", got)
	}
	if got[0] != (GroupSummary{Key: "Field Crops", PubCount: 2, Cites: 11}) {
		t.Fatalf("unexpected top source: %+v", got[0])
	}
	if got[1].Key != "Geoderma" || got[2].Key != "Climate Letters" {
		t.Fatalf("ties must keep first-seen order, got %+v", got)
	}

	limited := TopSources(view, 2)
	if len(limited) != 2 || limited[0].Key != "Field Crops" {
		t.Fatalf("unexpected limited result: %+v", limited)
	}
}

func TestAggregateEmptyView(t *testing.T) {
	if got := TopSources(nil, 10); len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}
