package models

import "testing"

func TestNormalizeDOILink(t *testing.T) {
	url := "https://www.scopus.com/record/1"
	blank := "   "
	noDOI := &Publication{DOI: &blank, URL: &url}
	noDOI.Normalize()

	if noDOI.DOI != nil || noDOI.DOILink != nil {
		t.Fatalf("blank doi must be absent, got doi=%v link=%v", noDOI.DOI, noDOI.DOILink)
	}
	if link := noDOI.Link(); link == nil || *link != url {
		t.Fatalf("expected url as link, got %v", link)
	}

	doi := " 10.1/xyz "
	withDOI := &Publication{DOI: &doi, URL: &url, CitedBy: -3}
	withDOI.Normalize()

	if withDOI.DOILink == nil || *withDOI.DOILink != "https://doi.org/10.1/xyz" {
		t.Fatalf("unexpected doi link: %v", withDOI.DOILink)
	}
	if link := withDOI.Link(); *link != "https://doi.org/10.1/xyz" {
		t.Fatalf("doi link must take precedence, got %q", *link)
	}
	if withDOI.CitedBy != 0 {
		t.Fatalf("negative citations must be clamped, got %d", withDOI.CitedBy)
	}
	if withDOI.Display(FieldDOI) != "10.1/xyz" || withDOI.Value(FieldISSN) != nil {
		t.Fatalf("unexpected field values")
	}
}

func TestContainsTextAndAuthors(t *testing.T) {
	p := &Publication{AuthorsRaw: "Smith J.", AuthorsFull: "Smith, John; ; Lee K. ", Title: "Steppe Soils", Source: "Geoderma"}
	p.Normalize()

	for _, q := range []string{"steppe", "geoderma", "smith, john", "lee"} {
		if !p.ContainsText(q) {
			t.Fatalf("expected match for %q", q)
		}
	}
	if p.ContainsText("wheat") {
		t.Fatalf("unexpected match")
	}
	authors := p.AuthorList()
	if len(authors) != 2 || authors[0] != "Smith, John" || authors[1] != "Lee K." {
		t.Fatalf("unexpected authors: %q", authors)
	}
	if p.QuartileLabel() != QuartileUnset {
		t.Fatalf("expected unset quartile label")
	}
}

func TestDatasetFieldsAndBounds(t *testing.T) {
	y1, y2 := 2015, 2011
	ds := NewDataset([]*Publication{{Year: &y1}, {}, {Year: &y2}}, []Field{FieldTitle, FieldYear, FieldDOI})

	if !ds.Has(FieldDOILink) {
		t.Fatalf("doi_link follows doi")
	}
	fields := ds.Fields()
	if len(fields) != 4 || fields[0] != FieldTitle || fields[3] != FieldDOILink {
		t.Fatalf("unexpected fields: %v", fields)
	}
	cols := PresentColumns(ds, DisplayFields)
	if len(cols) != 3 || cols[0] != FieldTitle || cols[2] != FieldDOI {
		t.Fatalf("unexpected present columns: %v", cols)
	}

	lo, hi, ok := ds.YearBounds()
	if !ok || lo != 2011 || hi != 2015 {
		t.Fatalf("unexpected bounds: %d %d %v", lo, hi, ok)
	}
	if _, _, ok := NewDataset(nil, nil).YearBounds(); ok {
		t.Fatalf("empty dataset has no bounds")
	}
}

func TestFieldForHeader(t *testing.T) {
	if f, ok := FieldForHeader(" Процентиль 2024 "); !ok || f != FieldPercentile2024 {
		t.Fatalf("unexpected alias mapping: %q %v", f, ok)
	}
	if f, ok := FieldForHeader("cited_by"); !ok || f != FieldCitedBy {
		t.Fatalf("canonical names must be accepted: %q %v", f, ok)
	}
	if _, ok := FieldForHeader("doi_link"); ok {
		t.Fatalf("doi_link is derived and must not map")
	}
	if _, ok := FieldForHeader("EID"); ok {
		t.Fatalf("unknown header must not map")
	}
}
