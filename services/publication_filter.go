package services

import (
	"strings"

	"scopus-dashboard/models"
)

// MissingPercentile stands in for an absent percentile when a range is applied.
const MissingPercentile = -1.0

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r IntRange) contains(v int) bool { return v >= r.Min && v <= r.Max }

// FloatRange is an inclusive float range.
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r FloatRange) contains(v float64) bool { return v >= r.Min && v <= r.Max }

// unrestricted reports whether the range spans every possible percentile.
func (r FloatRange) unrestricted() bool { return r.Min <= 0 && r.Max >= 100 }

// FilterSpec holds the independent filter options. Zero values impose no
// restriction, except Quartiles where a non-nil empty slice allows nothing.
type FilterSpec struct {
	YearRange       *IntRange   `json:"year_range,omitempty"`
	Quartiles       []string    `json:"quartiles,omitempty"`
	PercentileRange *FloatRange `json:"percentile_range,omitempty"`
	SearchText      string      `json:"search_text,omitempty"`
	Sources         []string    `json:"sources,omitempty"`
	Authors         []string    `json:"authors,omitempty"`
}

// FilterPublications returns the publications matching every option of filter,
// in input order.
func FilterPublications(pubs []*models.Publication, filter FilterSpec) []*models.Publication {
	var quartiles map[string]struct{}
	if filter.Quartiles != nil {
		quartiles = toSet(filter.Quartiles)
	}
	var sources map[string]struct{}
	if len(filter.Sources) > 0 {
		sources = toSet(filter.Sources)
	}
	query := strings.ToLower(strings.TrimSpace(filter.SearchText))

	out := make([]*models.Publication, 0, len(pubs))
	for _, p := range pubs {
		if filter.YearRange != nil && (p.Year == nil || !filter.YearRange.contains(*p.Year)) {
			continue
		}
		if quartiles != nil {
			if _, ok := quartiles[p.QuartileLabel()]; !ok {
				continue
			}
		}
		if filter.PercentileRange != nil && !filter.PercentileRange.unrestricted() {
			pct := MissingPercentile
			if p.Percentile2024 != nil {
				pct = *p.Percentile2024
			}
			if !filter.PercentileRange.contains(pct) {
				continue
			}
		}
		if query != "" && !p.ContainsText(query) {
			continue
		}
		if sources != nil {
			if _, ok := sources[p.Source]; !ok {
				continue
			}
		}
		if len(filter.Authors) > 0 && !matchesAnyAuthor(p.AuthorsFull, filter.Authors) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesAnyAuthor is a substring test against the full author list, so
// "Lee K." also matches "Lee K. Jr.".
func matchesAnyAuthor(authorsFull string, selected []string) bool {
	for _, a := range selected {
		if a != "" && strings.Contains(authorsFull, a) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
