package services

import (
	"fmt"
	"sort"
	"strings"

	"scopus-dashboard/models"
)

type SortKey string

const (
	SortByYear        SortKey = "year"
	SortByCitedBy     SortKey = "cited_by"
	SortByPercentile  SortKey = "percentile_2024"
	SortByQuartile    SortKey = "quartile"
	SortByTitle       SortKey = "title"
	SortByAuthorsFull SortKey = "authors_full"
	SortBySource      SortKey = "source"
)

// SortKeys lists the accepted keys in menu order.
var SortKeys = []SortKey{SortByYear, SortByCitedBy, SortByPercentile, SortByQuartile, SortByTitle, SortByAuthorsFull, SortBySource}

type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ParseSortKey resolves a sort key; blank defaults to year.
func ParseSortKey(raw string) (SortKey, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return SortByYear, nil
	}
	for _, k := range SortKeys {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, raw)
}

// ParseSortDirection resolves a direction; blank defaults to descending.
func ParseSortDirection(raw string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return SortDescending, nil
	case "asc", "ascending":
		return SortAscending, nil
	case "desc", "descending":
		return SortDescending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortOrder, raw)
}

// SortPublications returns a stably sorted copy. Absent values go last in
// both directions.
func SortPublications(pubs []*models.Publication, key SortKey, dir SortDirection) []*models.Publication {
	out := make([]*models.Publication, len(pubs))
	copy(out, pubs)

	cmp := comparatorFor(key)
	sort.SliceStable(out, func(i, j int) bool {
		c, aMissing, bMissing := cmp(out[i], out[j])
		switch {
		case aMissing:
			return false
		case bMissing:
			return true
		case dir == SortAscending:
			return c < 0
		default:
			return c > 0
		}
	})
	return out
}

// comparator returns the ordering of a and b and whether either value is absent.
type comparator func(a, b *models.Publication) (cmp int, aMissing, bMissing bool)

func comparatorFor(key SortKey) comparator {
	switch key {
	case SortByCitedBy:
		return func(a, b *models.Publication) (int, bool, bool) {
			return compareInts(a.CitedBy, b.CitedBy), false, false
		}
	case SortByPercentile:
		return func(a, b *models.Publication) (int, bool, bool) {
			if a.Percentile2024 == nil || b.Percentile2024 == nil {
				return 0, a.Percentile2024 == nil, b.Percentile2024 == nil
			}
			return compareFloats(*a.Percentile2024, *b.Percentile2024), false, false
		}
	case SortByQuartile:
		return func(a, b *models.Publication) (int, bool, bool) {
			if a.Quartile == nil || b.Quartile == nil {
				return 0, a.Quartile == nil, b.Quartile == nil
			}
			return strings.Compare(*a.Quartile, *b.Quartile), false, false
		}
	case SortByTitle:
		return func(a, b *models.Publication) (int, bool, bool) {
			return strings.Compare(a.Title, b.Title), false, false
		}
	case SortByAuthorsFull:
		return func(a, b *models.Publication) (int, bool, bool) {
			return strings.Compare(a.AuthorsFull, b.AuthorsFull), false, false
		}
	case SortBySource:
		return func(a, b *models.Publication) (int, bool, bool) {
			return strings.Compare(a.Source, b.Source), false, false
		}
	default:
		return func(a, b *models.Publication) (int, bool, bool) {
			if a.Year == nil || b.Year == nil {
				return 0, a.Year == nil, b.Year == nil
			}
			return compareInts(*a.Year, *b.Year), false, false
		}
	}
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
