package services

import (
	"sort"
	"strings"

	"scopus-dashboard/models"
)

// GroupSummary is the publication count and citation sum of one group.
type GroupSummary struct {
	Key      string `json:"key"`
	PubCount int    `json:"pub_count"`
	Cites    int    `json:"cites"`
}

// GroupKeys extracts the groups a publication belongs to.
type GroupKeys func(p *models.Publication) []string

// AggregateBy groups publications by the keys returned for each one. A
// publication contributes once to every distinct key. Groups are ordered by
// count, ties keep first-seen order, and limit <= 0 keeps every group.
func AggregateBy(pubs []*models.Publication, keys GroupKeys, limit int) []GroupSummary {
	index := make(map[string]int)
	groups := make([]GroupSummary, 0)

	for _, p := range pubs {
		seen := make(map[string]struct{})
		for _, key := range keys(p) {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, GroupSummary{Key: key})
			}
			groups[i].PubCount++
			groups[i].Cites += p.CitedBy
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].PubCount > groups[j].PubCount
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// SourceKeys groups by venue name; blank venues are skipped.
func SourceKeys(p *models.Publication) []string {
	if strings.TrimSpace(p.Source) == "" {
		return nil
	}
	return []string{p.Source}
}

// AuthorKeys groups by every individual author of the publication.
func AuthorKeys(p *models.Publication) []string {
	return p.AuthorList()
}

// TopSources returns the venues with the most publications.
func TopSources(pubs []*models.Publication, limit int) []GroupSummary {
	return AggregateBy(pubs, SourceKeys, limit)
}

// TopAuthors returns the authors with the most publications.
func TopAuthors(pubs []*models.Publication, limit int) []GroupSummary {
	return AggregateBy(pubs, AuthorKeys, limit)
}
