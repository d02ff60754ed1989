package services

import (
	"scopus-dashboard/models"
	"scopus-dashboard/utils"
)

// PublicationKPIs are the headline readouts of a view.
type PublicationKPIs struct {
	Total          int        `json:"total"`
	TotalCitations int        `json:"total_citations"`
	MeanPercentile *float64   `json:"mean_percentile"`
	TopQuartile    *string    `json:"top_quartile"`
	Display        KPIDisplay `json:"display"`
}

// KPIDisplay holds the formatted readouts.
type KPIDisplay struct {
	Total          string `json:"total"`
	TotalCitations string `json:"total_citations"`
	MeanPercentile string `json:"mean_percentile"`
	TopQuartile    string `json:"top_quartile"`
}

// ComputeKPIs summarizes a view. An empty view yields zeros and placeholders.
func ComputeKPIs(pubs []*models.Publication) PublicationKPIs {
	kpi := PublicationKPIs{Total: len(pubs)}

	var pctSum float64
	var pctCount int
	quartileCounts := make(map[string]int)
	var quartileOrder []string

	for _, p := range pubs {
		kpi.TotalCitations += p.CitedBy
		if p.Percentile2024 != nil {
			pctSum += *p.Percentile2024
			pctCount++
		}
		if p.Quartile != nil {
			q := *p.Quartile
			if _, ok := quartileCounts[q]; !ok {
				quartileOrder = append(quartileOrder, q)
			}
			quartileCounts[q]++
		}
	}

	if pctCount > 0 {
		mean := pctSum / float64(pctCount)
		kpi.MeanPercentile = &mean
	}

	best := 0
	for _, q := range quartileOrder {
		if quartileCounts[q] > best {
			best = quartileCounts[q]
			top := q
			kpi.TopQuartile = &top
		}
	}

	kpi.Display = KPIDisplay{
		Total:          utils.FormatThousands(kpi.Total),
		TotalCitations: utils.FormatThousands(kpi.TotalCitations),
		MeanPercentile: utils.FormatOneDecimal(kpi.MeanPercentile),
		TopQuartile:    utils.StringOrPlaceholder(kpi.TopQuartile),
	}
	return kpi
}
