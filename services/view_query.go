package services

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"scopus-dashboard/models"
	"scopus-dashboard/utils"
)

// ParseViewQuery reads the shared filter and sort parameters. Quartiles may be
// repeated or comma separated; a quartile parameter that is present but empty
// selects no quartile at all. Sources and authors are repeated only, since
// their values may contain commas.
func ParseViewQuery(values url.Values) (ViewQuery, error) {
	var q ViewQuery
	var err error

	if q.Preset, err = ParseYearPreset(values.Get("preset")); err != nil {
		return q, err
	}
	if q.Sort, err = ParseSortKey(values.Get("sort")); err != nil {
		return q, err
	}
	if q.Direction, err = ParseSortDirection(values.Get("order")); err != nil {
		return q, err
	}

	if q.Filter.YearRange, err = parseYearRange(values.Get("year_from"), values.Get("year_to")); err != nil {
		return q, err
	}
	if q.Filter.PercentileRange, err = parsePercentileRange(values.Get("pct_min"), values.Get("pct_max")); err != nil {
		return q, err
	}
	if raw, ok := values["quartile"]; ok {
		if q.Filter.Quartiles, err = parseQuartileList(raw); err != nil {
			return q, err
		}
	}

	q.Filter.SearchText = utils.SanitizeInput(values.Get("q"))
	q.Filter.Sources = collectValues(values["source"])
	q.Filter.Authors = collectValues(values["author"])
	return q, nil
}

// Encode renders the query back into URL parameters, e.g. for export links.
func (q ViewQuery) Encode() url.Values {
	v := url.Values{}
	if q.Preset != "" {
		v.Set("preset", string(q.Preset))
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.Direction != "" {
		v.Set("order", string(q.Direction))
	}
	f := q.Filter
	if f.YearRange != nil {
		v.Set("year_from", strconv.Itoa(f.YearRange.Min))
		v.Set("year_to", strconv.Itoa(f.YearRange.Max))
	}
	if f.PercentileRange != nil {
		v.Set("pct_min", strconv.FormatFloat(f.PercentileRange.Min, 'f', -1, 64))
		v.Set("pct_max", strconv.FormatFloat(f.PercentileRange.Max, 'f', -1, 64))
	}
	if f.Quartiles != nil {
		if len(f.Quartiles) == 0 {
			v.Set("quartile", "")
		}
		for _, quartile := range f.Quartiles {
			v.Add("quartile", quartile)
		}
	}
	if f.SearchText != "" {
		v.Set("q", f.SearchText)
	}
	for _, s := range f.Sources {
		v.Add("source", s)
	}
	for _, a := range f.Authors {
		v.Add("author", a)
	}
	return v
}

func parseYearRange(fromRaw, toRaw string) (*IntRange, error) {
	fromRaw, toRaw = strings.TrimSpace(fromRaw), strings.TrimSpace(toRaw)
	if fromRaw == "" && toRaw == "" {
		return nil, nil
	}
	r := IntRange{Min: math.MinInt32, Max: math.MaxInt32}
	if fromRaw != "" {
		v, err := strconv.Atoi(fromRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: year_from %q", ErrInvalidParameter, fromRaw)
		}
		r.Min = v
	}
	if toRaw != "" {
		v, err := strconv.Atoi(toRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: year_to %q", ErrInvalidParameter, toRaw)
		}
		r.Max = v
	}
	if r.Min > r.Max {
		return nil, fmt.Errorf("%w: year_from %d is after year_to %d", ErrInvalidParameter, r.Min, r.Max)
	}
	return &r, nil
}

func parsePercentileRange(minRaw, maxRaw string) (*FloatRange, error) {
	minRaw, maxRaw = strings.TrimSpace(minRaw), strings.TrimSpace(maxRaw)
	if minRaw == "" && maxRaw == "" {
		return nil, nil
	}
	r := FloatRange{Min: 0, Max: 100}
	if minRaw != "" {
		v, ok := parseNumber(minRaw)
		if !ok {
			return nil, fmt.Errorf("%w: pct_min %q", ErrInvalidParameter, minRaw)
		}
		r.Min = v
	}
	if maxRaw != "" {
		v, ok := parseNumber(maxRaw)
		if !ok {
			return nil, fmt.Errorf("%w: pct_max %q", ErrInvalidParameter, maxRaw)
		}
		r.Max = v
	}
	if r.Min > r.Max {
		return nil, fmt.Errorf("%w: pct_min %g is above pct_max %g", ErrInvalidParameter, r.Min, r.Max)
	}
	return &r, nil
}

func parseQuartileList(raw []string) ([]string, error) {
	out := make([]string, 0, len(models.Quartiles)+1)
	for _, item := range collectList(raw) {
		if strings.EqualFold(item, models.QuartileUnset) {
			out = append(out, models.QuartileUnset)
			continue
		}
		q := parseQuartile(item)
		if q == nil {
			return nil, fmt.Errorf("%w: quartile %q", ErrInvalidParameter, item)
		}
		out = append(out, *q)
	}
	return out, nil
}

func collectList(raw []string) []string {
	var out []string
	for _, entry := range raw {
		out = append(out, utils.SplitList(entry)...)
	}
	return out
}

func collectValues(raw []string) []string {
	var out []string
	for _, entry := range raw {
		if v := utils.SanitizeInput(entry); v != "" {
			out = append(out, v)
		}
	}
	return out
}
