package services

import (
	"math"
	"strconv"
	"strings"

	"scopus-dashboard/models"
)

// Cell coercion never fails; unusable values fall back to the field default.

func parseNumber(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, " ", "")
	if !strings.Contains(raw, ".") {
		raw = strings.Replace(raw, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseCitedBy(raw string) int {
	v, ok := parseNumber(raw)
	if !ok || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0
	}
	return int(v)
}

func parseYear(raw string) *int {
	v, ok := parseNumber(raw)
	if !ok || v != math.Trunc(v) || v < 0 || v > 9999 {
		return nil
	}
	year := int(v)
	return &year
}

func parsePercentile(raw string) *float64 {
	v, ok := parseNumber(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if !ok || v < 0 || v > 100 {
		return nil
	}
	return &v
}

func parseQuartile(raw string) *string {
	label := strings.ToUpper(strings.TrimSpace(raw))
	for _, q := range models.Quartiles {
		if label == q {
			return &label
		}
	}
	return nil
}

func optionalText(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
