package utils

import (
	"strconv"
	"strings"
)

// Placeholder is shown for a readout that has no value.
const Placeholder = "—"

// FormatThousands groups digits with a space, e.g. 1234567 -> "1 234 567".
func FormatThousands(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.Itoa(n)
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatOneDecimal renders v with one decimal, or Placeholder when nil.
func FormatOneDecimal(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// StringOrPlaceholder dereferences v, falling back to Placeholder.
func StringOrPlaceholder(v *string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return Placeholder
	}
	return *v
}

// SplitList splits comma separated values, trimming blanks away.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := SanitizeInput(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
