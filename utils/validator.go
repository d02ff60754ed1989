package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeRecipients sanitizes a recipient list, drops duplicates and returns
// the entries that are not valid addresses separately.
func NormalizeRecipients(raw []string) (valid, invalid []string) {
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		for _, addr := range SplitList(entry) {
			key := strings.ToLower(addr)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			if ValidateEmail(addr) {
				valid = append(valid, addr)
			} else {
				invalid = append(invalid, addr)
			}
		}
	}
	return valid, invalid
}

// SanitizeInput trims spaces and strips null bytes.
func SanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ReplaceAll(input, "\x00", "")
}
