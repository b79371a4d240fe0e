// Package strings provides string slice utilities for configuration values.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty entries from a list parsed out
// of a comma-separated setting, trimming whitespace from each element.
// Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{" https://a.io", "https://b.io", "https://a.io", ""})
//	// Returns: []string{"https://a.io", "https://b.io"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
