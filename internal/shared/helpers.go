// Package shared provides small utility functions used across multiple
// packages in the bundlebridge codebase.
package shared

import "strings"

// SplitAndTrim splits a separated list, trims each entry, and drops
// empties.
func SplitAndTrim(value string, sep string) []string {
	var out []string
	for _, part := range strings.Split(value, sep) {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// Unquote strips one matching pair of surrounding double quotes.
func Unquote(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) >= 2 && trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"' {
		return trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}
