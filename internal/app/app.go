package app

import "strings"

type Logger interface {
	Info(msg string)
	Error(msg string)
}

// normalizeSkills trims each entry and drops empties. Order and duplicates
// are kept.
func normalizeSkills(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

// SplitSkills turns a comma-separated skills string into a normalized list.
func SplitSkills(raw string) []string {
	return normalizeSkills(strings.Split(raw, ","))
}
