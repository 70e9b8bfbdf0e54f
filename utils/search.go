package utils

import "strings"

// ContainsFold reports whether substr is within s, ignoring case.
// An empty substr matches everything.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// MatchesAny reports whether filter is within any of the fields, ignoring case.
func MatchesAny(filter string, fields ...string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	for _, f := range fields {
		if ContainsFold(f, filter) {
			return true
		}
	}
	return false
}
