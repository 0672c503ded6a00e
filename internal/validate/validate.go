package validate

import (
	"strconv"
	"strings"
)

// Int parses an optional integer query parameter. Empty input yields def;
// anything that is not an integer is rejected.
func Int(raw string, def int) (int, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ID validates a prescription id path segment.
func ID(raw string) (int64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Q trims a search query; an all-whitespace query is rejected.
func Q(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	return s, s != ""
}

// Category trims the optional category filter.
func Category(raw string) string {
	return strings.TrimSpace(raw)
}
