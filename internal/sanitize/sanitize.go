// Package sanitize normalizes raw form-shaped input before it reaches
// persistence. Every helper expresses failure as nil rather than an error,
// pushing "did the caller supply a valid value" decisions to call sites.
package sanitize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// Accepted timestamp layouts, from most to least specific. Covers RFC 3339,
// the value format of datetime-local form inputs, and plain dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Text trims the raw value and returns nil when nothing remains.
func Text(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Number parses the sanitized value as a finite float.
func Number(raw string) *float64 {
	trimmed := Text(raw)
	if trimmed == nil {
		return nil
	}
	parsed, err := strconv.ParseFloat(*trimmed, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return nil
	}
	return &parsed
}

// Date parses the sanitized value as a calendar date or timestamp.
func Date(raw string) *time.Time {
	trimmed := Text(raw)
	if trimmed == nil {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, *trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}

// ObjectID validates the sanitized value against the datastore's native
// 24-character hexadecimal primary-key format.
func ObjectID(raw string) *string {
	trimmed := Text(raw)
	if trimmed == nil || !objectIDPattern.MatchString(*trimmed) {
		return nil
	}
	return trimmed
}
