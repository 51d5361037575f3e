package utils

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date, optionally with an RFC 3339 time
// part. ok is false for anything else; callers treat that as an undefined
// date rather than an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// IsValidDate reports whether s parses as a date.
func IsValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// TodayDateString returns today in YYYY-MM-DD form for date input fields.
func TodayDateString() string {
	return time.Now().Format(dateLayout)
}

// FormatDate renders a stored date for display ("Jan 02, 2006"). Anything
// unparseable falls back to today, matching the defaulting rules everywhere
// else.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		t = time.Now()
	}
	return t.Format("Jan 02, 2006")
}
