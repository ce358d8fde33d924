// Package dates parses natural-language date expressions and absolute
// date strings into concrete filter ranges.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Range is an inclusive after/before pair for filtering messages.
type Range struct {
	After  time.Time
	Before time.Time
}

var lastNPattern = regexp.MustCompile(`^last (\d+) (day|week|month|year)s?$`)

// ParseExpression converts a relative phrase like "last week" or
// "last 15 days" into a Range ending now. Matching is case-insensitive
// and treats "-" and " " as interchangeable separators. The second
// return value is false for anything unrecognized, including "".
func ParseExpression(expr string) (Range, bool) {
	return parseExpressionAt(expr, time.Now())
}

func parseExpressionAt(expr string, now time.Time) (Range, bool) {
	lower := strings.TrimSpace(strings.ToLower(expr))
	lower = strings.ReplaceAll(lower, "-", " ")

	switch lower {
	case "last week":
		return Range{After: now.AddDate(0, 0, -7), Before: now}, true
	case "this week":
		return Range{After: startOfWeek(now), Before: now}, true
	case "last month":
		// Fixed 30-day window, unlike "last N months" below.
		return Range{After: now.AddDate(0, 0, -30), Before: now}, true
	case "this month":
		return Range{After: startOfMonth(now), Before: now}, true
	case "last year":
		// Fixed 365-day window, unlike "last N years" below.
		return Range{After: now.AddDate(0, 0, -365), Before: now}, true
	case "this year":
		return Range{After: startOfYear(now), Before: now}, true
	}

	if m := lastNPattern.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return Range{}, false
		}
		switch m[2] {
		case "day":
			return Range{After: now.AddDate(0, 0, -n), Before: now}, true
		case "week":
			return Range{After: now.AddDate(0, 0, -7*n), Before: now}, true
		case "month":
			return Range{After: now.AddDate(0, -n, 0), Before: now}, true
		case "year":
			return Range{After: now.AddDate(-n, 0, 0), Before: now}, true
		}
	}

	return Range{}, false
}

// dateLayouts are tried in order after the ISO forms; first match wins,
// so MM/dd/yyyy shadows dd/MM/yyyy for ambiguous inputs.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"01-02-2006",
	"02/01/2006",
}

var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an absolute date string: ISO forms first, then a
// small ordered list of common formats. Returns false when nothing
// matches.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayRange expands a bare date to the full day, start-of-day through
// 23:59:59.999 local time.
func DayRange(t time.Time) Range {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
	return Range{After: start, Before: end}
}

func startOfWeek(t time.Time) time.Time {
	// Sunday-based weeks, matching time.Weekday numbering.
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
}
