// Package dateutils parses and formats the dates found in title batches and
// printed on boletos.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts accepted in batch files.
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutBrazilian = "02/01/2006"
	DateLayoutDashed    = "02-01-2006"
	DateLayoutDotted    = "02.01.2006"
	DateLayoutCompact   = "02012006" // ddmmyyyy, as in CNAB records
)

// CommonFormats is the order in which ParseDate tries layouts.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutBrazilian,
	DateLayoutDashed,
	DateLayoutDotted,
	DateLayoutCompact,
}

var spaces = regexp.MustCompile(`\s+`)

// ParseDate parses a calendar date in any of CommonFormats and returns it at
// midnight UTC with the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseOptionalDate is ParseDate where an empty string is the zero time.
func ParseOptionalDate(dateStr string) (time.Time, error) {
	if CleanDateString(dateStr) == "" {
		return time.Time{}, nil
	}
	t, _, err := ParseDate(dateStr)
	return t, err
}

// CleanDateString trims and collapses whitespace.
func CleanDateString(dateStr string) string {
	return spaces.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToBrazilianFormat renders dd/mm/yyyy, or an empty string for the zero time.
func ToBrazilianFormat(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutBrazilian)
}

// ToISODate renders yyyy-mm-dd, or an empty string for the zero time.
func ToISODate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutISO)
}

// CalendarDay drops the clock and location of t, keeping its calendar date.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// IsWeekend checks if a date falls on a weekend (Saturday or Sunday)
func IsWeekend(date time.Time) bool {
	day := date.Weekday()
	return day == time.Saturday || day == time.Sunday
}
