package util

import (
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseMonth resolves a month name, full ("august") or three-letter
// abbreviation ("aug"), case-insensitively.
func ParseMonth(name string) (time.Month, bool) {
	lowered := strings.ToLower(strings.TrimSpace(name))
	if m, ok := monthNames[lowered]; ok {
		return m, true
	}

	if len(lowered) == 3 {
		for full, m := range monthNames {
			if strings.HasPrefix(full, lowered) {
				return m, true
			}
		}
	}

	return 0, false
}

// GetMonthDates returns the first and last instant of the given month.
func GetMonthDates(month time.Month, year int) (time.Time, time.Time) {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := firstOfMonth.AddDate(0, 1, 0).Add(time.Nanosecond * -1)

	return firstOfMonth, lastOfMonth
}
