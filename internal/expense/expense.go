package expense

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a single expense entry. Amounts are stored in minor units
// (paise) to avoid floating point drift during aggregation. Date is nil
// when the source row carried an unparsable or empty date; such records
// still participate in amount aggregations but are skipped by any rule
// that needs a calendar date.
type Record struct {
	Date        *time.Time
	Category    string
	AmountMinor int64
	Note        string
}

const DateLayout = "2006-01-02"

// DateString renders the record date as ISO 8601, or "" for nil dates.
func (r Record) DateString() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.Format(DateLayout)
}

// ParseAmount converts a decimal amount string ("100", "100.5", "1,250.00")
// into minor units.
func ParseAmount(s string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("amount cannot be empty")
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount format: %w", err)
	}

	return int64(math.Round(f * 100)), nil
}

// ParseDate accepts the date formats the original CSV exports used.
// It returns nil rather than an error so callers can keep the record.
func ParseDate(s string) *time.Time {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}

	layouts := []string{
		DateLayout,
		"2006-01-02 15:04:05",
		"02/01/2006",
		"01/02/2006",
		"2 January 2006",
		"January 2, 2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &day
		}
	}

	return nil
}

// Rupees converts minor units to a float amount for JSON payloads.
func Rupees(minor int64) float64 {
	return float64(minor) / 100
}
