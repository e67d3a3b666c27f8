// Package report aggregates the dataset for the dashboard and the
// report command: monthly totals, budget alerts, recurring expenses and
// category rankings.
package report

import (
	"sort"
	"time"

	"golang.org/x/exp/maps"

	"github.com/expenselens/expenselens/internal/expense"
)

type MonthTotal struct {
	Month      time.Time // first day of the month
	TotalMinor int64
}

// MonthlyTotals buckets dated records by calendar month, sorted
// ascending. Undated records are skipped.
func MonthlyTotals(records []expense.Record) []MonthTotal {
	buckets := map[time.Time]int64{}
	for _, record := range records {
		if record.Date == nil {
			continue
		}
		monthStart := time.Date(record.Date.Year(), record.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[monthStart] += record.AmountMinor
	}

	months := maps.Keys(buckets)
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	totals := make([]MonthTotal, len(months))
	for i, month := range months {
		totals[i] = MonthTotal{Month: month, TotalMinor: buckets[month]}
	}

	return totals
}

type Alert struct {
	Category   string
	LimitMinor int64
	SpentMinor int64
}

// BudgetAlerts reports categories whose total spend exceeds the
// configured limit. Limits are whole rupees, as configured.
func BudgetAlerts(records []expense.Record, limits map[string]int64) []Alert {
	totals := map[string]int64{}
	for _, record := range records {
		totals[record.Category] += record.AmountMinor
	}

	categories := maps.Keys(limits)
	sort.Strings(categories)

	var alerts []Alert
	for _, category := range categories {
		limitMinor := limits[category] * 100
		if spent, ok := totals[category]; ok && spent > limitMinor {
			alerts = append(alerts, Alert{
				Category:   category,
				LimitMinor: limitMinor,
				SpentMinor: spent,
			})
		}
	}

	return alerts
}

type Recurring struct {
	Category    string
	AmountMinor int64
	Count       int
}

const recurringThreshold = 2

// RecurringExpenses finds (category, amount) pairs occurring more than
// twice, the original detector's heuristic for a recurring charge.
func RecurringExpenses(records []expense.Record) []Recurring {
	type key struct {
		category string
		amount   int64
	}

	counts := map[key]int{}
	for _, record := range records {
		counts[key{category: record.Category, amount: record.AmountMinor}]++
	}

	var recurring []Recurring
	for k, count := range counts {
		if count > recurringThreshold {
			recurring = append(recurring, Recurring{
				Category:    k.category,
				AmountMinor: k.amount,
				Count:       count,
			})
		}
	}

	sort.Slice(recurring, func(i, j int) bool {
		if recurring[i].Count != recurring[j].Count {
			return recurring[i].Count > recurring[j].Count
		}
		if recurring[i].Category != recurring[j].Category {
			return recurring[i].Category < recurring[j].Category
		}
		return recurring[i].AmountMinor < recurring[j].AmountMinor
	})

	return recurring
}

type CategoryTotal struct {
	Name       string
	TotalMinor int64
}

// TopCategories ranks categories by total spend, descending; ties break
// alphabetically. n <= 0 means all.
func TopCategories(records []expense.Record, n int) []CategoryTotal {
	totals := map[string]int64{}
	for _, record := range records {
		if record.Category != "" {
			totals[record.Category] += record.AmountMinor
		}
	}

	names := maps.Keys(totals)
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})

	if n > 0 && n < len(names) {
		names = names[:n]
	}

	result := make([]CategoryTotal, len(names))
	for i, name := range names {
		result[i] = CategoryTotal{Name: name, TotalMinor: totals[name]}
	}

	return result
}

// TotalMinor sums every record amount.
func TotalMinor(records []expense.Record) int64 {
	var total int64
	for _, record := range records {
		total += record.AmountMinor
	}
	return total
}
