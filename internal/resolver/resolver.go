// Package resolver answers natural-language questions about an expense
// dataset using an ordered rule table. Rules are tried in sequence and
// the first one that claims the query wins; order therefore encodes
// priority, with more specific patterns ahead of generic ones.
package resolver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/util"
)

const currency = "₹"

const (
	minPreviewRows     = 1
	maxPreviewRows     = 50
	defaultSummaryRows = 10
)

const fallbackMessage = "Sorry, I didn't understand that. " +
	"Try asking things like 'total spent', 'food expenses', or 'top category'."

// A rule inspects the lowered query and either claims it, returning the
// final answer, or passes. A rule that matched its trigger phrase but
// failed to parse an embedded value passes as well, letting later rules
// have a go.
type rule struct {
	name string
	run  func(q string, ds dataset) (string, bool)
}

type Resolver struct {
	rules []rule
}

func New() *Resolver {
	return &Resolver{
		rules: []rule{
			{name: "empty_dataset", run: emptyDataset},
			{name: "summarize_last_n", run: summarizeLastN},
			{name: "last_n_expenses", run: lastNExpenses},
			{name: "total_spend", run: totalSpend},
			{name: "largest_expense", run: largestExpense},
			{name: "smallest_expense", run: smallestExpense},
			{name: "average_daily_spend", run: averageDailySpend},
			{name: "expenses_between_dates", run: expensesBetweenDates},
			{name: "monthly_total", run: monthlyTotal},
			{name: "spend_in_month", run: spendInMonth},
			{name: "compare_categories", run: compareCategories},
			{name: "category_mention", run: categoryMention},
			{name: "top_category", run: topCategory},
		},
	}
}

// Resolve runs the query through the rule table and returns a formatted
// answer. It never returns an error and never panics: anything
// unexpected is converted to a generic error sentence at this boundary.
func (r *Resolver) Resolve(query string, records []expense.Record) (answer string) {
	defer func() {
		if rec := recover(); rec != nil {
			answer = fmt.Sprintf("Error processing query: %v", rec)
		}
	}()

	q := strings.ToLower(strings.TrimSpace(query))
	ds := dataset{records: records}

	for _, rule := range r.rules {
		if out, ok := rule.run(q, ds); ok {
			return out
		}
	}

	return fallbackMessage
}

// RuleNames exposes the dispatch order so it can be asserted in tests
// and shown in help output.
func (r *Resolver) RuleNames() []string {
	names := make([]string, len(r.rules))
	for i, rule := range r.rules {
		names[i] = rule.name
	}
	return names
}

var (
	lastNRe     = regexp.MustCompile(`last\s+(\d+)\s+expenses`)
	summarizeRe = regexp.MustCompile(`summarize\s+last\s+(\d+)\s+expenses`)
	compareRe   = regexp.MustCompile(`compare\s+([a-z\s]+)\s+vs\s+([a-z\s]+)`)
	monthlyRe   = regexp.MustCompile(`monthly\s+total\s+for\s+([a-z]+)\s+(\d{4})`)
	spendInRe   = regexp.MustCompile(`spend\s+in\s+([a-z]+)\s+(\d{4})`)
	betweenRe   = regexp.MustCompile(`expenses\s+between\s+(\d{4}-\d{2}-\d{2})\s+and\s+(\d{4}-\d{2}-\d{2})`)
)

func emptyDataset(_ string, ds dataset) (string, bool) {
	if len(ds.records) == 0 {
		return "No expense data available yet. Add some expenses first.", true
	}
	return "", false
}

func totalSpend(q string, ds dataset) (string, bool) {
	if !strings.Contains(q, "total spent") &&
		!strings.Contains(q, "how much did i spend") &&
		!strings.Contains(q, "total spend") {
		return "", false
	}

	return fmt.Sprintf("You've spent a total of %s%s.", currency, util.FormatMoney(ds.total())), true
}

func lastNExpenses(q string, ds dataset) (string, bool) {
	match := lastNRe.FindStringSubmatch(q)
	if match == nil {
		// Fixed alias kept from the original; redundant with the regex.
		if strings.Contains(q, "show last 5 expenses") {
			return ds.preview(5), true
		}
		return "", false
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return "", false
	}

	return ds.preview(clampRows(n)), true
}

func summarizeLastN(q string, ds dataset) (string, bool) {
	if !strings.Contains(q, "summarize last") || !strings.Contains(q, "expenses") {
		return "", false
	}

	n := defaultSummaryRows
	if match := summarizeRe.FindStringSubmatch(q); match != nil {
		if parsed, err := strconv.Atoi(match[1]); err == nil {
			n = parsed
		}
	}
	n = clampRows(n)

	tail := ds.tail(n)
	var total int64
	for _, record := range tail {
		total += record.AmountMinor
	}

	return fmt.Sprintf("Last %d expenses (total %s%s):\n%s",
		n, currency, util.FormatMoney(total), ds.preview(n)), true
}

func largestExpense(q string, ds dataset) (string, bool) {
	if !strings.Contains(q, "largest expense") {
		return "", false
	}
	return extremeExpense("Largest", ds, func(candidate, current int64) bool {
		return candidate > current
	}), true
}

func smallestExpense(q string, ds dataset) (string, bool) {
	if !strings.Contains(q, "smallest expense") {
		return "", false
	}
	return extremeExpense("Smallest", ds, func(candidate, current int64) bool {
		return candidate < current
	}), true
}

// extremeExpense picks the first record winning the comparison; ties
// keep the earlier record in dataset order.
func extremeExpense(label string, ds dataset, better func(candidate, current int64) bool) string {
	best := ds.records[0]
	for _, record := range ds.records[1:] {
		if better(record.AmountMinor, best.AmountMinor) {
			best = record
		}
	}

	notePart := ""
	if note := strings.TrimSpace(best.Note); note != "" {
		notePart = fmt.Sprintf(" Note: %s.", note)
	}

	return fmt.Sprintf("%s expense: %s%s on %s (%s).%s",
		label, currency, util.FormatMoney(best.AmountMinor), best.DateString(), best.Category, notePart)
}

func averageDailySpend(q string, ds dataset) (string, bool) {
	if !strings.Contains(q, "average daily spend") {
		return "", false
	}

	daily := map[string]int64{}
	for _, record := range ds.records {
		if record.Date == nil {
			continue
		}
		daily[record.DateString()] += record.AmountMinor
	}

	if len(daily) == 0 {
		return "Dates are not parseable to compute daily average.", true
	}

	var total int64
	for _, sum := range daily {
		total += sum
	}
	mean := float64(total) / float64(len(daily))

	return fmt.Sprintf("Average daily spend: %s%.2f.", currency, mean/100), true
}

func categoryMention(q string, ds dataset) (string, bool) {
	distinct := map[string]bool{}
	for _, record := range ds.records {
		if category := strings.ToLower(strings.TrimSpace(record.Category)); category != "" {
			distinct[category] = true
		}
	}

	// Sorted iteration keeps the winning category deterministic when
	// several appear in the query.
	categories := maps.Keys(distinct)
	sortStrings(categories)

	for _, category := range categories {
		if !strings.Contains(q, category) {
			continue
		}

		var total int64
		for _, record := range ds.records {
			if strings.EqualFold(strings.TrimSpace(record.Category), category) {
				total += record.AmountMinor
			}
		}

		return fmt.Sprintf("You spent %s%s on %s.", currency, util.FormatMoney(total), category), true
	}

	return "", false
}

func compareCategories(q string, ds dataset) (string, bool) {
	match := compareRe.FindStringSubmatch(q)
	if match == nil {
		return "", false
	}

	first := strings.TrimSpace(match[1])
	second := strings.TrimSpace(match[2])

	sumContains := func(phrase string) int64 {
		var total int64
		for _, record := range ds.records {
			if strings.Contains(strings.ToLower(record.Category), phrase) {
				total += record.AmountMinor
			}
		}
		return total
	}

	firstTotal := sumContains(first)
	secondTotal := sumContains(second)

	winner := first
	if secondTotal > firstTotal {
		winner = second
	}

	return fmt.Sprintf("%s: %s%s vs %s: %s%s → Higher: %s.",
		titleCase(first), currency, util.FormatMoney(firstTotal),
		titleCase(second), currency, util.FormatMoney(secondTotal),
		titleCase(winner)), true
}

func monthlyTotal(q string, ds dataset) (string, bool) {
	return monthTotalWithPhrase(q, ds, monthlyRe, "Total for %s %d: %s%s.")
}

func spendInMonth(q string, ds dataset) (string, bool) {
	return monthTotalWithPhrase(q, ds, spendInRe, "Spend in %s %d: %s%s.")
}

// monthTotalWithPhrase sums records falling in the named month. An
// unrecognized month name is a parse failure: the rule passes and the
// query falls through to later rules.
func monthTotalWithPhrase(q string, ds dataset, re *regexp.Regexp, format string) (string, bool) {
	match := re.FindStringSubmatch(q)
	if match == nil {
		return "", false
	}

	month, ok := util.ParseMonth(match[1])
	if !ok {
		return "", false
	}
	year, err := strconv.Atoi(match[2])
	if err != nil {
		return "", false
	}

	var total int64
	for _, record := range ds.records {
		if record.Date == nil {
			continue
		}
		if record.Date.Year() == year && record.Date.Month() == month {
			total += record.AmountMinor
		}
	}

	return fmt.Sprintf(format, titleCase(match[1]), year, currency, util.FormatMoney(total)), true
}

func expensesBetweenDates(q string, ds dataset) (string, bool) {
	match := betweenRe.FindStringSubmatch(q)
	if match == nil {
		return "", false
	}

	start, err := time.Parse(expense.DateLayout, match[1])
	if err != nil {
		return "", false
	}
	end, err := time.Parse(expense.DateLayout, match[2])
	if err != nil {
		return "", false
	}

	var total int64
	for _, record := range ds.records {
		if record.Date == nil {
			continue
		}
		if record.Date.Before(start) || record.Date.After(end) {
			continue
		}
		total += record.AmountMinor
	}

	return fmt.Sprintf("Total between %s and %s: %s%s.",
		match[1], match[2], currency, util.FormatMoney(total)), true
}

func topCategory(q string, ds dataset) (string, bool) {
	hasTop := strings.Contains(q, "top") || strings.Contains(q, "highest")
	if !hasTop || !strings.Contains(q, "category") {
		return "", false
	}

	totals := map[string]int64{}
	for _, record := range ds.records {
		if name := titleCase(strings.TrimSpace(record.Category)); name != "" {
			totals[name] += record.AmountMinor
		}
	}

	if len(totals) == 0 {
		return "No categorized expenses found.", true
	}

	names := maps.Keys(totals)
	sortStrings(names)

	topName := names[0]
	for _, name := range names[1:] {
		if totals[name] > totals[topName] {
			topName = name
		}
	}

	return fmt.Sprintf("Top category: %s with %s%s.", topName, currency, util.FormatMoney(totals[topName])), true
}

func clampRows(n int) int {
	if n < minPreviewRows {
		return minPreviewRows
	}
	if n > maxPreviewRows {
		return maxPreviewRows
	}
	return n
}
