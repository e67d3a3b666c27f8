package resolver

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/util"
)

// dataset wraps the records handed to a single Resolve call. Records
// arrive already ordered by the storage layer (date ascending, undated
// rows last) and are never mutated here.
type dataset struct {
	records []expense.Record
}

func (ds dataset) total() int64 {
	var total int64
	for _, record := range ds.records {
		total += record.AmountMinor
	}
	return total
}

// tail returns the n most recent records in dataset order, or all of
// them when fewer exist.
func (ds dataset) tail(n int) []expense.Record {
	if n >= len(ds.records) {
		return ds.records
	}
	return ds.records[len(ds.records)-n:]
}

// preview renders the n most recent records as a fixed-width table of
// Date, Category, Amount and Note columns.
func (ds dataset) preview(n int) string {
	tail := ds.tail(n)

	rows := make([][]string, len(tail))
	for i, record := range tail {
		rows[i] = []string{
			record.DateString(),
			record.Category,
			util.FormatMoney(record.AmountMinor),
			record.Note,
		}
	}

	return util.RenderTable([]string{"Date", "Category", "Amount", "Note"}, rows)
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

func sortStrings(values []string) {
	sort.Strings(values)
}
