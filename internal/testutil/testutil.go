// Package testutil holds shared helpers for package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/logger"
)

// NewLogger returns a logger that discards everything.
func NewLogger() *logger.Logger {
	return logger.New(logger.Config{Output: "discard"})
}

// Date builds a UTC midnight time for record fixtures.
func Date(t *testing.T, value string) *time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", value, err)
	}
	day := parsed.UTC()
	return &day
}

// Record builds an expense record fixture. Pass date "" for an undated
// record; amount is in minor units.
func Record(t *testing.T, date, category string, amountMinor int64, note string) expense.Record {
	t.Helper()

	record := expense.Record{
		Category:    category,
		AmountMinor: amountMinor,
		Note:        note,
	}
	if date != "" {
		record.Date = Date(t, date)
	}
	return record
}

// WriteCSV drops a CSV file into a temp dir and returns its path.
func WriteCSV(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "expenses.csv")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("unable to write test CSV: %v", err)
	}
	return path
}
