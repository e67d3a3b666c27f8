package csvfile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/testutil"
)

func TestListExpenses(t *testing.T) {
	path := testutil.WriteCSV(t, `Date,Category,Amount,Note
2025-01-02,Travel,50.00,train
2025-01-01,Food,100.50,groceries
bad-date,Bills,200.00,
`)

	records, err := New(path).ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("ListExpenses() error: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	// Sorted by date, undated rows last.
	if records[0].Category != "Food" || records[0].AmountMinor != 10050 {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Category != "Travel" {
		t.Errorf("second record = %+v", records[1])
	}
	if records[2].Date != nil || records[2].Category != "Bills" {
		t.Errorf("undated record should sort last, got %+v", records[2])
	}
}

func TestListExpensesMissingAmountColumn(t *testing.T) {
	path := testutil.WriteCSV(t, `Date,Category,Note
2025-01-01,Food,groceries
`)

	_, err := New(path).ListExpenses(context.Background())

	var missing *storage.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %v", err)
	}
	if missing.Column != "Amount" {
		t.Errorf("missing column = %q, want Amount", missing.Column)
	}
}

func TestListExpensesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	records, err := New(path).ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("missing file should yield empty dataset, got error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestListExpensesMergesSourcesAndDedupes(t *testing.T) {
	main := testutil.WriteCSV(t, `Date,Category,Amount,Note
2025-01-01,Food,100.00,first
`)
	extra := testutil.WriteCSV(t, `Date,Category,Amount,Note
2025-01-01,Food,100.00,duplicate of first
2025-01-02,Travel,50.00,
`)

	records, err := New(main, extra).ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("ListExpenses() error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected duplicate row to be dropped, got %d records", len(records))
	}
	if records[0].Note != "first" {
		t.Errorf("dedupe should keep the first occurrence, got %+v", records[0])
	}
}

func TestListExpensesSkipsMalformedRows(t *testing.T) {
	path := testutil.WriteCSV(t, `Date,Category,Amount,Note
2025-01-01,Food,not-a-number,bad row
2025-01-02,Travel,50.00,good row
`)

	records, err := New(path).ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("ListExpenses() error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected malformed row to be skipped, got %d records", len(records))
	}
	if records[0].Category != "Travel" {
		t.Errorf("surviving record = %+v", records[0])
	}
}

func TestAppendExpenseRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.csv")
	store := New(path)
	ctx := context.Background()

	record := testutil.Record(t, "2025-05-01", "Food", 12345, "lunch")
	if err := store.AppendExpense(ctx, record); err != nil {
		t.Fatalf("AppendExpense() error: %v", err)
	}

	// Second append must not duplicate the header.
	second := testutil.Record(t, "2025-05-02", "Travel", 5000, "")
	if err := store.AppendExpense(ctx, second); err != nil {
		t.Fatalf("AppendExpense() error: %v", err)
	}

	records, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses() error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].AmountMinor != 12345 || records[0].Note != "lunch" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].Category != "Travel" {
		t.Errorf("second record = %+v", records[1])
	}
}

func TestInsertExpensesEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "expenses.csv"))

	inserted, err := store.InsertExpenses(context.Background(), nil)
	if err != nil {
		t.Fatalf("InsertExpenses(nil) error: %v", err)
	}
	if inserted != 0 {
		t.Errorf("inserted = %d, want 0", inserted)
	}
}
