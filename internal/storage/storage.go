package storage

import (
	"context"
	"fmt"

	"github.com/expenselens/expenselens/internal/expense"
)

// MissingColumnError signals that the backing data is missing one of the
// required columns. Callers turn it into an explanatory sentence rather
// than a crash.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing %q column", e.Column)
}

// Storage supplies the expense dataset. ListExpenses reads the backing
// store fresh on every call; nothing is cached between queries.
type Storage interface {
	ListExpenses(ctx context.Context) ([]expense.Record, error)
	AppendExpense(ctx context.Context, record expense.Record) error
	InsertExpenses(ctx context.Context, records []expense.Record) (int64, error)
	Close() error
}
