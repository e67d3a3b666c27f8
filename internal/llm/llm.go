// Package llm is the boundary to the hosted language model. Failures
// are typed errors, never answer-shaped strings, so fallback routing
// upstream can't be fooled by an answer that happens to sound like an
// error.
package llm

import (
	"context"
	"errors"

	"github.com/expenselens/expenselens/internal/expense"
)

// ErrNotConfigured means no API credential is available. The caller is
// expected to fall back to the rule-based resolver.
var ErrNotConfigured = errors.New("llm: api key not configured")

// Client answers a free-text question grounded in an expense context
// payload. Answer returns an error for anything other than a genuine
// model answer.
type Client interface {
	Answer(ctx context.Context, question string, expenses Context) (string, error)
	Ping(ctx context.Context) error
}

// Context is the bounded JSON payload injected into the model prompt:
// overall total, the five biggest categories, and a ten-row preview.
type Context struct {
	TotalSpent    float64            `json:"total_spent"`
	TopCategories map[string]float64 `json:"top_categories"`
	RowsPreview   []Row              `json:"rows_preview"`
}

type Row struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

const (
	topCategoryCount = 5
	previewRowCount  = 10
)

func BuildContext(records []expense.Record) Context {
	payload := Context{
		TopCategories: map[string]float64{},
		RowsPreview:   []Row{},
	}

	totals := map[string]int64{}
	var total int64
	for _, record := range records {
		total += record.AmountMinor
		if record.Category != "" {
			totals[record.Category] += record.AmountMinor
		}
	}
	payload.TotalSpent = expense.Rupees(total)

	for i := 0; i < topCategoryCount; i++ {
		best := ""
		for name, amount := range totals {
			if _, taken := payload.TopCategories[name]; taken {
				continue
			}
			if best == "" || amount > totals[best] || (amount == totals[best] && name < best) {
				best = name
			}
		}
		if best == "" {
			break
		}
		payload.TopCategories[best] = expense.Rupees(totals[best])
	}

	for i, record := range records {
		if i >= previewRowCount {
			break
		}
		payload.RowsPreview = append(payload.RowsPreview, Row{
			Date:     record.DateString(),
			Category: record.Category,
			Amount:   expense.Rupees(record.AmountMinor),
			Note:     record.Note,
		})
	}

	return payload
}
