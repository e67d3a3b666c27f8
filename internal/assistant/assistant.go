// Package assistant routes a question to the language model when one is
// configured and to the rule-based resolver otherwise. The dataset is
// reloaded from storage on every question; nothing persists between
// calls.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/llm"
	"github.com/expenselens/expenselens/internal/logger"
	"github.com/expenselens/expenselens/internal/resolver"
	"github.com/expenselens/expenselens/internal/storage"
)

type Assistant struct {
	store    storage.Storage
	client   llm.Client // nil when no model is configured
	resolver *resolver.Resolver
	logger   *logger.Logger
}

func New(store storage.Storage, client llm.Client, log *logger.Logger) *Assistant {
	return &Assistant{
		store:    store,
		client:   client,
		resolver: resolver.New(),
		logger:   log,
	}
}

// Answer always returns a displayable sentence. Model failures of any
// kind fall back to the resolver; they are routed on the error value,
// never by inspecting answer text.
func (a *Assistant) Answer(ctx context.Context, query string) string {
	question := strings.TrimSpace(query)
	if question == "" {
		return "Please enter a question."
	}

	records, err := a.store.ListExpenses(ctx)
	if err != nil {
		var missing *storage.MissingColumnError
		if errors.As(err, &missing) {
			return fmt.Sprintf("Couldn't find the '%s' column in your data.", missing.Column)
		}
		return fmt.Sprintf("Error processing query: %v", err)
	}

	if answer, ok := a.askModel(ctx, question, records); ok {
		return answer
	}

	return a.resolver.Resolve(question, records)
}

func (a *Assistant) askModel(ctx context.Context, question string, records []expense.Record) (string, bool) {
	if a.client == nil {
		return "", false
	}

	answer, err := a.client.Answer(ctx, question, llm.BuildContext(records))
	if err == nil {
		return answer, true
	}

	if errors.Is(err, llm.ErrNotConfigured) {
		a.logger.Debug("model not configured, using rule-based resolver")
	} else {
		a.logger.Warn("model call failed, using rule-based resolver", "error", err)
	}

	return "", false
}
