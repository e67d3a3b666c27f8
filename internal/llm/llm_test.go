package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/testutil"
)

func TestBuildContext(t *testing.T) {
	records := []expense.Record{
		testutil.Record(t, "2025-01-01", "Food", 10050, "groceries"),
		testutil.Record(t, "2025-01-02", "Travel", 20000, ""),
		testutil.Record(t, "2025-01-03", "", 5000, "uncategorized"),
	}

	payload := BuildContext(records)

	if payload.TotalSpent != 350.50 {
		t.Errorf("TotalSpent = %v, want 350.50", payload.TotalSpent)
	}

	if len(payload.TopCategories) != 2 {
		t.Fatalf("TopCategories = %v, want 2 entries", payload.TopCategories)
	}
	if payload.TopCategories["Travel"] != 200 || payload.TopCategories["Food"] != 100.50 {
		t.Errorf("TopCategories = %v", payload.TopCategories)
	}

	if len(payload.RowsPreview) != 3 {
		t.Fatalf("RowsPreview has %d rows, want 3", len(payload.RowsPreview))
	}
	first := payload.RowsPreview[0]
	if first.Date != "2025-01-01" || first.Category != "Food" || first.Amount != 100.50 || first.Note != "groceries" {
		t.Errorf("first preview row = %+v", first)
	}
}

func TestBuildContextCapsPayload(t *testing.T) {
	var records []expense.Record
	for i := 0; i < 12; i++ {
		date := fmt.Sprintf("2025-01-%02d", i+1)
		category := fmt.Sprintf("Category%d", i)
		records = append(records, testutil.Record(t, date, category, int64((i+1)*100), ""))
	}

	payload := BuildContext(records)

	if len(payload.TopCategories) != 5 {
		t.Errorf("TopCategories has %d entries, want 5", len(payload.TopCategories))
	}
	// The five biggest categories survive the cut.
	for _, name := range []string{"Category11", "Category10", "Category9", "Category8", "Category7"} {
		if _, ok := payload.TopCategories[name]; !ok {
			t.Errorf("expected %s in TopCategories, got %v", name, payload.TopCategories)
		}
	}

	if len(payload.RowsPreview) != 10 {
		t.Errorf("RowsPreview has %d rows, want 10", len(payload.RowsPreview))
	}
}

func TestBuildContextEmpty(t *testing.T) {
	payload := BuildContext(nil)

	if payload.TotalSpent != 0 {
		t.Errorf("TotalSpent = %v, want 0", payload.TotalSpent)
	}
	if payload.TopCategories == nil || len(payload.TopCategories) != 0 {
		t.Errorf("TopCategories = %v, want empty map", payload.TopCategories)
	}
	if payload.RowsPreview == nil || len(payload.RowsPreview) != 0 {
		t.Errorf("RowsPreview = %v, want empty slice", payload.RowsPreview)
	}
}

func TestNewOpenAIWithoutKey(t *testing.T) {
	provider := NewOpenAI("", "")

	if provider.Configured() {
		t.Error("provider without an API key should not report configured")
	}

	_, err := provider.Answer(context.Background(), "total spent", Context{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Answer() error = %v, want ErrNotConfigured", err)
	}

	if err = provider.Ping(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Ping() error = %v, want ErrNotConfigured", err)
	}
}

func TestNewOpenAIDefaultsModel(t *testing.T) {
	provider := NewOpenAI("sk-test", "  ")
	if provider.model != defaultModel {
		t.Errorf("model = %q, want %q", provider.model, defaultModel)
	}
	if !provider.Configured() {
		t.Error("provider with an API key should report configured")
	}
}
