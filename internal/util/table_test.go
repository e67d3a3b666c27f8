package util

import "testing"

func TestRenderTable(t *testing.T) {
	got := RenderTable(
		[]string{"Date", "Category", "Amount", "Note"},
		[][]string{
			{"2025-01-01", "Food", "100.00", "groceries"},
			{"2025-01-02", "Travel", "50.00", ""},
		},
	)

	want := "Date        Category  Amount  Note\n" +
		"2025-01-01  Food      100.00  groceries\n" +
		"2025-01-02  Travel    50.00"

	if got != want {
		t.Errorf("RenderTable mismatch:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderTableNoRows(t *testing.T) {
	got := RenderTable([]string{"Date", "Amount"}, nil)

	if got != "Date  Amount" {
		t.Errorf("RenderTable with no rows = %q", got)
	}
}
