package util

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Month
		ok    bool
	}{
		{name: "full name", input: "august", want: time.August, ok: true},
		{name: "mixed case", input: "August", want: time.August, ok: true},
		{name: "abbreviation", input: "aug", want: time.August, ok: true},
		{name: "surrounding spaces", input: " may ", want: time.May, ok: true},
		{name: "unknown", input: "smarch", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMonth(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseMonth(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseMonth(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetMonthDates(t *testing.T) {
	first, last := GetMonthDates(time.February, 2024)

	if first.Format("2006-01-02") != "2024-02-01" {
		t.Errorf("first of month = %s", first.Format("2006-01-02"))
	}
	if last.Format("2006-01-02") != "2024-02-29" {
		t.Errorf("last of leap February = %s", last.Format("2006-01-02"))
	}
}
