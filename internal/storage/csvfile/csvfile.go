// Package csvfile stores expenses in a flat CSV file with columns
// Date, Category, Amount and an optional Note. Reads always hit the
// file; writers append last-write-wins with no locking, matching the
// original flat-file design.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/storage"
	"github.com/expenselens/expenselens/internal/util"
)

type csvStorage struct {
	path  string
	extra []string
}

func New(path string, extra ...string) storage.Storage {
	return &csvStorage{path: path, extra: extra}
}

var header = []string{"Date", "Category", "Amount", "Note"}

// ListExpenses loads the primary file plus any extra sources, drops
// duplicate (Date, Category, Amount) rows keeping the first occurrence,
// and sorts by date with undated rows last.
func (s *csvStorage) ListExpenses(_ context.Context) ([]expense.Record, error) {
	var records []expense.Record

	paths := append([]string{s.path}, s.extra...)
	for _, path := range paths {
		fileRecords, err := loadFile(path)
		if err != nil {
			var missing *storage.MissingColumnError
			if errors.As(err, &missing) {
				return nil, err
			}
			// Unreadable extra sources degrade to the remaining ones.
			if path == s.path && !os.IsNotExist(err) {
				return nil, err
			}
			continue
		}
		records = append(records, fileRecords...)
	}

	records = dedupe(records)

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date == nil {
			return false
		}
		if records[j].Date == nil {
			return true
		}
		return records[i].Date.Before(*records[j].Date)
	})

	return records, nil
}

func (s *csvStorage) AppendExpense(ctx context.Context, record expense.Record) error {
	_, err := s.InsertExpenses(ctx, []expense.Record{record})
	return err
}

func (s *csvStorage) InsertExpenses(_ context.Context, records []expense.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return 0, fmt.Errorf("unable to create data directory: %w", err)
		}
	}

	writeHeader := true
	if info, err := os.Stat(s.path); err == nil && info.Size() > 0 {
		writeHeader = false
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return 0, fmt.Errorf("unable to open %s: %w", s.path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if writeHeader {
		if err = w.Write(header); err != nil {
			return 0, err
		}
	}

	for _, record := range records {
		row := []string{
			record.DateString(),
			record.Category,
			util.FormatMoney(record.AmountMinor),
			record.Note,
		}
		if err = w.Write(row); err != nil {
			return 0, err
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return 0, err
	}

	return int64(len(records)), nil
}

func (s *csvStorage) Close() error {
	return nil
}

func loadFile(path string) ([]expense.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read header of %s: %w", path, err)
	}

	columns := map[string]int{}
	for i, name := range headerRow {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	amountIdx, ok := columns["amount"]
	if !ok {
		return nil, &storage.MissingColumnError{Column: "Amount"}
	}
	dateIdx, hasDate := columns["date"]
	categoryIdx, hasCategory := columns["category"]
	noteIdx, hasNote := columns["note"]

	var records []expense.Record
	for {
		row, readErr := reader.Read()
		if readErr != nil {
			// Rows the reader cannot make sense of end the scan; rows
			// with bad cell values are skipped individually below.
			break
		}

		cell := func(idx int, present bool) string {
			if !present || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		amount, amountErr := expense.ParseAmount(cell(amountIdx, true))
		if amountErr != nil {
			continue
		}

		records = append(records, expense.Record{
			Date:        expense.ParseDate(cell(dateIdx, hasDate)),
			Category:    cell(categoryIdx, hasCategory),
			AmountMinor: amount,
			Note:        cell(noteIdx, hasNote),
		})
	}

	return records, nil
}

func dedupe(records []expense.Record) []expense.Record {
	seen := map[string]bool{}
	result := make([]expense.Record, 0, len(records))

	for _, record := range records {
		key := fmt.Sprintf("%s|%s|%d", record.DateString(), strings.ToLower(record.Category), record.AmountMinor)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, record)
	}

	return result
}
