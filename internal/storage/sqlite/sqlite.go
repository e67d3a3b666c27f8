// Package sqlite is the alternative expense store for users who outgrow
// the flat CSV file. Schema changes go through the migrations table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/expenselens/expenselens/internal/expense"
	"github.com/expenselens/expenselens/internal/storage"
)

type sqliteStorage struct {
	db *sql.DB
}

func New(source string) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	if _, err = db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal_mode: %w", err)
	}

	if _, err = db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}

	s := &sqliteStorage{db: db}
	if err = s.applyMigrations(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *sqliteStorage) ListExpenses(ctx context.Context) ([]expense.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, category, amount, note FROM expenses
		 ORDER BY date IS NULL, date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []expense.Record
	for rows.Next() {
		var date sql.NullString
		var record expense.Record

		if err = rows.Scan(&date, &record.Category, &record.AmountMinor, &record.Note); err != nil {
			return nil, err
		}
		if date.Valid {
			record.Date = expense.ParseDate(date.String)
		}

		records = append(records, record)
	}

	return records, rows.Err()
}

func (s *sqliteStorage) AppendExpense(ctx context.Context, record expense.Record) error {
	_, err := s.InsertExpenses(ctx, []expense.Record{record})
	return err
}

func (s *sqliteStorage) InsertExpenses(ctx context.Context, records []expense.Record) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO expenses(date, category, amount, note) VALUES(?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	defer stmt.Close()

	var inserted int64
	for _, record := range records {
		date := sql.NullString{}
		if record.Date != nil {
			date = sql.NullString{String: record.DateString(), Valid: true}
		}

		if _, err = stmt.ExecContext(ctx, date, record.Category, record.AmountMinor, record.Note); err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		inserted++
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return inserted, nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
