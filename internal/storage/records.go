package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/binghuan/bptrack/internal/common"
	"github.com/binghuan/bptrack/internal/model"
)

// dbtx abstracts over *sql.DB and *sql.Tx so record queries run the same
// inside and outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const recordColumns = "id, systolic, diastolic, heart_rate, timestamp, notes"

// SaveRecord inserts a single record and assigns its ID.
func (s *SQLiteStore) SaveRecord(ctx context.Context, record *model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	if err := saveRecordTx(ctx, s.db, record); err != nil {
		return err
	}

	s.notifyWatchers(ctx)
	return nil
}

// SaveRecords inserts a batch of records in a single transaction.
func (s *SQLiteStore) SaveRecords(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveRecordsTx(ctx, tx, records); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch insert: %w", err)
	}

	s.notifyWatchers(ctx)
	return nil
}

// GetRecordByID returns the record with the given ID.
func (s *SQLiteStore) GetRecordByID(ctx context.Context, id int64) (*model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %d: %w", id, err)
	}
	return record, nil
}

// GetRecords returns all records sorted descending by timestamp.
func (s *SQLiteStore) GetRecords(ctx context.Context) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return getRecordsTx(ctx, s.db)
}

// GetRecordsByDay returns the records whose timestamps fall on the calendar
// date of day.
func (s *SQLiteStore) GetRecordsByDay(ctx context.Context, day time.Time) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	start, end := dayBounds(day)
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE timestamp >= ? AND timestamp < ? ORDER BY timestamp DESC",
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query records by day: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectRecords(rows)
}

// UpdateRecord replaces the stored record with the same ID. Edits are full
// replacements; there is no partial update.
func (s *SQLiteStore) UpdateRecord(ctx context.Context, record *model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}
	if err := validateID(record.ID); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE records
		SET systolic = ?, diastolic = ?, heart_rate = ?, timestamp = ?, notes = ?
		WHERE id = ?`,
		record.Systolic, record.Diastolic, record.HeartRate,
		record.Timestamp, nullableNotes(record.Notes), record.ID)
	if err != nil {
		return fmt.Errorf("failed to update record %d: %w", record.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %d: %w", record.ID, common.ErrNotFound)
	}

	s.notifyWatchers(ctx)
	return nil
}

// DeleteRecord removes the record with the given ID.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}

	if err := deleteRecordTx(ctx, s.db, id); err != nil {
		return err
	}

	s.notifyWatchers(ctx)
	return nil
}

// DeleteRecordsByDay removes every record on the given calendar date.
func (s *SQLiteStore) DeleteRecordsByDay(ctx context.Context, day time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	deleted, err := deleteRecordsByDayTx(ctx, s.db, day)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.notifyWatchers(ctx)
	}
	return deleted, nil
}

// DeleteAllRecords empties the store.
func (s *SQLiteStore) DeleteAllRecords(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM records"); err != nil {
		return fmt.Errorf("failed to delete all records: %w", err)
	}

	s.notifyWatchers(ctx)
	return nil
}

// CountRecords returns the number of stored records.
func (s *SQLiteStore) CountRecords(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func saveRecordTx(ctx context.Context, q dbtx, record *model.Record) error {
	result, err := q.ExecContext(ctx, `
		INSERT INTO records (systolic, diastolic, heart_rate, timestamp, notes)
		VALUES (?, ?, ?, ?, ?)`,
		record.Systolic, record.Diastolic, record.HeartRate,
		record.Timestamp, nullableNotes(record.Notes))
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted record ID: %w", err)
	}
	record.ID = id
	return nil
}

func saveRecordsTx(ctx context.Context, q dbtx, records []model.Record) error {
	for i := range records {
		if err := saveRecordTx(ctx, q, &records[i]); err != nil {
			return fmt.Errorf("record at index %d: %w", i, err)
		}
	}
	return nil
}

func deleteRecordTx(ctx context.Context, q dbtx, id int64) error {
	result, err := q.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("record %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func deleteRecordsByDayTx(ctx context.Context, q dbtx, day time.Time) (int64, error) {
	start, end := dayBounds(day)
	result, err := q.ExecContext(ctx,
		"DELETE FROM records WHERE timestamp >= ? AND timestamp < ?", start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records for %s: %w", day.Format("2006-01-02"), err)
	}

	return result.RowsAffected()
}

func getRecordsTx(ctx context.Context, q dbtx) ([]model.Record, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY timestamp DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return collectRecords(rows)
}

// dayBounds returns the half-open local-midnight range covering the
// calendar date of t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day+1, 0, 0, 0, 0, t.Location())
	return start, end
}

// nullableNotes stores absent notes as NULL rather than an empty string.
func nullableNotes(notes string) any {
	if notes == "" {
		return nil
	}
	return notes
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.Record, error) {
	var record model.Record
	var heartRate sql.NullInt64
	var notes sql.NullString

	if err := row.Scan(
		&record.ID,
		&record.Systolic,
		&record.Diastolic,
		&heartRate,
		&record.Timestamp,
		&notes,
	); err != nil {
		return nil, err
	}

	if heartRate.Valid {
		hr := int(heartRate.Int64)
		record.HeartRate = &hr
	}
	if notes.Valid {
		record.Notes = notes.String
	}

	return &record, nil
}

func collectRecords(rows *sql.Rows) ([]model.Record, error) {
	var records []model.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}
