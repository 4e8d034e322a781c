// Package repository orchestrates the record store and the CSV codec. It is
// the single entry point the state container and CLI commands talk to.
package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/binghuan/bptrack/internal/common"
	"github.com/binghuan/bptrack/internal/csvio"
	"github.com/binghuan/bptrack/internal/model"
	"github.com/binghuan/bptrack/internal/service"
)

// Repository coordinates store operations plus CSV export and
// import-with-deduplication. The store handle is injected at construction;
// there is no lazily-initialized global.
type Repository struct {
	store service.Store
}

// New creates a repository over the given store.
func New(store service.Store) *Repository {
	return &Repository{store: store}
}

// ImportSummary describes the outcome of a CSV import.
type ImportSummary struct {
	Imported int   // records inserted
	Replaced int64 // existing records removed because an imported record shared their date
}

// SaveRecord inserts a new measurement and assigns its ID.
func (r *Repository) SaveRecord(ctx context.Context, record *model.Record) error {
	if err := r.store.SaveRecord(ctx, record); err != nil {
		return err
	}
	slog.Info("Saved record",
		"id", record.ID,
		"systolic", record.Systolic,
		"diastolic", record.Diastolic,
		"category", record.Category().String())
	return nil
}

// UpdateRecord replaces the stored record with the same ID.
func (r *Repository) UpdateRecord(ctx context.Context, record *model.Record) error {
	return r.store.UpdateRecord(ctx, record)
}

// GetRecord returns a single record by ID.
func (r *Repository) GetRecord(ctx context.Context, id int64) (*model.Record, error) {
	return r.store.GetRecordByID(ctx, id)
}

// GetRecords returns all records, newest first.
func (r *Repository) GetRecords(ctx context.Context) ([]model.Record, error) {
	return r.store.GetRecords(ctx)
}

// DeleteRecord removes a record by ID.
func (r *Repository) DeleteRecord(ctx context.Context, id int64) error {
	return r.store.DeleteRecord(ctx, id)
}

// DeleteRecordsByDay removes every record on the given calendar date.
func (r *Repository) DeleteRecordsByDay(ctx context.Context, day time.Time) (int64, error) {
	return r.store.DeleteRecordsByDay(ctx, day)
}

// DeleteAllRecords empties the store.
func (r *Repository) DeleteAllRecords(ctx context.Context) error {
	return r.store.DeleteAllRecords(ctx)
}

// CountRecords returns the number of stored records.
func (r *Repository) CountRecords(ctx context.Context) (int, error) {
	return r.store.CountRecords(ctx)
}

// WatchRecords exposes the store's live list stream.
func (r *Repository) WatchRecords(ctx context.Context) (<-chan []model.Record, error) {
	return r.store.WatchRecords(ctx)
}

// RecordWithTrend pairs a record with its trend against the next-older one.
type RecordWithTrend struct {
	Record model.Record
	Trend  model.Trend
}

// RecordsWithTrend returns the full record list, newest first, with each
// record's trend computed against its chronological predecessor (the next
// entry in the descending list).
func (r *Repository) RecordsWithTrend(ctx context.Context) ([]RecordWithTrend, error) {
	records, err := r.store.GetRecords(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]RecordWithTrend, len(records))
	for i, record := range records {
		var previous *model.Record
		if i+1 < len(records) {
			previous = &records[i+1]
		}
		result[i] = RecordWithTrend{
			Record: record,
			Trend:  model.TrendBetween(record, previous),
		}
	}
	return result, nil
}

// ExportCSV serializes the current record list to CSV text.
func (r *Repository) ExportCSV(ctx context.Context) (string, error) {
	records, err := r.store.GetRecords(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrExportFailed, err)
	}

	slog.Info("Exporting records to CSV", "count", len(records))
	return csvio.Export(records), nil
}

// ImportCSV parses CSV text and folds the result into the store,
// deduplicating by calendar date: every imported record replaces any
// existing record on the same date, and within the import the last row for
// a date wins.
//
// The replacement runs as discrete per-date deletes followed by one batch
// insert, without a surrounding transaction. A failure partway through can
// leave deletes applied with the insert missing; the error is surfaced and
// nothing is retried.
func (r *Repository) ImportCSV(ctx context.Context, text string) (ImportSummary, error) {
	var summary ImportSummary

	parsed, err := csvio.Import(text)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", common.ErrImportFailed, err)
	}
	if len(parsed) == 0 {
		return summary, nil
	}

	// Resolve intra-import duplicates first so the batch insert carries at
	// most one record per date.
	incoming := csvio.MergeByDate(nil, parsed)

	for _, record := range incoming {
		deleted, err := r.store.DeleteRecordsByDay(ctx, record.Timestamp)
		if err != nil {
			return summary, fmt.Errorf("failed to replace records for %s: %w", record.DayKey(), err)
		}
		summary.Replaced += deleted
	}

	if err := r.store.SaveRecords(ctx, incoming); err != nil {
		return summary, fmt.Errorf("failed to insert imported records: %w", err)
	}
	summary.Imported = len(incoming)

	slog.Info("Imported CSV records",
		"parsed", len(parsed),
		"imported", summary.Imported,
		"replaced", summary.Replaced)

	return summary, nil
}
