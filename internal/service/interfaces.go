// Package service defines the interfaces for the persistence layer.
package service

import (
	"context"
	"time"

	"github.com/binghuan/bptrack/internal/model"
)

// Store is the contract for the blood-pressure record store. Records are
// exclusively owned by the store; callers hold transient copies.
type Store interface {
	// SaveRecord inserts a single record and assigns its ID.
	SaveRecord(ctx context.Context, record *model.Record) error
	// SaveRecords inserts a batch of records in one transaction.
	SaveRecords(ctx context.Context, records []model.Record) error
	// GetRecordByID returns the record with the given ID.
	GetRecordByID(ctx context.Context, id int64) (*model.Record, error)
	// GetRecords returns all records sorted descending by timestamp.
	GetRecords(ctx context.Context) ([]model.Record, error)
	// GetRecordsByDay returns the records whose timestamps fall on the
	// given calendar date.
	GetRecordsByDay(ctx context.Context, day time.Time) ([]model.Record, error)
	// UpdateRecord replaces the stored record with the same ID.
	UpdateRecord(ctx context.Context, record *model.Record) error
	// DeleteRecord removes the record with the given ID.
	DeleteRecord(ctx context.Context, id int64) error
	// DeleteRecordsByDay removes every record on the given calendar date
	// and reports how many were removed.
	DeleteRecordsByDay(ctx context.Context, day time.Time) (int64, error)
	// DeleteAllRecords empties the store.
	DeleteAllRecords(ctx context.Context) error
	// CountRecords returns the number of stored records.
	CountRecords(ctx context.Context) (int, error)

	// WatchRecords returns a channel that receives the full record list
	// after every committed mutation, newest first. The current snapshot
	// is delivered immediately on subscription. The subscription ends
	// when ctx is done.
	WatchRecords(ctx context.Context) (<-chan []model.Record, error)

	// Database management.
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx is a database transaction over the record operations.
type Tx interface {
	Commit() error
	Rollback() error

	SaveRecord(ctx context.Context, record *model.Record) error
	SaveRecords(ctx context.Context, records []model.Record) error
	DeleteRecord(ctx context.Context, id int64) error
	DeleteRecordsByDay(ctx context.Context, day time.Time) (int64, error)
}
