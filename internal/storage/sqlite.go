// Package storage provides the SQLite persistence layer for blood-pressure
// records.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/binghuan/bptrack/internal/model"
	"github.com/binghuan/bptrack/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the service.Store interface using SQLite.
type SQLiteStore struct {
	db            *sql.DB
	watchers      map[int64]chan []model.Record
	dbPath        string
	nextWatcherID int64
	watchMu       sync.Mutex
}

// NewSQLiteStore creates a new SQLite store instance. The handle is meant to
// be constructed once at startup and injected into the repository.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// _loc=auto keeps scanned timestamps in local time, which the
	// calendar-date queries depend on.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_loc=auto")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{
		db:       db,
		dbPath:   dbPath,
		watchers: make(map[int64]chan []model.Record),
	}, nil
}

// Close closes the database connection and ends every watch subscription.
func (s *SQLiteStore) Close() error {
	s.watchMu.Lock()
	for id, ch := range s.watchers {
		close(ch)
		delete(s.watchers, id)
	}
	s.watchMu.Unlock()

	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStore) BeginTx(ctx context.Context) (service.Tx, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTx{
		tx:    tx,
		store: s,
	}, nil
}

// sqliteTx wraps sql.Tx to implement service.Tx. Watchers are notified once,
// on commit, rather than per statement.
type sqliteTx struct {
	tx    *sql.Tx
	store *SQLiteStore
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return err
	}
	t.store.notifyWatchers(context.Background())
	return nil
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

func (t *sqliteTx) SaveRecord(ctx context.Context, record *model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}
	return saveRecordTx(ctx, t.tx, record)
}

func (t *sqliteTx) SaveRecords(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}
	return saveRecordsTx(ctx, t.tx, records)
}

func (t *sqliteTx) DeleteRecord(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return deleteRecordTx(ctx, t.tx, id)
}

func (t *sqliteTx) DeleteRecordsByDay(ctx context.Context, day time.Time) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return deleteRecordsByDayTx(ctx, t.tx, day)
}
