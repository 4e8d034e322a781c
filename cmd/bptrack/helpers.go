package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/binghuan/bptrack/internal/config"
	"github.com/binghuan/bptrack/internal/repository"
	"github.com/binghuan/bptrack/internal/service"
	"github.com/binghuan/bptrack/internal/storage"
	"github.com/spf13/viper"
)

// cliDateLayout is the date format accepted by command flags, matching the
// CSV export format.
const cliDateLayout = "2006/01/02"

// initStore initializes the record store with proper path expansion.
func initStore(ctx context.Context) (service.Store, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/bptrack/bptrack.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize store
	store, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initRepository builds the repository over an initialized store.
func initRepository(ctx context.Context) (*repository.Repository, func(), error) {
	store, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = store.Close() }
	return repository.New(store), cleanup, nil
}

// parseRecordID parses a positional record ID argument.
func parseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record ID %q", arg)
	}
	return id, nil
}

// parseDayFlag parses a --date / --day flag value into a local timestamp on
// that calendar date.
func parseDayFlag(value string) (time.Time, error) {
	day, err := time.ParseInLocation(cliDateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy/MM/dd", value)
	}
	return day, nil
}
