package storage

import (
	"context"
	"testing"
	"time"

	"github.com/binghuan/bptrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awaitSnapshot(t *testing.T, ch <-chan []model.Record) []model.Record {
	t.Helper()
	select {
	case snapshot, ok := <-ch:
		require.True(t, ok, "watch channel closed unexpectedly")
		return snapshot
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watch snapshot")
		return nil
	}
}

func TestWatchRecords_InitialSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := testRecord(time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local), 121)
	require.NoError(t, store.SaveRecord(ctx, &r))

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := store.WatchRecords(watchCtx)
	require.NoError(t, err)

	snapshot := awaitSnapshot(t, ch)
	require.Len(t, snapshot, 1)
	assert.Equal(t, 121, snapshot[0].Systolic)
}

func TestWatchRecords_EmitsFullListOnEveryMutation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := store.WatchRecords(watchCtx)
	require.NoError(t, err)
	assert.Empty(t, awaitSnapshot(t, ch))

	r := testRecord(time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local), 121)
	require.NoError(t, store.SaveRecord(ctx, &r))
	snapshot := awaitSnapshot(t, ch)
	require.Len(t, snapshot, 1)

	require.NoError(t, store.DeleteRecord(ctx, r.ID))
	assert.Empty(t, awaitSnapshot(t, ch))
}

func TestWatchRecords_LatestSnapshotWinsForSlowConsumer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := store.WatchRecords(watchCtx)
	require.NoError(t, err)

	// Do not read between mutations; the buffered snapshot is replaced.
	for i := 0; i < 3; i++ {
		r := testRecord(time.Date(2024, 1, 1+i, 12, 0, 0, 0, time.Local), 120+i)
		require.NoError(t, store.SaveRecord(ctx, &r))
	}

	snapshot := awaitSnapshot(t, ch)
	assert.Len(t, snapshot, 3, "pending snapshot reflects the latest state")
}

func TestWatchRecords_CancelClosesChannel(t *testing.T) {
	store := newTestStore(t)

	watchCtx, cancel := context.WithCancel(context.Background())
	ch, err := store.WatchRecords(watchCtx)
	require.NoError(t, err)
	awaitSnapshot(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should close after context cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestWatchRecords_TxNotifiesOnCommitOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := store.WatchRecords(watchCtx)
	require.NoError(t, err)
	assert.Empty(t, awaitSnapshot(t, ch))

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	r := testRecord(time.Date(2024, 1, 15, 8, 0, 0, 0, time.Local), 121)
	require.NoError(t, tx.SaveRecord(ctx, &r))

	select {
	case snapshot := <-ch:
		t.Fatalf("no emission expected before commit, got %d records", len(snapshot))
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, tx.Commit())
	assert.Len(t, awaitSnapshot(t, ch), 1)
}
