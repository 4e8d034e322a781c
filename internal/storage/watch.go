package storage

import (
	"context"

	"github.com/binghuan/bptrack/internal/common"
	"github.com/binghuan/bptrack/internal/model"
)

// WatchRecords returns a channel that receives the full record list after
// every committed mutation, newest first. The current snapshot is delivered
// immediately. Channels are buffered one deep with latest-wins replacement,
// so a slow consumer only ever misses intermediate snapshots, never the
// final one, and never blocks the store.
func (s *SQLiteStore) WatchRecords(ctx context.Context) (<-chan []model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	snapshot, err := s.GetRecords(ctx)
	if err != nil {
		return nil, err
	}

	ch := make(chan []model.Record, 1)
	ch <- snapshot

	s.watchMu.Lock()
	s.nextWatcherID++
	id := s.nextWatcherID
	s.watchers[id] = ch
	s.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		s.watchMu.Lock()
		if existing, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(existing)
		}
		s.watchMu.Unlock()
	}()

	return ch, nil
}

// notifyWatchers re-queries the full record list and broadcasts it to every
// subscriber. Called after each committed mutation.
func (s *SQLiteStore) notifyWatchers(ctx context.Context) {
	s.watchMu.Lock()
	hasWatchers := len(s.watchers) > 0
	s.watchMu.Unlock()
	if !hasWatchers {
		return
	}

	records, err := getRecordsTx(ctx, s.db)
	if err != nil {
		common.LogError(err, "failed to refresh records for watchers", nil)
		return
	}

	s.watchMu.Lock()
	defer s.watchMu.Unlock()
	for _, ch := range s.watchers {
		select {
		case ch <- records:
		default:
			// Replace the stale pending snapshot with the fresh one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- records:
			default:
			}
		}
	}
}
