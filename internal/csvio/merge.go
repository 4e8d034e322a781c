package csvio

import (
	"sort"

	"github.com/binghuan/bptrack/internal/model"
)

// MergeByDate folds incoming records into existing ones, keeping at most one
// record per calendar date. Incoming records win over existing ones on the
// same date, and a later incoming record wins over an earlier one; the
// superseded record is discarded outright, never merged field by field.
// The result is sorted newest-first.
func MergeByDate(existing, incoming []model.Record) []model.Record {
	byDay := make(map[string]model.Record, len(existing)+len(incoming))
	for _, r := range existing {
		byDay[r.DayKey()] = r
	}
	for _, r := range incoming {
		byDay[r.DayKey()] = r
	}

	merged := make([]model.Record, 0, len(byDay))
	for _, r := range byDay {
		merged = append(merged, r)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})

	return merged
}
