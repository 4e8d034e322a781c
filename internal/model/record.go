// Package model defines the core domain types for blood-pressure tracking.
package model

import (
	"time"
)

// Record represents a single blood-pressure measurement.
type Record struct {
	Timestamp time.Time
	Notes     string // optional, "" means absent
	HeartRate *int   // optional, nil means not measured
	ID        int64  // 0 means not yet persisted
	Systolic  int
	Diastolic int
}

// DayKey returns the calendar-date key used for date-based deduplication.
// Time-of-day is ignored.
func (r *Record) DayKey() string {
	return r.Timestamp.Format("2006-01-02")
}

// SameDay reports whether two records fall on the same calendar date.
func (r *Record) SameDay(other *Record) bool {
	return r.DayKey() == other.DayKey()
}

// Average returns the mean of systolic and diastolic pressure, used for
// trend comparison between consecutive records.
func (r *Record) Average() float64 {
	return float64(r.Systolic+r.Diastolic) / 2.0
}
