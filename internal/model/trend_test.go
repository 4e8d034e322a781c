package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reading(systolic, diastolic int) Record {
	return Record{
		Systolic:  systolic,
		Diastolic: diastolic,
		Timestamp: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
	}
}

func TestTrendBetween_FirstRecord(t *testing.T) {
	assert.Equal(t, TrendFirstRecord, TrendBetween(reading(120, 80), nil))
	assert.Equal(t, TrendFirstRecord, TrendBetween(reading(0, 0), nil))
}

func TestTrendBetween(t *testing.T) {
	// Previous average is fixed at (120+80)/2 = 100.
	previous := reading(120, 80)

	tests := []struct {
		name    string
		current Record
		want    Trend
	}{
		{name: "clearly increased", current: reading(126, 80), want: TrendIncreased},     // avg 103
		{name: "clearly decreased", current: reading(114, 80), want: TrendDecreased},     // avg 97
		{name: "small rise is stable", current: reading(122, 80), want: TrendStable},     // avg 101
		{name: "exactly +2 is stable", current: reading(124, 80), want: TrendStable},     // avg 102
		{name: "exactly -2 is stable", current: reading(116, 80), want: TrendStable},     // avg 98
		{name: "just past +2 increases", current: reading(125, 80), want: TrendIncreased}, // avg 102.5
		{name: "just past -2 decreases", current: reading(115, 80), want: TrendDecreased}, // avg 97.5
		{name: "unchanged is stable", current: reading(120, 80), want: TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendBetween(tt.current, &previous))
		})
	}
}

func TestRecord_Average(t *testing.T) {
	r := reading(121, 80)
	assert.InDelta(t, 100.5, r.Average(), 0.0001)
}

func TestRecord_DayKey(t *testing.T) {
	morning := Record{Timestamp: time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)}
	evening := Record{Timestamp: time.Date(2024, 1, 15, 22, 45, 0, 0, time.UTC)}
	nextDay := Record{Timestamp: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2024-01-15", morning.DayKey())
	assert.True(t, morning.SameDay(&evening))
	assert.False(t, morning.SameDay(&nextDay))
}
