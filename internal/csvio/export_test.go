package csvio

import (
	"strings"
	"testing"
	"time"

	"github.com/binghuan/bptrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_Empty(t *testing.T) {
	assert.Equal(t, "Date,Systolic,Diastolic,Heartbeat,Notes\n", Export(nil))
}

func TestExport(t *testing.T) {
	hr := 72
	records := []model.Record{
		{
			ID:        2,
			Systolic:  135,
			Diastolic: 88,
			HeartRate: &hr,
			Timestamp: time.Date(2024, 2, 3, 21, 15, 0, 0, time.UTC),
			Notes:     "late, after coffee",
		},
		{
			ID:        1,
			Systolic:  118,
			Diastolic: 75,
			Timestamp: time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC),
		},
	}

	out := Export(records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Date,Systolic,Diastolic,Heartbeat,Notes", lines[0])
	assert.Equal(t, "2024/02/03,135,88,72,late， after coffee", lines[1], "literal comma becomes full-width")
	assert.Equal(t, "2024/02/01,118,75,,", lines[2], "absent heart rate and notes export empty")
}

func TestExport_DropsTimeOfDay(t *testing.T) {
	records := []model.Record{{
		Systolic:  120,
		Diastolic: 80,
		Timestamp: time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
	}}

	out := Export(records)
	assert.Contains(t, out, "2024/06/30,120,80")
	assert.NotContains(t, out, "23:59")
}
