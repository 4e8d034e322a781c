// Package flow is the reactive state container between the presentation
// layer and the repository. The presentation dispatches intents; the
// container mutates state, calls the repository, and republishes the new
// state. All state here is transient and rebuilt from repository results
// and user input; nothing is persisted.
package flow

import (
	"github.com/binghuan/bptrack/internal/model"
)

// Entry holds the form input strings of the add/edit dialog. Values stay
// raw text until submit so the presentation can echo exactly what was
// typed.
type Entry struct {
	Date      string // yyyy/MM/dd, empty means today
	Systolic  string
	Diastolic string
	HeartRate string
	Notes     string
	EditingID int64 // 0 while creating a new record
}

// RecordRow pairs a record with its derived category and trend for display.
type RecordRow struct {
	Record   model.Record
	Category model.Category
	Trend    model.Trend
}

// State is the aggregate UI state. It is published as a value; consumers
// never share mutable references with the container.
type State struct {
	// Err is the single user-visible error message. It is
	// fire-and-acknowledge: a newer error overwrites an unacknowledged
	// older one, and AcknowledgeError clears it after display.
	Err string

	// ExportPayload carries the CSV text of the last completed export.
	ExportPayload string

	Records []RecordRow
	Entry   Entry

	Loading      bool
	EntryVisible bool
	Importing    bool
	Exporting    bool
}

// rowsFromRecords derives category and trend for a descending-sorted
// record list. The trend of each record compares it to the next-older
// entry (index + 1).
func rowsFromRecords(records []model.Record) []RecordRow {
	rows := make([]RecordRow, len(records))
	for i, record := range records {
		var previous *model.Record
		if i+1 < len(records) {
			previous = &records[i+1]
		}
		rows[i] = RecordRow{
			Record:   record,
			Category: record.Category(),
			Trend:    model.TrendBetween(record, previous),
		}
	}
	return rows
}
