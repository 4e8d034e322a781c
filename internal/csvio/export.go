// Package csvio implements the CSV codec for blood-pressure records: export
// to the 5-column interchange format and import with per-line validation.
package csvio

import (
	"strconv"
	"strings"

	"github.com/binghuan/bptrack/internal/model"
)

// Header is the literal first line of every exported file. Import checks it
// loosely (substring presence), export writes it verbatim.
const Header = "Date,Systolic,Diastolic,Heartbeat,Notes"

// exportDateLayout formats timestamps on export. Time-of-day is dropped;
// import restores a fixed noon, so round trips lose the original time.
const exportDateLayout = "2006/01/02"

// fullWidthComma replaces literal commas inside notes so a note can never
// change the field count of its line.
const fullWidthComma = "，"

// Export serializes records to CSV text in the given order. Absent heart
// rates and notes become empty fields.
func Export(records []model.Record) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")

	for _, r := range records {
		b.WriteString(r.Timestamp.Format(exportDateLayout))
		b.WriteString(",")
		b.WriteString(strconv.Itoa(r.Systolic))
		b.WriteString(",")
		b.WriteString(strconv.Itoa(r.Diastolic))
		b.WriteString(",")
		if r.HeartRate != nil {
			b.WriteString(strconv.Itoa(*r.HeartRate))
		}
		b.WriteString(",")
		b.WriteString(strings.ReplaceAll(r.Notes, ",", fullWidthComma))
		b.WriteString("\n")
	}

	return b.String()
}
