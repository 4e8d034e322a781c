package csvio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/binghuan/bptrack/internal/model"
)

// Value ranges accepted on import.
const (
	minPressure  = 1
	maxSystolic  = 300
	maxDiastolic = 200
	maxHeartRate = 300
)

// importHour is the fixed time-of-day assigned to imported records; the CSV
// format carries no time component.
const importHour = 12

var (
	datePattern   = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
	underscoreRun = regexp.MustCompile(`_{2,}`)
)

// Import parses CSV text into validated records. Every failing data line is
// collected into a single *ImportError; if any line fails, no records are
// returned. Imported records carry ID 0 and a fixed noon timestamp.
func Import(text string) ([]model.Record, error) {
	text = preprocess(text)
	if text == "" {
		return nil, ErrEmptyFile
	}

	lines := strings.Split(text, "\n")

	header := lines[0]
	if !strings.Contains(header, "Date") ||
		!strings.Contains(header, "Systolic") ||
		!strings.Contains(header, "Diastolic") {
		return nil, ErrInvalidHeader
	}

	var records []model.Record
	var importErr ImportError

	for i, line := range lines[1:] {
		lineNo := i + 2 // header is line 1

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Trim(trimmed, ", \t") == "" {
			continue
		}

		record, reasons := parseLine(trimmed)
		if len(reasons) > 0 {
			for _, reason := range reasons {
				importErr.Lines = append(importErr.Lines, LineError{Line: lineNo, Reason: reason})
			}
			continue
		}
		records = append(records, record)
	}

	if len(importErr.Lines) > 0 {
		return nil, &importErr
	}
	return records, nil
}

// preprocess strips a UTF-8 BOM, normalizes line endings, and removes the
// stray underscore runs some clipboard sources wrap around the content.
func preprocess(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	text = strings.Trim(text, "_")
	return strings.TrimSpace(text)
}

// cleanField trims whitespace, strips leading/trailing underscore runs, and
// collapses internal underscore runs to a single underscore.
func cleanField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")
	return strings.TrimSpace(s)
}

// parseLine parses one data line. It returns either a record or the list of
// validation failures for that line.
func parseLine(line string) (model.Record, []string) {
	// The notes field keeps any remainder, so a note that somehow still
	// contains a comma does not shift later fields away.
	rawFields := strings.SplitN(line, ",", 5)
	fields := make([]string, len(rawFields))
	for i, f := range rawFields {
		fields[i] = cleanField(f)
	}

	if len(fields) < 3 {
		return model.Record{}, []string{fmt.Sprintf("insufficient fields (got %d, need at least 3)", len(fields))}
	}

	timestamp, reason := parseDate(fields[0])
	if reason != "" {
		return model.Record{}, []string{reason}
	}

	systolic, reason := parseRequiredInt(fields[1], "systolic")
	if reason != "" {
		return model.Record{}, []string{reason}
	}

	diastolic, reason := parseRequiredInt(fields[2], "diastolic")
	if reason != "" {
		return model.Record{}, []string{reason}
	}

	var heartRate *int
	if len(fields) >= 4 && fields[3] != "" {
		hr, err := strconv.Atoi(fields[3])
		if err != nil {
			return model.Record{}, []string{fmt.Sprintf("invalid heart rate value %q", fields[3])}
		}
		heartRate = &hr
	}

	notes := ""
	if len(fields) >= 5 {
		notes = cleanField(strings.ReplaceAll(fields[4], fullWidthComma, ","))
	}

	// Range checks run after parsing; every violation on the line is
	// reported, not just the first.
	var reasons []string
	if systolic < minPressure || systolic > maxSystolic {
		reasons = append(reasons, fmt.Sprintf("systolic out of range [%d,%d]: %d", minPressure, maxSystolic, systolic))
	}
	if diastolic < minPressure || diastolic > maxDiastolic {
		reasons = append(reasons, fmt.Sprintf("diastolic out of range [%d,%d]: %d", minPressure, maxDiastolic, diastolic))
	}
	if heartRate != nil && (*heartRate < minPressure || *heartRate > maxHeartRate) {
		reasons = append(reasons, fmt.Sprintf("heart rate out of range [%d,%d]: %d", minPressure, maxHeartRate, *heartRate))
	}
	if len(reasons) > 0 {
		return model.Record{}, reasons
	}

	return model.Record{
		Systolic:  systolic,
		Diastolic: diastolic,
		HeartRate: heartRate,
		Timestamp: timestamp,
		Notes:     notes,
	}, nil
}

// parseDate validates the yyyy/M/d shape, rejects impossible calendar dates,
// and pins the time-of-day to noon.
func parseDate(s string) (time.Time, string) {
	if !datePattern.MatchString(s) {
		return time.Time{}, fmt.Sprintf("invalid date format %q", s)
	}

	parsed, err := time.ParseInLocation("2006/1/2", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Sprintf("invalid date format %q", s)
	}

	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), importHour, 0, 0, 0, time.Local), ""
}

func parseRequiredInt(s, field string) (int, string) {
	if s == "" {
		return 0, fmt.Sprintf("missing %s value", field)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Sprintf("invalid %s value %q", field, s)
	}
	return v, ""
}
