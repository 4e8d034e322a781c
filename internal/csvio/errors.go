package csvio

import (
	"errors"
	"fmt"
	"strings"
)

// Import errors returned for whole-file problems.
var (
	ErrEmptyFile     = errors.New("csv file is empty")
	ErrInvalidHeader = errors.New("csv header missing required fields (Date, Systolic, Diastolic)")
)

// LineError describes a single failed data line. Line numbers are 1-based
// and count the header, so the first data row is line 2.
type LineError struct {
	Reason string
	Line   int
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ImportError aggregates every failed line of an import. A single failing
// line fails the whole import; no partial record set is returned.
type ImportError struct {
	Lines []LineError
}

func (e *ImportError) Error() string {
	msgs := make([]string, len(e.Lines))
	for i, le := range e.Lines {
		msgs[i] = le.Error()
	}
	return fmt.Sprintf("csv import failed: %s", strings.Join(msgs, "; "))
}
