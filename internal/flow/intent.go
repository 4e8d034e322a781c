package flow

// Intent is the closed set of user actions the container accepts. The
// unexported marker method keeps the union sealed to this package;
// Dispatch matches exhaustively over the variants.
type Intent interface {
	isIntent()
}

// LoadRecords reloads the record list from the repository.
type LoadRecords struct{}

// ShowEntry opens the add/edit dialog. A zero RecordID starts a blank
// entry; otherwise the dialog is pre-filled from the stored record.
type ShowEntry struct {
	RecordID int64
}

// HideEntry closes the add/edit dialog, discarding its inputs.
type HideEntry struct{}

// SetField updates a single form input of the open entry dialog.
type SetField struct {
	Field EntryField
	Value string
}

// SubmitEntry validates the dialog inputs and saves a new record or
// replaces the edited one.
type SubmitEntry struct{}

// DeleteRecord removes a stored record.
type DeleteRecord struct {
	ID int64
}

// ImportCSV runs a CSV import over the given file content.
type ImportCSV struct {
	Text string
}

// ExportCSV serializes the current records into State.ExportPayload.
type ExportCSV struct{}

// AcknowledgeError clears the user-visible error after display.
type AcknowledgeError struct{}

func (LoadRecords) isIntent()      {}
func (ShowEntry) isIntent()        {}
func (HideEntry) isIntent()        {}
func (SetField) isIntent()         {}
func (SubmitEntry) isIntent()      {}
func (DeleteRecord) isIntent()     {}
func (ImportCSV) isIntent()        {}
func (ExportCSV) isIntent()        {}
func (AcknowledgeError) isIntent() {}

// EntryField names a form input of the entry dialog.
type EntryField int

const (
	FieldDate EntryField = iota
	FieldSystolic
	FieldDiastolic
	FieldHeartRate
	FieldNotes
)
