package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/binghuan/bptrack/internal/model"
	"github.com/binghuan/bptrack/internal/repository"
)

// entryDateLayout is the date format of the entry dialog, matching the CSV
// export format.
const entryDateLayout = "2006/01/02"

// Container holds the UI state and applies intents against the repository.
// Intents are processed one at a time; there are no parallel workers
// contending over the state.
type Container struct {
	repo    *repository.Repository
	updates chan State
	state   State
	mu      sync.Mutex
}

// NewContainer creates a state container over the repository.
func NewContainer(repo *repository.Repository) *Container {
	return &Container{
		repo:    repo,
		updates: make(chan State, 1),
	}
}

// Start subscribes the container to the store's live record stream for the
// lifetime of ctx. Every committed mutation re-emits the full list, which
// the container folds into state and republishes.
func (c *Container) Start(ctx context.Context) error {
	stream, err := c.repo.WatchRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to record stream: %w", err)
	}

	go func() {
		for records := range stream {
			c.mu.Lock()
			c.state.Records = rowsFromRecords(records)
			c.state.Loading = false
			c.publishLocked()
			c.mu.Unlock()
		}
	}()

	return nil
}

// Updates returns the state stream. The channel is buffered one deep with
// latest-wins replacement; a consumer that falls behind sees the newest
// state, not every intermediate one.
func (c *Container) Updates() <-chan State {
	return c.updates
}

// State returns a copy of the current state.
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies a single intent. Failures never escape as errors; they
// populate State.Err for the presentation to display and acknowledge.
func (c *Container) Dispatch(ctx context.Context, intent Intent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch intent := intent.(type) {
	case LoadRecords:
		c.loadRecords(ctx)
	case ShowEntry:
		c.showEntry(ctx, intent.RecordID)
	case HideEntry:
		c.state.EntryVisible = false
		c.state.Entry = Entry{}
	case SetField:
		c.setField(intent.Field, intent.Value)
	case SubmitEntry:
		c.submitEntry(ctx)
	case DeleteRecord:
		if err := c.repo.DeleteRecord(ctx, intent.ID); err != nil {
			c.state.Err = fmt.Sprintf("failed to delete record: %v", err)
		}
	case ImportCSV:
		c.importCSV(ctx, intent.Text)
	case ExportCSV:
		c.exportCSV(ctx)
	case AcknowledgeError:
		c.state.Err = ""
	default:
		// The marker method seals the union; a new variant without a case
		// here is a programming error.
		panic(fmt.Sprintf("unhandled intent type %T", intent))
	}

	c.publishLocked()
}

func (c *Container) loadRecords(ctx context.Context) {
	c.state.Loading = true
	records, err := c.repo.GetRecords(ctx)
	c.state.Loading = false
	if err != nil {
		c.state.Err = fmt.Sprintf("failed to load records: %v", err)
		return
	}
	c.state.Records = rowsFromRecords(records)
}

func (c *Container) showEntry(ctx context.Context, recordID int64) {
	entry := Entry{}

	if recordID > 0 {
		record, err := c.repo.GetRecord(ctx, recordID)
		if err != nil {
			c.state.Err = fmt.Sprintf("failed to load record %d: %v", recordID, err)
			return
		}
		entry = Entry{
			Date:      record.Timestamp.Format(entryDateLayout),
			Systolic:  strconv.Itoa(record.Systolic),
			Diastolic: strconv.Itoa(record.Diastolic),
			Notes:     record.Notes,
			EditingID: record.ID,
		}
		if record.HeartRate != nil {
			entry.HeartRate = strconv.Itoa(*record.HeartRate)
		}
	}

	c.state.Entry = entry
	c.state.EntryVisible = true
}

func (c *Container) setField(field EntryField, value string) {
	switch field {
	case FieldDate:
		c.state.Entry.Date = value
	case FieldSystolic:
		c.state.Entry.Systolic = value
	case FieldDiastolic:
		c.state.Entry.Diastolic = value
	case FieldHeartRate:
		c.state.Entry.HeartRate = value
	case FieldNotes:
		c.state.Entry.Notes = value
	}
}

func (c *Container) submitEntry(ctx context.Context) {
	record, err := c.state.Entry.toRecord()
	if err != nil {
		c.state.Err = err.Error()
		return
	}

	if record.ID > 0 {
		err = c.repo.UpdateRecord(ctx, record)
	} else {
		err = c.repo.SaveRecord(ctx, record)
	}
	if err != nil {
		c.state.Err = fmt.Sprintf("failed to save record: %v", err)
		return
	}

	c.state.EntryVisible = false
	c.state.Entry = Entry{}
}

func (c *Container) importCSV(ctx context.Context, text string) {
	c.state.Importing = true
	_, err := c.repo.ImportCSV(ctx, text)
	c.state.Importing = false
	if err != nil {
		c.state.Err = err.Error()
	}
}

func (c *Container) exportCSV(ctx context.Context) {
	c.state.Exporting = true
	payload, err := c.repo.ExportCSV(ctx)
	c.state.Exporting = false
	if err != nil {
		c.state.Err = fmt.Sprintf("failed to export records: %v", err)
		return
	}
	c.state.ExportPayload = payload
}

// publishLocked pushes the current state to the updates channel, replacing
// any pending unread state. Callers must hold c.mu.
func (c *Container) publishLocked() {
	select {
	case c.updates <- c.state:
	default:
		select {
		case <-c.updates:
		default:
		}
		select {
		case c.updates <- c.state:
		default:
		}
	}
}

// toRecord validates the form inputs and builds the record to persist.
func (e Entry) toRecord() (*model.Record, error) {
	systolic, err := strconv.Atoi(strings.TrimSpace(e.Systolic))
	if err != nil {
		return nil, fmt.Errorf("invalid systolic value %q", e.Systolic)
	}
	diastolic, err := strconv.Atoi(strings.TrimSpace(e.Diastolic))
	if err != nil {
		return nil, fmt.Errorf("invalid diastolic value %q", e.Diastolic)
	}

	record := &model.Record{
		ID:        e.EditingID,
		Systolic:  systolic,
		Diastolic: diastolic,
		Notes:     strings.TrimSpace(e.Notes),
	}

	if hr := strings.TrimSpace(e.HeartRate); hr != "" {
		v, err := strconv.Atoi(hr)
		if err != nil {
			return nil, fmt.Errorf("invalid heart rate value %q", e.HeartRate)
		}
		record.HeartRate = &v
	}

	now := time.Now()
	if date := strings.TrimSpace(e.Date); date != "" {
		parsed, err := time.ParseInLocation(entryDateLayout, date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q, expected yyyy/MM/dd", e.Date)
		}
		// Keep the current time-of-day so same-day entries stay ordered.
		record.Timestamp = time.Date(parsed.Year(), parsed.Month(), parsed.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, time.Local)
	} else {
		record.Timestamp = now
	}

	return record, nil
}
