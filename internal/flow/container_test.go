package flow

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/binghuan/bptrack/internal/model"
	"github.com/binghuan/bptrack/internal/repository"
	"github.com/binghuan/bptrack/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T) *Container {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "bptrack.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	return NewContainer(repository.New(store))
}

func fillEntry(ctx context.Context, c *Container, date, systolic, diastolic, heartRate, notes string) {
	c.Dispatch(ctx, ShowEntry{})
	c.Dispatch(ctx, SetField{Field: FieldDate, Value: date})
	c.Dispatch(ctx, SetField{Field: FieldSystolic, Value: systolic})
	c.Dispatch(ctx, SetField{Field: FieldDiastolic, Value: diastolic})
	c.Dispatch(ctx, SetField{Field: FieldHeartRate, Value: heartRate})
	c.Dispatch(ctx, SetField{Field: FieldNotes, Value: notes})
}

func TestContainer_SubmitEntryCreatesRecord(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	fillEntry(ctx, c, "2024/01/15", "122", "81", "68", "morning")
	c.Dispatch(ctx, SubmitEntry{})

	state := c.State()
	assert.Empty(t, state.Err)
	assert.False(t, state.EntryVisible, "dialog closes on successful submit")

	c.Dispatch(ctx, LoadRecords{})
	state = c.State()
	require.Len(t, state.Records, 1)

	row := state.Records[0]
	assert.Equal(t, 122, row.Record.Systolic)
	assert.Equal(t, model.CategoryElevated, row.Category)
	assert.Equal(t, model.TrendFirstRecord, row.Trend)
	assert.Equal(t, "2024-01-15", row.Record.DayKey())
}

func TestContainer_SubmitEntryValidation(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	fillEntry(ctx, c, "", "not-a-number", "80", "", "")
	c.Dispatch(ctx, SubmitEntry{})

	state := c.State()
	assert.Contains(t, state.Err, "invalid systolic value")
	assert.True(t, state.EntryVisible, "dialog stays open on validation failure")

	c.Dispatch(ctx, AcknowledgeError{})
	assert.Empty(t, c.State().Err)
}

func TestContainer_EditRecord(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	fillEntry(ctx, c, "2024/01/15", "122", "81", "", "")
	c.Dispatch(ctx, SubmitEntry{})
	c.Dispatch(ctx, LoadRecords{})

	id := c.State().Records[0].Record.ID
	c.Dispatch(ctx, ShowEntry{RecordID: id})

	state := c.State()
	require.True(t, state.EntryVisible)
	assert.Equal(t, "122", state.Entry.Systolic)
	assert.Equal(t, id, state.Entry.EditingID)

	c.Dispatch(ctx, SetField{Field: FieldSystolic, Value: "135"})
	c.Dispatch(ctx, SubmitEntry{})
	c.Dispatch(ctx, LoadRecords{})

	state = c.State()
	require.Len(t, state.Records, 1)
	assert.Equal(t, 135, state.Records[0].Record.Systolic)
	assert.Equal(t, id, state.Records[0].Record.ID, "edit replaces by ID")
}

func TestContainer_DeleteRecord(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	fillEntry(ctx, c, "2024/01/15", "122", "81", "", "")
	c.Dispatch(ctx, SubmitEntry{})
	c.Dispatch(ctx, LoadRecords{})
	id := c.State().Records[0].Record.ID

	c.Dispatch(ctx, DeleteRecord{ID: id})
	c.Dispatch(ctx, LoadRecords{})
	assert.Empty(t, c.State().Records)

	// Deleting again surfaces a user-visible error.
	c.Dispatch(ctx, DeleteRecord{ID: id})
	assert.Contains(t, c.State().Err, "failed to delete record")
}

func TestContainer_ErrorsOverwriteNotAccumulate(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	c.Dispatch(ctx, DeleteRecord{ID: 111})
	first := c.State().Err
	require.NotEmpty(t, first)

	c.Dispatch(ctx, ImportCSV{Text: ""})
	second := c.State().Err
	assert.NotEqual(t, first, second)
	assert.Contains(t, second, "empty")
}

func TestContainer_ImportAndExport(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	c.Dispatch(ctx, ImportCSV{Text: "Date,Systolic,Diastolic,Heartbeat,Notes\n2024/01/15,120,80,75,morning"})
	state := c.State()
	assert.Empty(t, state.Err)
	assert.False(t, state.Importing)

	c.Dispatch(ctx, ExportCSV{})
	state = c.State()
	assert.False(t, state.Exporting)
	assert.Contains(t, state.ExportPayload, "2024/01/15,120,80,75,morning")
}

func TestContainer_StreamRepublishesOnMutation(t *testing.T) {
	c := newTestContainer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, c.Start(ctx))

	fillEntry(ctx, c, "2024/01/15", "122", "81", "", "")
	c.Dispatch(ctx, SubmitEntry{})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case state := <-c.Updates():
			if len(state.Records) == 1 {
				assert.Equal(t, 122, state.Records[0].Record.Systolic)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for stream-driven state update")
		}
	}
}

func TestContainer_HideEntryDiscardsInputs(t *testing.T) {
	c := newTestContainer(t)
	ctx := context.Background()

	fillEntry(ctx, c, "2024/01/15", "122", "81", "", "scratch")
	c.Dispatch(ctx, HideEntry{})

	state := c.State()
	assert.False(t, state.EntryVisible)
	assert.Empty(t, state.Entry.Systolic)
}
