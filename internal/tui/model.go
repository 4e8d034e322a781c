// Package tui renders the record screen. It is a thin presentation layer:
// every user action becomes an intent dispatched to the state container,
// and every view is drawn from the container's republished state.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/binghuan/bptrack/internal/cli"
	"github.com/binghuan/bptrack/internal/flow"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// exportFileName is where the TUI writes CSV exports.
const exportFileName = "bptrack_export.csv"

// entryFieldCount is the number of inputs in the entry form.
const entryFieldCount = 5

// Model holds the record screen state.
type Model struct {
	ctx           context.Context
	container     *flow.Container
	status        string
	inputs        []textinput.Model
	state         flow.State
	recordList    table.Model
	helpView      help.Model
	keymap        KeyMap
	focusIndex    int
	width         int
	height        int
	pendingExport bool
	quitting      bool
}

// New creates the record screen over a started state container.
func New(ctx context.Context, container *flow.Container) Model {
	columns := []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Sys/Dia", Width: 9},
		{Title: "Pulse", Width: 6},
		{Title: "Category", Width: 20},
		{Title: "Trend", Width: 6},
		{Title: "Notes", Width: 24},
	}

	recordList := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	placeholders := []string{"2024/01/15", "120", "80", "70", "optional notes"}
	inputs := make([]textinput.Model, entryFieldCount)
	for i := range inputs {
		input := textinput.New()
		input.Placeholder = placeholders[i]
		input.CharLimit = 64
		inputs[i] = input
	}

	return Model{
		ctx:        ctx,
		container:  container,
		inputs:     inputs,
		recordList: recordList,
		helpView:   help.New(),
		keymap:     DefaultKeyMap(),
	}
}

// Init loads the records and starts pumping container updates.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		dispatch(m.ctx, m.container, flow.LoadRecords{}),
		waitForState(m.container.Updates()),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateMsg:
		m.state = flow.State(msg)
		m.refreshTable()
		m.syncInputs()
		cmds := []tea.Cmd{waitForState(m.container.Updates())}
		if m.pendingExport && m.state.ExportPayload != "" && !m.state.Exporting {
			m.pendingExport = false
			cmds = append(cmds, writeExport(exportFileName, m.state.ExportPayload))
		}
		return m, tea.Batch(cmds...)

	case exportWrittenMsg:
		if msg.err != nil {
			m.status = cli.ErrorStyle.Render(fmt.Sprintf("export failed: %v", msg.err))
		} else {
			m.status = cli.SuccessStyle.Render("exported to " + msg.path)
		}
		return m, nil

	case tea.KeyMsg:
		if m.state.EntryVisible {
			return m.updateEntry(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Add):
		return m, dispatch(m.ctx, m.container, flow.ShowEntry{})

	case key.Matches(msg, m.keymap.Edit):
		if id := m.selectedRecordID(); id > 0 {
			return m, dispatch(m.ctx, m.container, flow.ShowEntry{RecordID: id})
		}
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		if id := m.selectedRecordID(); id > 0 {
			return m, dispatch(m.ctx, m.container, flow.DeleteRecord{ID: id})
		}
		return m, nil

	case key.Matches(msg, m.keymap.Export):
		m.pendingExport = true
		return m, dispatch(m.ctx, m.container, flow.ExportCSV{})

	case key.Matches(msg, m.keymap.Refresh):
		return m, dispatch(m.ctx, m.container, flow.LoadRecords{})
	}

	if m.state.Err != "" {
		// Any other key acknowledges the displayed error.
		return m, dispatch(m.ctx, m.container, flow.AcknowledgeError{})
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

func (m Model) updateEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		return m, dispatch(m.ctx, m.container, flow.HideEntry{})

	case key.Matches(msg, m.keymap.Submit):
		cmds := make([]tea.Cmd, 0, entryFieldCount+1)
		for i, field := range entryFields() {
			cmds = append(cmds, dispatch(m.ctx, m.container, flow.SetField{
				Field: field,
				Value: m.inputs[i].Value(),
			}))
		}
		cmds = append(cmds, dispatch(m.ctx, m.container, flow.SubmitEntry{}))
		return m, tea.Sequence(cmds...)

	case key.Matches(msg, m.keymap.Next):
		m.focusIndex = (m.focusIndex + 1) % entryFieldCount
		m.applyFocus()
		return m, nil

	case key.Matches(msg, m.keymap.Prev):
		m.focusIndex = (m.focusIndex + entryFieldCount - 1) % entryFieldCount
		m.applyFocus()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// refreshTable rebuilds the table rows from the current state.
func (m *Model) refreshTable() {
	rows := make([]table.Row, len(m.state.Records))
	for i, row := range m.state.Records {
		pulse := ""
		if row.Record.HeartRate != nil {
			pulse = strconv.Itoa(*row.Record.HeartRate)
		}
		rows[i] = table.Row{
			row.Record.Timestamp.Format("2006/01/02 15:04"),
			fmt.Sprintf("%d/%d", row.Record.Systolic, row.Record.Diastolic),
			pulse,
			row.Category.String(),
			cli.TrendGlyph(row.Trend),
			row.Record.Notes,
		}
	}
	m.recordList.SetRows(rows)
}

// syncInputs loads the entry form values whenever the dialog opens, so an
// edit starts from the stored record.
func (m *Model) syncInputs() {
	if !m.state.EntryVisible {
		for i := range m.inputs {
			m.inputs[i].Reset()
			m.inputs[i].Blur()
		}
		m.focusIndex = 0
		return
	}

	values := []string{
		m.state.Entry.Date,
		m.state.Entry.Systolic,
		m.state.Entry.Diastolic,
		m.state.Entry.HeartRate,
		m.state.Entry.Notes,
	}
	for i := range m.inputs {
		if m.inputs[i].Value() == "" && values[i] != "" {
			m.inputs[i].SetValue(values[i])
		}
	}
	m.applyFocus()
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.focusIndex {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) selectedRecordID() int64 {
	idx := m.recordList.Cursor()
	if idx < 0 || idx >= len(m.state.Records) {
		return 0
	}
	return m.state.Records[idx].Record.ID
}

// entryFields maps input order to container form fields.
func entryFields() []flow.EntryField {
	return []flow.EntryField{
		flow.FieldDate,
		flow.FieldSystolic,
		flow.FieldDiastolic,
		flow.FieldHeartRate,
		flow.FieldNotes,
	}
}
