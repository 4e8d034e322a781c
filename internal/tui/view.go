package tui

import (
	"strings"

	"github.com/binghuan/bptrack/internal/cli"
	"github.com/charmbracelet/bubbles/key"
)

var entryLabels = []string{"Date", "Systolic", "Diastolic", "Heart rate", "Notes"}

// View renders the record screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render("Blood Pressure Records"))
	b.WriteString("\n")

	if m.state.Err != "" {
		b.WriteString(cli.ErrorStyle.Render(m.state.Err))
		b.WriteString("\n\n")
	}

	if m.state.EntryVisible {
		b.WriteString(m.entryView())
	} else {
		b.WriteString(m.listView())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.status)
	}

	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder

	switch {
	case m.state.Loading:
		b.WriteString(cli.SubtleStyle.Render("Loading records..."))
	case len(m.state.Records) == 0:
		b.WriteString(cli.SubtleStyle.Render("No records yet. Press 'a' to add one."))
	default:
		b.WriteString(m.recordList.View())
	}

	b.WriteString("\n")
	b.WriteString(m.helpView.ShortHelpView([]key.Binding{
		m.keymap.Add,
		m.keymap.Edit,
		m.keymap.Delete,
		m.keymap.Export,
		m.keymap.Refresh,
		m.keymap.Quit,
	}))
	return b.String()
}

func (m Model) entryView() string {
	var b strings.Builder

	title := "New Record"
	if m.state.Entry.EditingID > 0 {
		title = "Edit Record"
	}
	b.WriteString(cli.BoldStyle.Render(title))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		label := entryLabels[i]
		if i == m.focusIndex {
			b.WriteString(cli.InfoStyle.Render("> " + label))
		} else {
			b.WriteString(cli.SubtleStyle.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(cli.SubtleStyle.Render("enter save · esc cancel · tab next field"))
	return b.String()
}
