package tui

import (
	"context"
	"os"

	"github.com/binghuan/bptrack/internal/flow"
	tea "github.com/charmbracelet/bubbletea"
)

// stateMsg carries a republished container state into the program.
type stateMsg flow.State

// exportWrittenMsg reports the result of writing an export file.
type exportWrittenMsg struct {
	err  error
	path string
}

// dispatch applies an intent on the container and feeds the resulting state
// back into the program.
func dispatch(ctx context.Context, container *flow.Container, intent flow.Intent) tea.Cmd {
	return func() tea.Msg {
		container.Dispatch(ctx, intent)
		return stateMsg(container.State())
	}
}

// waitForState blocks on the container's update stream so store-driven
// mutations re-render the screen without an explicit refresh.
func waitForState(updates <-chan flow.State) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(state)
	}
}

// writeExport persists the exported CSV payload next to the working
// directory. Obtaining and sharing the file is the shell's job; the codec
// itself stays text-in/text-out.
func writeExport(path, payload string) tea.Cmd {
	return func() tea.Msg {
		err := os.WriteFile(path, []byte(payload), 0600)
		return exportWrittenMsg{path: path, err: err}
	}
}
