package tui

import (
	"context"
	"fmt"

	"github.com/binghuan/bptrack/internal/flow"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the record screen over a state container and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, container *flow.Container) error {
	if err := container.Start(ctx); err != nil {
		return err
	}

	program := tea.NewProgram(
		New(ctx, container),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("record screen failed: %w", err)
	}
	return nil
}
