package main

import (
	"github.com/binghuan/bptrack/internal/flow"
	"github.com/binghuan/bptrack/internal/tui"
	"github.com/spf13/cobra"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit records interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			repo, cleanup, err := initRepository(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(ctx, flow.NewContainer(repo))
		},
	}
}
