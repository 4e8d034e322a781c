package main

import (
	"fmt"

	"github.com/binghuan/bptrack/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			fmt.Printf("Database schema is at version %d\n", storage.ExpectedSchemaVersion)
			return nil
		},
	}
}
