package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export all measurements as CSV",
		Long: `Export all measurements as CSV, newest first. Without a file argument
the CSV is written to stdout.

The export drops the time-of-day of each record; re-importing restores a
fixed noon timestamp.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repo, cleanup, err := initRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	payload, err := repo.ExportCSV(ctx)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		fmt.Print(payload)
		return nil
	}

	if err := os.WriteFile(args[0], []byte(payload), 0600); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	count, err := repo.CountRecords(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d record(s) to %s\n", count, args[0])
	return nil
}
