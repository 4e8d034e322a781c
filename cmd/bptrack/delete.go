package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete measurements by ID, by date, or all of them",
		Long: `Delete measurements.

Examples:
  bptrack delete 12             # delete one record by ID
  bptrack delete --date 2024/01/15   # delete every record on that day
  bptrack delete --all          # delete the whole history`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().String("date", "", "delete every record on this calendar date (yyyy/MM/dd)")
	cmd.Flags().Bool("all", false, "delete every record")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	date, _ := cmd.Flags().GetString("date")
	all, _ := cmd.Flags().GetBool("all")

	selectors := 0
	if len(args) == 1 {
		selectors++
	}
	if date != "" {
		selectors++
	}
	if all {
		selectors++
	}
	if selectors != 1 {
		return fmt.Errorf("specify exactly one of: a record ID, --date, or --all")
	}

	repo, cleanup, err := initRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	switch {
	case all:
		if err := repo.DeleteAllRecords(ctx); err != nil {
			return err
		}
		fmt.Println("Deleted all records")

	case date != "":
		day, err := parseDayFlag(date)
		if err != nil {
			return err
		}
		deleted, err := repo.DeleteRecordsByDay(ctx, day)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d record(s) on %s\n", deleted, date)

	default:
		id, err := parseRecordID(args[0])
		if err != nil {
			return err
		}
		if err := repo.DeleteRecord(ctx, id); err != nil {
			return err
		}
		fmt.Printf("Deleted record %d\n", id)
	}

	return nil
}
