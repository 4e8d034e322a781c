package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recorded measurement",
		Long: `Edit a recorded measurement. Only the supplied flags change; the edit
is stored as a full replacement of the record.

Examples:
  bptrack edit 12 --systolic 128
  bptrack edit 12 --notes "" --heart-rate 0   # clear optional fields`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().IntP("systolic", "s", 0, "new systolic pressure in mmHg")
	cmd.Flags().IntP("diastolic", "d", 0, "new diastolic pressure in mmHg")
	cmd.Flags().Int("heart-rate", 0, "new heart rate in bpm (0 clears it)")
	cmd.Flags().String("notes", "", "new notes (empty clears them)")
	cmd.Flags().String("date", "", "new measurement date as yyyy/MM/dd")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	repo, cleanup, err := initRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	record, err := repo.GetRecord(ctx, id)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("systolic") {
		record.Systolic, _ = cmd.Flags().GetInt("systolic")
	}
	if cmd.Flags().Changed("diastolic") {
		record.Diastolic, _ = cmd.Flags().GetInt("diastolic")
	}
	if cmd.Flags().Changed("heart-rate") {
		hr, _ := cmd.Flags().GetInt("heart-rate")
		if hr > 0 {
			record.HeartRate = &hr
		} else {
			record.HeartRate = nil
		}
	}
	if cmd.Flags().Changed("notes") {
		record.Notes, _ = cmd.Flags().GetString("notes")
	}
	if cmd.Flags().Changed("date") {
		value, _ := cmd.Flags().GetString("date")
		day, err := parseDayFlag(value)
		if err != nil {
			return err
		}
		old := record.Timestamp
		record.Timestamp = time.Date(day.Year(), day.Month(), day.Day(),
			old.Hour(), old.Minute(), old.Second(), 0, time.Local)
	}

	if err := repo.UpdateRecord(ctx, record); err != nil {
		return err
	}

	category := record.Category()
	fmt.Printf("Updated record %d: %d/%d mmHg (%s)\n",
		record.ID, record.Systolic, record.Diastolic, category.String())

	return nil
}
