package main

import (
	"fmt"
	"time"

	"github.com/binghuan/bptrack/internal/cli"
	"github.com/binghuan/bptrack/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new blood-pressure measurement",
		Long: `Record a new blood-pressure measurement.

Examples:
  # Minimal reading
  bptrack add --systolic 120 --diastolic 80

  # Full reading with heart rate, notes, and an explicit date
  bptrack add -s 135 -d 88 --heart-rate 72 --notes "after coffee" --date 2024/01/15`,
		RunE: runAdd,
	}

	cmd.Flags().IntP("systolic", "s", 0, "systolic pressure in mmHg (required)")
	cmd.Flags().IntP("diastolic", "d", 0, "diastolic pressure in mmHg (required)")
	cmd.Flags().Int("heart-rate", 0, "heart rate in bpm (optional)")
	cmd.Flags().String("notes", "", "free-form notes (optional)")
	cmd.Flags().String("date", "", "measurement date as yyyy/MM/dd (default: now)")
	_ = cmd.MarkFlagRequired("systolic")
	_ = cmd.MarkFlagRequired("diastolic")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	systolic, _ := cmd.Flags().GetInt("systolic")
	diastolic, _ := cmd.Flags().GetInt("diastolic")
	heartRate, _ := cmd.Flags().GetInt("heart-rate")
	notes, _ := cmd.Flags().GetString("notes")
	date, _ := cmd.Flags().GetString("date")

	record := model.Record{
		Systolic:  systolic,
		Diastolic: diastolic,
		Notes:     notes,
		Timestamp: time.Now(),
	}
	if heartRate > 0 {
		record.HeartRate = &heartRate
	}
	if date != "" {
		day, err := parseDayFlag(date)
		if err != nil {
			return err
		}
		now := time.Now()
		record.Timestamp = time.Date(day.Year(), day.Month(), day.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, time.Local)
	}

	repo, cleanup, err := initRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := repo.SaveRecord(ctx, &record); err != nil {
		return err
	}

	category := record.Category()
	fmt.Printf("Recorded %d/%d mmHg on %s: %s\n",
		record.Systolic,
		record.Diastolic,
		record.Timestamp.Format(cliDateLayout),
		cli.CategoryStyle(category).Render(category.String()))

	return nil
}
