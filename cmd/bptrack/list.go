package main

import (
	"fmt"
	"strconv"

	"github.com/binghuan/bptrack/internal/cli"
	"github.com/binghuan/bptrack/internal/repository"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded measurements, newest first",
		RunE:  runList,
	}

	cmd.Flags().IntP("limit", "n", 0, "show at most this many records (0 = all)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	repo, cleanup, err := initRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := repo.RecordsWithTrend(ctx)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No records yet. Use 'bptrack add' to record one."))
		return nil
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	fmt.Println(cli.TitleStyle.Render("Blood Pressure Records"))
	header := fmt.Sprintf("%-5s %-17s %-9s %-6s %-6s %-20s %s",
		"ID", "Date", "Sys/Dia", "Pulse", "Trend", "Category", "Notes")
	fmt.Println(cli.TableHeaderStyle.Render(header))

	for _, row := range rows {
		fmt.Println(formatListRow(row))
	}

	return nil
}

// formatListRow renders one record line of the list output.
func formatListRow(row repository.RecordWithTrend) string {
	record := row.Record

	pulse := "-"
	if record.HeartRate != nil {
		pulse = strconv.Itoa(*record.HeartRate)
	}

	category := record.Category()
	return fmt.Sprintf("%-5d %-17s %-9s %-6s %-6s %-20s %s",
		record.ID,
		record.Timestamp.Format("2006/01/02 15:04"),
		fmt.Sprintf("%d/%d", record.Systolic, record.Diastolic),
		pulse,
		cli.TrendGlyph(row.Trend),
		cli.CategoryStyle(category).Render(category.String()),
		cli.SubtleStyle.Render(record.Notes))
}
