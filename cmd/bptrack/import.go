package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/binghuan/bptrack/internal/common"
	"github.com/binghuan/bptrack/internal/csvio"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import measurements from CSV files",
		Long: `Import blood-pressure measurements from CSV files.

Each imported record replaces any existing record on the same calendar
date. A file with any invalid line is rejected as a whole.

Examples:
  # Import a single file
  bptrack import ~/Downloads/bp_2024.csv

  # Import everything exported from the phone
  bptrack import ~/Downloads/bp_*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "parse and validate without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing CSV files",
		"file_count", len(allFiles),
		"dry_run", dryRun)

	repo, cleanup, err := initRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetDescription("importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	imported := 0
	replaced := int64(0)
	failures := 0

	for _, filePath := range allFiles {
		content, err := os.ReadFile(filePath) // #nosec G304 -- user-supplied import path
		if err != nil {
			slog.Error("Failed to read file", "file", filePath, "error", err)
			failures++
			_ = bar.Add(1)
			continue
		}

		if dryRun {
			records, err := csvio.Import(string(content))
			if err != nil {
				slog.Error("File failed validation", "file", filepath.Base(filePath), "error", err)
				failures++
			} else {
				slog.Info("File validated", "file", filepath.Base(filePath), "records", len(records))
				imported += len(records)
			}
			_ = bar.Add(1)
			continue
		}

		summary, err := repo.ImportCSV(ctx, string(content))
		if err != nil {
			slog.Error("Failed to import file", "file", filepath.Base(filePath), "error", err)
			failures++
			_ = bar.Add(1)
			continue
		}

		imported += summary.Imported
		replaced += summary.Replaced
		_ = bar.Add(1)
	}

	_ = bar.Finish()

	if dryRun {
		fmt.Printf("Dry run: %d record(s) across %d file(s), %d file(s) failed validation\n",
			imported, len(allFiles), failures)
	} else {
		fmt.Printf("Imported %d record(s), replaced %d same-day record(s), %d file(s) failed\n",
			imported, replaced, failures)
	}

	if failures > 0 {
		return common.NewUserError(fmt.Sprintf("%d file(s) could not be imported", failures), nil)
	}
	return nil
}
