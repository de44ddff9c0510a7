package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codemap/internal/storage"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status [file]",
	Short: "Show recorded run history",
	Long: `Show recent batch runs from the history database, or the last run
that touched a specific file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().IntVar(&statusLimit, "limit", storage.DefaultRecentLimit, "Number of runs to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.History.Enabled {
		fmt.Println("run history is disabled")
		return nil
	}

	store, err := storage.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}
	defer closeStore(store)

	ctx := cmd.Context()

	if len(args) == 1 {
		run, file, lerr := store.LastRunForFile(ctx, args[0])
		if errors.Is(lerr, storage.ErrNotFound) {
			fmt.Printf("no recorded run touches %s\n", args[0])
			return nil
		}
		if lerr != nil {
			return lerr
		}

		fmt.Println(args[0])
		fmt.Printf("  run:     %s (%s, %s)\n", run.ID, run.Operation, run.StartedAt.Local().Format(time.RFC3339))
		fmt.Printf("  outcome: %s\n", file.Outcome)
		if file.Detail != "" {
			fmt.Printf("  detail:  %s\n", file.Detail)
		}
		return nil
	}

	runs, err := store.ListRecentRuns(ctx, statusLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	fmt.Printf("%-10s %-36s %-20s %10s %6s %6s %6s\n",
		"OPERATION", "ID", "STARTED", "DURATION", "OK", "SKIP", "FAIL")
	for _, run := range runs {
		fmt.Printf("%-10s %-36s %-20s %8dms %6d %6d %6d\n",
			run.Operation, run.ID, run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration.Milliseconds(), run.Succeeded, run.Skipped, run.Failed)
	}
	return nil
}
