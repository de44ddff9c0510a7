package main

import (
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove [paths...]",
	Short: "Strip embedded index blocks",
	Long: `Remove the index block from each file, restoring the content that
surrounds it. Files without an index block are counted as skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idx, store, err := buildIndexer(cfg, true)
	if err != nil {
		return err
	}
	defer closeStore(store)

	files, err := expandPaths(idx, cfg, args)
	if err != nil {
		return err
	}

	stats, err := idx.RemoveAll(cmd.Context(), files)
	if err != nil {
		return err
	}

	if printOutcomes("remove", stats) {
		closeStore(store)
		os.Exit(1)
	}
	return nil
}
