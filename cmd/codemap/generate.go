package main

import (
	"os"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Write or refresh embedded index blocks",
	Long: `Resolve sections for each file and write the index block at the top,
replacing any existing block in place. Directory arguments are walked
recursively for supported files. Files that cannot be processed are
skipped or reported as failed; the batch always runs to completion.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
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

	stats, err := idx.GenerateAll(cmd.Context(), files)
	if err != nil {
		return err
	}

	if printOutcomes("generate", stats) {
		closeStore(store)
		os.Exit(1)
	}
	return nil
}
