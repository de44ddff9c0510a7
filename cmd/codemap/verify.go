package main

import (
	"os"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [paths...]",
	Short: "Check stored index blocks against current content",
	Long: `Compare each file's stored index block with the sections resolved from
its current content. Reports missing blocks, out-of-range entries,
marker regions absent from the index, and section starts that drifted
beyond the configured tolerance. Exits with status 1 if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
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

	stats, err := idx.VerifyAll(cmd.Context(), files)
	if err != nil {
		return err
	}

	if printOutcomes("verify", stats) {
		closeStore(store)
		os.Exit(1)
	}
	return nil
}
