package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"codemap/internal/config"
	"codemap/internal/indexer"
	"codemap/internal/language"
	"codemap/internal/storage"
)

var (
	cfgFile       string
	workersFlag   int
	toleranceFlag int
	historyDBFlag string
	noHistoryFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "codemap",
	Short: "codemap - embedded section indexes for source files",
	Long: `codemap resolves named line-range sections for source files and maintains
an embedded index block at the top of each file. Sections come from a
companion document, explicit region markers, or automatic detection, with
a whole-file fallback so every supported file always has an index.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"codemap {{.Version}} (built %s, sqlite %s/%s)\n",
		buildTime, storage.BuildMode, storage.DriverName))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: .codemap.yaml in . or $HOME)")
	flags.IntVar(&workersFlag, "workers", 0, "Concurrent workers for batch operations (default: CPU count)")
	flags.IntVar(&toleranceFlag, "drift-tolerance", -1, "Allowed line drift before verify reports an issue")
	flags.StringVar(&historyDBFlag, "history-db", "", "Path to the run history database")
	flags.BoolVar(&noHistoryFlag, "no-history", false, "Disable run history recording")
}

// loadConfig loads the configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := rootCmd.PersistentFlags()
	if flags.Changed("workers") {
		cfg.Workers = workersFlag
	}
	if flags.Changed("drift-tolerance") {
		cfg.DriftTolerance = toleranceFlag
	}
	if flags.Changed("history-db") {
		cfg.History.Enabled = true
		cfg.History.Path = historyDBFlag
	}
	if noHistoryFlag {
		cfg.History.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildIndexer assembles the indexer from the configuration. When record
// is true and history is enabled, batch runs are written to the history
// database; the caller owns the returned store.
func buildIndexer(cfg *config.Config, record bool) (*indexer.Indexer, storage.RunStore, error) {
	registry := language.NewRegistry()
	if cfg.ProfilesPath != "" {
		if err := registry.LoadOverlay(cfg.ProfilesPath); err != nil {
			return nil, nil, fmt.Errorf("failed to load language profiles: %w", err)
		}
	}

	var store storage.RunStore
	if record && cfg.History.Enabled {
		s, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open run history: %w", err)
		}
		store = s
	}

	idx := indexer.New(registry, &indexer.Config{
		Workers:        cfg.Workers,
		DriftTolerance: cfg.DriftTolerance,
		Store:          store,
	})
	return idx, store, nil
}

func closeStore(store storage.RunStore) {
	if store != nil {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "codemap: failed to close run history: %v\n", err)
		}
	}
}

// expandPaths turns command arguments into a flat file list. Directories
// are walked for supported files; everything else is passed through so
// the batch can account for it.
func expandPaths(idx *indexer.Indexer, cfg *config.Config, args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			found, derr := idx.Discover(arg, cfg.Exclude)
			if derr != nil {
				return nil, derr
			}
			files = append(files, found...)
			continue
		}

		// Expand glob patterns that the shell did not
		if matches, gerr := filepath.Glob(arg); gerr == nil && len(matches) > 0 {
			files = append(files, matches...)
			continue
		}

		files = append(files, arg)
	}
	return files, nil
}

// printOutcomes writes one line per file followed by a summary, and
// reports whether any file failed.
func printOutcomes(operation string, stats *indexer.Statistics) bool {
	for _, file := range stats.Files {
		switch file.Outcome {
		case storage.OutcomeSucceeded:
			fmt.Printf("  ok    %s\n", file.FilePath)
		case storage.OutcomeSkipped:
			fmt.Printf("  skip  %s (%s)\n", file.FilePath, file.Detail)
		default:
			fmt.Printf("  fail  %s: %s\n", file.FilePath, file.Detail)
		}
	}

	fmt.Printf("%s: %d succeeded, %d skipped, %d failed (%dms)\n",
		operation, stats.Succeeded, stats.Skipped, stats.Failed, stats.Duration.Milliseconds())
	return stats.Failed > 0
}
