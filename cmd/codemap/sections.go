package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var sectionsFormat string

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Show the resolved section index for a file",
	Long: `Resolve the section index for a file (companion document, explicit
markers, automatic detection, or whole-file fallback) and print it
without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	sectionsCmd.Flags().StringVar(&sectionsFormat, "format", "human", "Output format (human, json)")
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idx, _, err := buildIndexer(cfg, false)
	if err != nil {
		return err
	}

	index, err := idx.Resolve(args[0])
	if err != nil {
		return err
	}

	if sectionsFormat == "json" {
		out, merr := json.MarshalIndent(index, "", "  ")
		if merr != nil {
			return merr
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("%s (%s, %d lines)\n", index.FilePath, index.Language, index.TotalLines)
	if index.CompanionPath != "" {
		fmt.Printf("companion: %s\n", index.CompanionPath)
	}
	fmt.Println()

	fmt.Printf("  %-20s %6s %6s %6s  %s\n", "NAME", "START", "END", "LINES", "SOURCE")
	for _, section := range index.Sections {
		fmt.Printf("  %-20s %6d %6d %6d  %s\n",
			section.Name, section.Start, section.End, section.End-section.Start+1, section.Source)
	}
	return nil
}
