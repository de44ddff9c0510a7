package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"codemap/pkg/types"
)

var readCmd = &cobra.Command{
	Use:   "read <file> <section>",
	Short: "Print one section's lines",
	Long: `Resolve the file's sections and print the named section's text to
stdout. Unknown section names exit with status 1 and list the sections
the file actually has.`,
	Args: cobra.ExactArgs(2),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	idx, _, err := buildIndexer(cfg, false)
	if err != nil {
		return err
	}

	content, err := idx.ReadSection(args[0], args[1])
	if err != nil {
		var notFound *types.SectionNotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "codemap: section %q not found in %s\n", notFound.Name, args[0])
			if len(notFound.Available) > 0 {
				fmt.Fprintf(os.Stderr, "available sections: %s\n", strings.Join(notFound.Available, ", "))
			}
			os.Exit(1)
		}
		return err
	}

	fmt.Println(content.Text)
	return nil
}
