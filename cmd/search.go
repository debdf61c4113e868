package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnomegl/ulpdb/internal/flags"
	"github.com/gnomegl/ulpdb/pkg/output"
)

var searchFlags flags.CommonFlags

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored credentials by substring",
	Long: `Search stored credentials by substring. The match is
case-insensitive and runs against one field or all of them. Without a
query every entry is returned, newest first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	flags.AddSearchFlags(searchCmd, &searchFlags)
	flags.AddFormatFlags(searchCmd, &searchFlags)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := st.SearchEntries(query, searchFlags.Field)
	if err != nil {
		return fmt.Errorf("failed to search entries: %w", err)
	}

	out, closeOut, err := openOutput(searchFlags.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	writer, err := output.NewEntryWriter(out, searchFlags.Format)
	if err != nil {
		return err
	}
	if err := writer.WriteEntries(entries); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Matched entries: %d\n", len(entries))
	}
	return nil
}

// openOutput returns stdout for an empty path, a created file otherwise.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	return file, func() { file.Close() }, nil
}
