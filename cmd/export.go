package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnomegl/ulpdb/internal/flags"
	"github.com/gnomegl/ulpdb/pkg/output"
)

var (
	exportFlags    flags.CommonFlags
	exportWebsites bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the credential table or the website list",
	Long: `Export the credential table or the website list.
Credentials can be written as txt (url:username:password lines), csv, or
ndjson. With --websites the website/technology associations are written
as "url [tech1, tech2]" lines instead.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	flags.AddFormatFlags(exportCmd, &exportFlags)
	exportCmd.Flags().BoolVar(&exportWebsites, "websites", false, "Export website/technology data instead of credentials")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	out, closeOut, err := openOutput(exportFlags.Output)
	if err != nil {
		return err
	}
	defer closeOut()

	if exportWebsites {
		sites, err := st.AllWebsites()
		if err != nil {
			return fmt.Errorf("failed to load websites: %w", err)
		}
		if err := output.NewWebsiteListWriter(out).WriteWebsites(sites); err != nil {
			return fmt.Errorf("failed to write websites: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Exported websites: %d\n", len(sites))
		}
		return nil
	}

	entries, err := st.AllEntries()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	writer, err := output.NewEntryWriter(out, exportFlags.Format)
	if err != nil {
		return err
	}
	if err := writer.WriteEntries(entries); err != nil {
		return fmt.Errorf("failed to write entries: %w", err)
	}

	if !quiet {
		fmt.Fprintf(os.Stderr, "Exported entries: %d\n", len(entries))
	}
	return nil
}
