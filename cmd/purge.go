package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var purgeForce bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every stored credential entry",
	Long: `Delete every stored credential entry. The table is dropped and
recreated so entry ids restart at 1. Website/technology data is untouched;
use "tech delete" for that.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeForce, "force", false, "Skip the confirmation check")
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	if !purgeForce {
		return fmt.Errorf("refusing to delete all entries without --force")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteAllEntries(); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}
	fmt.Fprintf(os.Stderr, "All entries deleted\n")
	return nil
}
