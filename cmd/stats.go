package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show credential table statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats()
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}

	fmt.Printf("Total entries: %d\n", stats.Total)
	fmt.Printf("Unique usernames: %d\n", stats.UniqueUsers)
	if stats.LastUpdate != nil {
		fmt.Printf("Last update: %s\n", stats.LastUpdate.Format(time.RFC3339))
	} else {
		fmt.Printf("Last update: never\n")
	}
	return nil
}
