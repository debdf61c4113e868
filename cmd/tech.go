package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnomegl/ulpdb/internal/flags"
	"github.com/gnomegl/ulpdb/pkg/fileutil"
	"github.com/gnomegl/ulpdb/pkg/output"
	"github.com/gnomegl/ulpdb/pkg/webtech"
)

func writeWebsiteList(sites []webtech.Website) error {
	if err := output.NewWebsiteListWriter(os.Stdout).WriteWebsites(sites); err != nil {
		return fmt.Errorf("failed to write websites: %w", err)
	}
	return nil
}

var techFlags flags.CommonFlags

var techCmd = &cobra.Command{
	Use:   "tech",
	Short: "Manage website/technology association data",
}

var techUploadCmd = &cobra.Command{
	Use:   "upload [input-file]",
	Short: "Load website/technology associations from a list file",
	Long: `Load website/technology associations from a list file.
Each line is a URL optionally followed by a bracketed technology list:

  example.com [nginx, PHP, WordPress]

Websites, technologies, and links are deduplicated on insert. The whole
upload is one transaction: it either applies completely or not at all.`,
	Args: cobra.ExactArgs(1),
	RunE: runTechUpload,
}

var techSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search websites by URL or technology substring",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTechSearch,
}

var techListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known technologies",
	Args:  cobra.NoArgs,
	RunE:  runTechList,
}

var techDeleteCmd = &cobra.Command{
	Use:   "delete [url]",
	Short: "Delete one website, or all website data with no argument",
	Long: `Delete one website and its technology links by exact URL. Without
an argument all websites and links are removed; technology names are kept
for reuse by later uploads.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTechDelete,
}

func init() {
	flags.AddTechSearchFlags(techSearchCmd, &techFlags)

	techCmd.AddCommand(techUploadCmd)
	techCmd.AddCommand(techSearchCmd)
	techCmd.AddCommand(techListCmd)
	techCmd.AddCommand(techDeleteCmd)
	rootCmd.AddCommand(techCmd)
}

func runTechUpload(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if !fileutil.FileExists(inputPath) {
		return fmt.Errorf("input file '%s' not found", inputPath)
	}

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", inputPath, err)
	}

	sites := webtech.Parse(content)
	if len(sites) == 0 {
		return fmt.Errorf("no valid data found in %s", inputPath)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.AddWebsites(sites); err != nil {
		return fmt.Errorf("failed to store websites: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Stored websites: %d\n", len(sites))
	return nil
}

func runTechSearch(cmd *cobra.Command, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sites, err := st.SearchWebsites(query, techFlags.ByTechnology)
	if err != nil {
		return fmt.Errorf("failed to search websites: %w", err)
	}

	if err := writeWebsiteList(sites); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "Matched websites: %d\n", len(sites))
	}
	return nil
}

func runTechList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	techs, err := st.AllTechnologies()
	if err != nil {
		return fmt.Errorf("failed to list technologies: %w", err)
	}
	for _, tech := range techs {
		fmt.Println(tech)
	}
	return nil
}

func runTechDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 0 {
		if err := st.DeleteAllWebsiteData(); err != nil {
			return fmt.Errorf("failed to delete website data: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Deleted all website data (technologies kept)\n")
		return nil
	}

	deleted, err := st.DeleteWebsite(args[0])
	if err != nil {
		return fmt.Errorf("failed to delete website: %w", err)
	}
	if !deleted {
		return fmt.Errorf("website '%s' not found", args[0])
	}
	fmt.Fprintf(os.Stderr, "Deleted website: %s\n", args[0])
	return nil
}
