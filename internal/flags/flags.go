package flags

import "github.com/spf13/cobra"

type CommonFlags struct {
	Field        string
	Format       string
	Output       string
	ByTechnology bool
	DryRun       bool
	ShowInvalid  bool
}

func AddSearchFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().StringVarP(&flags.Field, "field", "f", "all", "Field to search (all, url, username, password, notes, id)")
}

func AddFormatFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().StringVar(&flags.Format, "format", "txt", "Output format (txt, csv, ndjson)")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default: stdout)")
}

func AddTechSearchFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().BoolVarP(&flags.ByTechnology, "by-technology", "t", false, "Match against technology names instead of URLs")
}

func AddIngestFlags(cmd *cobra.Command, flags *CommonFlags) {
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Extract and report without writing to the database")
	cmd.Flags().BoolVar(&flags.ShowInvalid, "show-invalid", false, "Print the rejection reason for every invalid record")
}
