package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gnomegl/ulpdb/internal/flags"
	"github.com/gnomegl/ulpdb/pkg/fileutil"
	"github.com/gnomegl/ulpdb/pkg/store"
	"github.com/gnomegl/ulpdb/pkg/ulp"
)

var ingestFlags flags.CommonFlags

var ingestCmd = &cobra.Command{
	Use:   "ingest [input-file-or-directory]",
	Short: "Extract credentials from a dump file and store them",
	Long: `Extract credentials from a dump file and store them.
Supported inputs: .json (array of objects), .txt (url:username:password
per line), .csv (quoted-field tolerant). Records failing validation are
counted and reported, never stored. Duplicate url+username pairs within
one file keep only the first occurrence.

When given a directory, every non-binary file in it is ingested.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	flags.AddIngestFlags(ingestCmd, &ingestFlags)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if !fileutil.FileExists(inputPath) {
		return fmt.Errorf("input file or directory '%s' not found", inputPath)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	pipeline := ulp.NewPipeline()

	if fileutil.IsDirectory(inputPath) {
		return ingestDirectory(pipeline, st, inputPath)
	}
	return ingestFile(pipeline, st, inputPath)
}

func ingestFile(pipeline *ulp.Pipeline, st *store.Store, inputPath string) error {
	isBinary, err := fileutil.IsBinaryFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to check if file is binary %s: %w", inputPath, err)
	}
	if isBinary {
		return fmt.Errorf("file %s appears to be a binary file, skipping", inputPath)
	}

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", inputPath, err)
	}

	records, report := pipeline.Extract(content, filepath.Base(inputPath))
	reportExtraction(report)

	if ingestFlags.DryRun {
		fmt.Fprintf(os.Stderr, "Dry run: nothing written\n")
		return nil
	}

	persisted, err := st.AddEntries(records)
	if err != nil {
		return fmt.Errorf("failed to store entries: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Persisted entries: %d\n", persisted)

	return nil
}

func ingestDirectory(pipeline *ulp.Pipeline, st *store.Store, inputPath string) error {
	var processed, skipped int

	err := filepath.Walk(inputPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		isBinary, err := fileutil.IsBinaryFile(path)
		if err != nil || isBinary {
			skipped++
			if !quiet {
				fmt.Fprintf(os.Stderr, "Skipping binary file: %s\n", filepath.Base(path))
			}
			return nil
		}

		if err := ingestFile(pipeline, st, path); err != nil {
			skipped++
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return nil
		}
		processed++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to process directory %s: %w", inputPath, err)
	}

	fmt.Fprintf(os.Stderr, "\nDirectory processing complete: %d files processed, %d skipped\n", processed, skipped)
	return nil
}

func reportExtraction(report ulp.Report) {
	fmt.Fprintf(os.Stderr, "Processed %s: %d extracted, %d duplicates, %d invalid\n",
		report.FileName, report.Added, report.Duplicates, report.Invalid)
	if !quiet {
		fmt.Fprintf(os.Stderr, "Took %.3fs (%.0f bytes/s)\n", report.ProcessingTime, report.Speed)
	}
	if ingestFlags.ShowInvalid {
		for _, detail := range report.InvalidDetails {
			fmt.Fprintf(os.Stderr, "  %s\n", detail)
		}
	}
}
