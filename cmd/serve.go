package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnomegl/ulpdb/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the database over an HTTP API",
	Long: `Serve the database over an HTTP API. Endpoints mirror the CLI:
credential listing/search/ingest/delete under /api/ulp, website and
technology data under /api/websites and /api/technologies.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :4000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger()

	addr := serveAddr
	if addr == "" {
		addr = viper.GetString("addr")
	}

	return server.New(st, log).Run(addr)
}
