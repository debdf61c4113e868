package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gnomegl/ulpdb/pkg/store"
)

var (
	cfgFile string
	dbPath  string
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "ulpdb",
	Short: "ULPDB - ingest, search, and manage url:login:password credential dumps",
	Long: `ULPDB ingests loosely-structured credential dumps and keeps them in an
embedded sqlite database:
- Parses JSON arrays, colon-delimited text, and CSV dumps
- Validates and canonicalizes URLs, cleans usernames and passwords
- Preserves pre-hashed/encoded secrets byte-for-byte
- Deduplicates url+username pairs within each uploaded batch
- Stores website/technology association lists with substring search
- Serves the database over a small HTTP API`,
	Version: "1.0.0",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ulpdb.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database file (default ulp.sqlite)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".ulpdb")
	}

	viper.SetEnvPrefix("ulpdb")
	viper.AutomaticEnv()
	viper.SetDefault("db", "ulp.sqlite")
	viper.SetDefault("addr", ":4000")

	if err := viper.ReadInConfig(); err == nil && !quiet {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// openStore resolves the database path (flag wins over config/env) and
// opens the store.
func openStore() (*store.Store, error) {
	path := dbPath
	if path == "" {
		path = viper.GetString("db")
	}
	return store.Open(path)
}
