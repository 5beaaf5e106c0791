// Copyright Halflink, 2026. All rights reserved.

// Package main is the entry point for the parldocs CLI: search the
// overheid.nl SRU repository for parliamentary documents, export the
// metadata, download the PDFs and highlight the search terms in them.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd runs the full pipeline: search, CSV export, PDF download and
// highlighting. The RIS export lives on its own subcommand.
var rootCmd = &cobra.Command{
	Use:   "parldocs",
	Short: "Zoek parlementaire documenten via overheid.nl SRU en exporteer naar CSV",
	Long: `parldocs queries the overheid.nl SRU endpoint for Dutch parliamentary
publications matching one or more search terms, writes the metadata of all
matches to a CSV file, downloads the referenced PDFs and saves a copy of
each with the search terms highlighted.

A run always exits 0 when the search and CSV export succeeded, even if
individual PDF downloads failed; those failures are logged and skipped.`,
	SilenceUsage: true,
	RunE:         runPipeline,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./parldocs.yaml or ~/.config/parldocs/config.yaml)")
	rootCmd.PersistentFlags().String("log", "INFO", "log level (DEBUG, INFO, WARNING, ERROR)")

	rootCmd.Flags().StringSlice("search-terms", nil, "one or more search terms (default: doorstroomtoets, doorstroomtoetsen)")
	rootCmd.Flags().String("csv", "", "CSV output path (default: parlementaire_documenten.csv)")
	rootCmd.Flags().String("ministry", "", "authority scope (default: Ministerie van Onderwijs, Cultuur en Wetenschap; \"none\" disables)")
	rootCmd.Flags().Int("max-records", 0, "cap on the number of records fetched (0 = all)")
	rootCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 15s)")
	rootCmd.Flags().Bool("no-download", false, "skip the PDF download and highlight stage")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("parldocs")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "parldocs"))
		}
	}

	viper.SetEnvPrefix("PARLDOCS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
