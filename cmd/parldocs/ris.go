// Copyright Halflink, 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Halflink/KamerBrieven/internal/export"
	"github.com/Halflink/KamerBrieven/internal/logging"
	"github.com/Halflink/KamerBrieven/internal/sru"
	"github.com/Halflink/KamerBrieven/pkg/types"
)

// risCmd is the alternate entry point: same search, RIS bibliographic
// output instead of CSV, and no PDF stage.
var risCmd = &cobra.Command{
	Use:   "ris",
	Short: "Export search results in RIS bibliographic format",
	Long: `ris runs the same SRU search as the root command and writes the results
as RIS entries (TY/TI/AU/PY/UR/ID/ER tags) for import into reference
managers. PDFs are not downloaded.`,
	RunE: runRIS,
}

func init() {
	risCmd.Flags().StringSlice("search-terms", nil, "one or more search terms (default: doorstroomtoets, doorstroomtoetsen)")
	risCmd.Flags().String("out", "", "RIS output path (default: parlementaire_documenten.ris)")
	risCmd.Flags().String("ministry", "", "authority scope (default: Ministerie van Onderwijs, Cultuur en Wetenschap; \"none\" disables)")
	risCmd.Flags().Int("max-records", 0, "cap on the number of records fetched (0 = all)")
	risCmd.Flags().Duration("timeout", 0, "per-request HTTP timeout (default 15s)")

	rootCmd.AddCommand(risCmd)
}

func runRIS(cmd *cobra.Command, _ []string) error {
	levelRaw, _ := cmd.Flags().GetString("log")
	level, err := logging.ParseLevel(levelRaw)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(level, searchLogFile, logging.NewRunID())
	if err != nil {
		return err
	}
	defer closeLog()

	terms := searchTerms(cmd)
	cfg := searchConfig(cmd)
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = types.DefaultRISPath
	}

	client := sru.NewClient(cfg, logger)
	records, err := client.FetchAll(cmd.Context(), terms)
	if err != nil {
		logger.Error("search failed", "error", err)
		return fmt.Errorf("search failed: %w", err)
	}

	records, dups := types.Deduplicate(records)
	if dups > 0 {
		logger.Info("removed duplicate records", "duplicates", dups)
	}

	if err := export.WriteRIS(records, outPath); err != nil {
		logger.Error("RIS export failed", "error", err)
		return err
	}
	logger.Info("records saved", "count", len(records), "ris", outPath)
	return nil
}
