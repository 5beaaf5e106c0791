// Copyright Halflink, 2026. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Halflink/KamerBrieven/internal/download"
	"github.com/Halflink/KamerBrieven/internal/export"
	"github.com/Halflink/KamerBrieven/internal/highlight"
	"github.com/Halflink/KamerBrieven/internal/logging"
	"github.com/Halflink/KamerBrieven/internal/sru"
	"github.com/Halflink/KamerBrieven/pkg/types"
)

const (
	searchLogFile   = "parldocs.log"
	downloadLogFile = "pdf_downloads.log"
	reportFile      = "run_report.yaml"
)

// searchTerms resolves the term list: flag, then config file, then the
// built-in defaults.
func searchTerms(cmd *cobra.Command) []string {
	if terms, _ := cmd.Flags().GetStringSlice("search-terms"); len(terms) > 0 {
		return terms
	}
	if terms := viper.GetStringSlice("search_terms"); len(terms) > 0 {
		return terms
	}
	return types.DefaultSearchTerms()
}

// searchConfig resolves the SRU client settings from flags and config.
func searchConfig(cmd *cobra.Command) types.SearchConfig {
	cfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   types.DefaultTimeout,
			UserAgent: types.DefaultUserAgent,
		},
		Endpoint: types.DefaultEndpoint,
		Ministry: types.DefaultMinistry,
		PageSize: types.DefaultPageSize,
	}
	if v := viper.GetString("endpoint"); v != "" {
		cfg.Endpoint = v
	}
	if v := viper.GetInt("page_size"); v > 0 {
		cfg.PageSize = v
	}
	if v := viper.GetString("ministry"); v != "" {
		cfg.Ministry = v
	}
	if v, _ := cmd.Flags().GetString("ministry"); v != "" {
		cfg.Ministry = v
	}
	if cfg.Ministry == "none" {
		cfg.Ministry = ""
	}
	if v, _ := cmd.Flags().GetInt("max-records"); v > 0 {
		cfg.MaxRecords = v
	}
	if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
		cfg.Timeout = v
	}
	return cfg
}

// runPipeline executes one full search session: fetch, de-duplicate,
// export CSV, download PDFs and write highlighted copies.
func runPipeline(cmd *cobra.Command, _ []string) error {
	levelRaw, _ := cmd.Flags().GetString("log")
	level, err := logging.ParseLevel(levelRaw)
	if err != nil {
		return err
	}

	runID := logging.NewRunID()
	logger, closeLog, err := logging.New(level, searchLogFile, runID)
	if err != nil {
		return err
	}
	defer closeLog()

	terms := searchTerms(cmd)
	cfg := searchConfig(cmd)
	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath == "" {
		csvPath = types.DefaultCSVPath
	}

	logger.Info("starting search session", "terms", terms, "csv", csvPath)

	report := export.RunReport{
		RunID:     runID,
		StartedAt: time.Now(),
		Terms:     terms,
		Query:     sru.BuildQuery(terms, cfg.Ministry),
		CSVPath:   csvPath,
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
	report.Records = len(records)
	report.Duplicates = dups

	if err := export.WriteCSV(records, csvPath); err != nil {
		logger.Error("CSV export failed", "error", err)
		return err
	}
	logger.Info("records saved", "count", len(records), "csv", csvPath)
	export.FormatTable(records, os.Stdout)

	if noDownload, _ := cmd.Flags().GetBool("no-download"); !noDownload {
		report.Downloads = fetchAndHighlight(cmd, records, terms, cfg.Timeout, level, runID)
	}

	if err := export.WriteReport(report, reportFile); err != nil {
		// The report is a convenience artifact; its failure is not worth
		// a non-zero exit after the real outputs were written.
		logger.Warn("run report not written", "error", err)
	}
	return nil
}

// fetchAndHighlight runs the PDF stage with its own log file. Failures
// here are logged per item and never fail the run.
func fetchAndHighlight(cmd *cobra.Command, records []types.DocumentRecord, terms []string, timeout time.Duration, level slog.Level, runID string) []export.DownloadOutcome {
	dlLogger, closeLog, err := logging.New(level, downloadLogFile, runID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "download log unavailable, skipping PDF stage:", err)
		return nil
	}
	defer closeLog()

	cfg := types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: types.DefaultUserAgent,
		},
		TargetDir:     types.DefaultTargetDir,
		DownloadDelay: types.DefaultDelay,
	}
	if v := viper.GetString("target_dir"); v != "" {
		cfg.TargetDir = v
	}
	if v := viper.GetDuration("download_delay"); v > 0 {
		cfg.DownloadDelay = v
	}

	batch := download.New(cfg, dlLogger).FetchAll(cmd.Context(), records)

	outcomes := make([]export.DownloadOutcome, 0, len(batch.Results))
	for _, res := range batch.Results {
		out := export.DownloadOutcome{
			Identifier: res.Record.Identifier,
			URL:        res.Record.PDFURL,
		}
		switch {
		case res.Err != nil:
			out.Status = "failed"
			out.Error = res.Err.Error()
		case res.Skipped:
			out.Status = "skipped"
			out.File = res.Path
		default:
			out.Status = "downloaded"
			out.File = res.Path
		}

		if res.Err == nil {
			hlPath, count, hlErr := highlight.File(res.Path, terms, dlLogger)
			if hlErr != nil {
				dlLogger.Error("highlight failed", "identifier", res.Record.Identifier, "error", hlErr)
				out.Error = hlErr.Error()
			} else {
				out.HighlightedFile = hlPath
				out.Highlights = count
			}
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}
