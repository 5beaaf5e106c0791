// Copyright Halflink, 2026. All rights reserved.

// Package download fetches publication PDFs to the local target
// directory. Individual failures never abort the batch.
package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Halflink/KamerBrieven/internal/httputil"
	"github.com/Halflink/KamerBrieven/pkg/types"
)

// pdfMagic is the file signature every valid download must start with.
var pdfMagic = []byte("%PDF")

// Result holds the outcome for one record.
type Result struct {
	Record  types.DocumentRecord
	Path    string
	Skipped bool
	Err     error
}

// BatchResult summarizes one fetch run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Results    []Result
}

// Total returns the number of records processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// Downloader fetches PDFs sequentially into one target directory.
type Downloader struct {
	http *http.Client
	cfg  types.DownloadConfig
	log  *slog.Logger
}

// New builds a Downloader. The target directory is created on first use.
func New(cfg types.DownloadConfig, logger *slog.Logger) *Downloader {
	return &Downloader{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		log:  logger,
	}
}

// FetchAll downloads the PDF for every record that references one,
// applying the configured delay between consecutive downloads. A failed
// download is logged and counted, then the batch moves on.
func (d *Downloader) FetchAll(ctx context.Context, records []types.DocumentRecord) BatchResult {
	var batch BatchResult
	first := true
	for _, rec := range records {
		if !rec.HasPDF() {
			continue
		}
		if !first && d.cfg.DownloadDelay > 0 {
			time.Sleep(d.cfg.DownloadDelay)
		}
		first = false

		path, skipped, err := d.FetchOne(ctx, rec)
		res := Result{Record: rec, Path: path, Skipped: skipped, Err: err}
		switch {
		case err != nil:
			batch.Failed++
			d.log.Error("download failed", "identifier", rec.Identifier, "url", rec.PDFURL, "error", err)
		case skipped:
			batch.Skipped++
			d.log.Info("download skipped, file exists", "identifier", rec.Identifier, "path", path)
		default:
			batch.Downloaded++
			d.log.Info("downloaded", "identifier", rec.Identifier, "path", path)
		}
		batch.Results = append(batch.Results, res)
	}

	d.log.Info("download batch done",
		"downloaded", batch.Downloaded, "skipped", batch.Skipped, "failed", batch.Failed, "total", batch.Total())
	return batch
}

// FetchOne downloads one record's PDF to <target>/<identifier>.pdf. A
// file already on disk is not downloaded again.
func (d *Downloader) FetchOne(ctx context.Context, rec types.DocumentRecord) (path string, skipped bool, err error) {
	if !rec.HasPDF() {
		return "", false, fmt.Errorf("record %s has no PDF URL", rec.Identifier)
	}

	path = d.PathFor(rec)
	if _, statErr := os.Stat(path); statErr == nil {
		return path, true, nil
	}

	if err := os.MkdirAll(d.cfg.TargetDir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory %s: %w", d.cfg.TargetDir, err)
	}
	if err := d.downloadFile(ctx, rec.PDFURL, path); err != nil {
		return "", false, err
	}
	return path, false, nil
}

// PathFor returns the deterministic download path for a record.
func (d *Downloader) PathFor(rec types.DocumentRecord) string {
	return filepath.Join(d.cfg.TargetDir, rec.Identifier+".pdf")
}

// downloadFile fetches url to destPath using a temporary file, renamed
// into place only after the body arrived intact and starts with the PDF
// signature. Partial downloads never shadow a good file.
func (d *Downloader) downloadFile(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.UserAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := httputil.DoWithRetry(ctx, d.http, req, 0)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	magic := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(resp.Body, magic); err != nil {
		return fmt.Errorf("reading response from %s: %w", url, err)
	}
	if !bytes.Equal(magic, pdfMagic) {
		return fmt.Errorf("response from %s is not a PDF", url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, io.MultiReader(bytes.NewReader(magic), resp.Body))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
