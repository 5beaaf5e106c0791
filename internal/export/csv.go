// Copyright Halflink, 2026. All rights reserved.

// Package export serializes document records to CSV, RIS and the YAML
// run report. Every writer overwrites its destination; output files are
// the only state a run leaves behind besides logs and PDFs.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Halflink/KamerBrieven/pkg/types"
)

// csvHeader is the fixed CSV column set, one row per record.
var csvHeader = []string{
	"identifier", "title", "type", "creator", "modified", "dossier_number", "pdf_url",
}

// WriteCSV writes all records to path as UTF-8 CSV with a header row.
// An existing file is replaced. No records are filtered: the row count
// always equals len(records).
func WriteCSV(records []types.DocumentRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Identifier, r.Title, r.Type, r.Creator, r.Modified, r.DossierNumber, r.PDFURL}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %s: %w", r.Identifier, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing CSV: %w", err)
	}
	return nil
}
