// Copyright Halflink, 2026. All rights reserved.

package highlight

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
)

// OutputPrefix names the annotated sibling copy of a downloaded PDF.
const OutputPrefix = "highlighted_"

// OutputPath returns the sibling path the annotated copy is written to.
func OutputPath(pdfPath string) string {
	return filepath.Join(filepath.Dir(pdfPath), OutputPrefix+filepath.Base(pdfPath))
}

// File scans pdfPath for the terms and writes an annotated copy next to
// it. It returns the output path and the number of highlights added.
//
// The annotated copy is always derived from the original file, so
// re-running with the same terms reproduces the same result instead of
// stacking marks. A PDF without extractable text, or without matches,
// produces no copy and returns count 0.
//
// A PDF the extractor cannot read is rewritten once via pdfcpu and
// retried; the error of the first attempt is returned only when the
// repair or the retry fails too.
func File(pdfPath string, terms []string, logger *slog.Logger) (string, int, error) {
	src := pdfPath
	matches, hasText, err := FindMatches(src, terms)
	if err != nil {
		logger.Warn("unreadable pdf, attempting repair", "path", pdfPath, "error", err)
		repaired := pdfPath + ".repaired"
		if rerr := repairFile(pdfPath, repaired); rerr != nil {
			logger.Warn("repair failed", "path", pdfPath, "error", rerr)
			return "", 0, err
		}
		defer os.Remove(repaired)
		src = repaired
		if matches, hasText, err = FindMatches(src, terms); err != nil {
			return "", 0, err
		}
		logger.Info("repaired pdf", "path", pdfPath)
	}
	if !hasText {
		logger.Warn("no extractable text, skipping highlight", "path", pdfPath)
		return "", 0, nil
	}
	if len(matches) == 0 {
		logger.Info("no term occurrences found", "path", pdfPath)
		return "", 0, nil
	}

	out := OutputPath(pdfPath)
	if err := applyHighlights(src, out, matches); err != nil {
		return "", 0, fmt.Errorf("annotating %s: %w", pdfPath, err)
	}
	logger.Info("highlighted", "path", out, "highlights", len(matches))
	return out, len(matches), nil
}

// FindMatches extracts text per page and locates every case-insensitive
// term occurrence. hasText reports whether any page yielded text at all.
// The extractor panics on some malformed files; that is reported as an
// error rather than taking the run down.
func FindMatches(pdfPath string, terms []string) (matches []Match, hasText bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			matches, hasText = nil, false
			err = fmt.Errorf("reading %s: %v", pdfPath, r)
		}
	}()

	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, false, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	for pageNo := 1; pageNo <= reader.NumPage(); pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		fragments := page.Content().Text
		if len(fragments) > 0 {
			hasText = true
		}
		matches = append(matches, matchPage(pageNo, fragments, terms)...)
	}
	return matches, hasText, nil
}
