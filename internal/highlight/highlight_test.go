// Copyright Halflink, 2026. All rights reserved.

package highlight

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// samplePDF builds a minimal one-page PDF with the given line of ASCII
// text set in 10pt Helvetica, with per-glyph widths so the extractor
// reports real positions. Object offsets are computed while writing so
// the cross-reference table is exact.
func samplePDF(text string) []byte {
	content := fmt.Sprintf("BT /F1 10 Tf 72 700 Td (%s) Tj ET", text)
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [" +
			strings.TrimSpace(strings.Repeat("600 ", 95)) + "] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objs))
	for i, obj := range objs {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func writeSamplePDF(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, samplePDF(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileHighlightsTermOccurrence(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kst-36200-1.pdf")
	writeSamplePDF(t, src, "de doorstroomtoets komt eraan")

	out, count, err := File(src, []string{"doorstroomtoets"}, discardLogger())
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if count != 1 {
		t.Errorf("highlight count = %d, want 1", count)
	}
	want := filepath.Join(dir, "highlighted_kst-36200-1.pdf")
	if out != want {
		t.Errorf("output path = %q, want %q", out, want)
	}
	if err := api.ValidateFile(out, nil); err != nil {
		t.Errorf("annotated copy does not validate: %v", err)
	}
}

func TestFileRerunReproducesResult(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kst-36200-2.pdf")
	writeSamplePDF(t, src, "doorstroomtoets")

	_, first, err := File(src, []string{"doorstroomtoets"}, discardLogger())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	out, second, err := File(src, []string{"doorstroomtoets"}, discardLogger())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first != 1 || second != first {
		t.Errorf("highlight counts = %d then %d, want 1 both times", first, second)
	}
	if err := api.ValidateFile(out, nil); err != nil {
		t.Errorf("annotated copy does not validate after rerun: %v", err)
	}
}

func TestFileRepairsUnreadablePDF(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kst-36200-3.pdf")
	damaged := append([]byte("garbage before the header\n"), samplePDF("de doorstroomtoets komt eraan")...)
	if err := os.WriteFile(src, damaged, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := FindMatches(src, []string{"doorstroomtoets"}); err == nil {
		t.Fatal("expected the extractor to reject the damaged file")
	}

	out, count, err := File(src, []string{"doorstroomtoets"}, discardLogger())
	if err != nil {
		t.Fatalf("File on damaged pdf: %v", err)
	}
	if count != 1 {
		t.Errorf("highlight count = %d, want 1", count)
	}
	if err := api.ValidateFile(out, nil); err != nil {
		t.Errorf("annotated copy does not validate: %v", err)
	}
	if _, err := os.Stat(src + ".repaired"); !os.IsNotExist(err) {
		t.Errorf("repaired temp file was not cleaned up: %v", err)
	}
}

func TestFileRepairFailureReportsOriginalError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "kst-36200-4.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4\nthis is not a pdf at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := File(src, []string{"doorstroomtoets"}, discardLogger()); err == nil {
		t.Fatal("expected an error for an unrepairable file")
	}
}
