// Copyright Halflink, 2026. All rights reserved.

package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Halflink/KamerBrieven/pkg/types"
)

const fakePDF = "%PDF-1.7\nfake body\n%%EOF"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDownloader(t *testing.T) (*Downloader, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "parldocs-test/0.1"},
		TargetDir:  dir,
	}
	return New(cfg, testLogger()), dir
}

func record(id, url string) types.DocumentRecord {
	return types.DocumentRecord{Identifier: id, PDFURL: url}
}

func TestFetchOneDownloads(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, fakePDF)
	}))
	defer ts.Close()

	d, dir := newTestDownloader(t)
	path, skipped, err := d.FetchOne(context.Background(), record("kst-1", ts.URL+"/kst-1.pdf"))
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	if skipped {
		t.Error("skipped = true, want false")
	}
	if want := filepath.Join(dir, "kst-1.pdf"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading download: %v", err)
	}
	if string(data) != fakePDF {
		t.Errorf("file content = %q, want %q", data, fakePDF)
	}
}

func TestFetchOneSkipsExisting(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		io.WriteString(w, fakePDF)
	}))
	defer ts.Close()

	d, dir := newTestDownloader(t)
	if err := os.WriteFile(filepath.Join(dir, "kst-1.pdf"), []byte(fakePDF), 0o644); err != nil {
		t.Fatal(err)
	}

	_, skipped, err := d.FetchOne(context.Background(), record("kst-1", ts.URL))
	if err != nil {
		t.Fatalf("FetchOne: %v", err)
	}
	if !skipped {
		t.Error("skipped = false, want true")
	}
	if calls != 0 {
		t.Errorf("server calls = %d, want 0", calls)
	}
}

func TestFetchOneRejectsNonPDF(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html>not found page pretending to be fine</html>")
	}))
	defer ts.Close()

	d, dir := newTestDownloader(t)
	_, _, err := d.FetchOne(context.Background(), record("kst-1", ts.URL))
	if err == nil || !strings.Contains(err.Error(), "not a PDF") {
		t.Fatalf("err = %v, want magic-number rejection", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("target dir has %d entries, want 0 after rejected download", len(entries))
	}
}

func TestFetchAllContinuesAfterFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "kst-missing") {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, fakePDF)
	}))
	defer ts.Close()

	d, dir := newTestDownloader(t)
	records := []types.DocumentRecord{
		record("kst-1", ts.URL+"/kst-1.pdf"),
		record("kst-missing", ts.URL+"/kst-missing.pdf"),
		record("kst-2", ts.URL+"/kst-2.pdf"),
		{Identifier: "geen-pdf"}, // no PDF URL, not counted
	}

	batch := d.FetchAll(context.Background(), records)
	if batch.Downloaded != 2 || batch.Failed != 1 || batch.Skipped != 0 {
		t.Errorf("batch = %+v, want 2 downloaded, 1 failed", batch)
	}
	if batch.Total() != 3 {
		t.Errorf("Total() = %d, want 3", batch.Total())
	}

	for _, name := range []string{"kst-1.pdf", "kst-2.pdf"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s on disk: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "kst-missing.pdf")); !os.IsNotExist(err) {
		t.Error("kst-missing.pdf must not exist after a 404")
	}
}

func TestFetchOneHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	d, _ := newTestDownloader(t)
	_, _, err := d.FetchOne(context.Background(), record("kst-1", ts.URL))
	if err == nil || !strings.Contains(err.Error(), "HTTP 404") {
		t.Fatalf("err = %v, want HTTP 404", err)
	}
}
