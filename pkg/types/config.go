package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "parldocs/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the SRU search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the SRU base URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Ministry scopes the query to one publishing authority. Empty
	// disables the scope.
	Ministry string `json:"ministry" yaml:"ministry"`

	// PageSize is the maximumRecords value sent per request (default 50).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxRecords caps the total number of records fetched across pages.
	// Zero means no cap.
	MaxRecords int `json:"max_records" yaml:"max_records"`
}

// DownloadConfig holds settings for the PDF fetch stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// TargetDir is the directory PDFs are downloaded into.
	TargetDir string `json:"target_dir" yaml:"target_dir"`

	// DownloadDelay is the delay between consecutive downloads.
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay"`
}

// HighlightConfig holds settings for the PDF highlight stage.
type HighlightConfig struct {
	// Terms are the words to mark in downloaded PDFs. Matching is
	// case-insensitive.
	Terms []string `json:"terms" yaml:"terms"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// CSVPath is the CSV destination, overwritten per run.
	CSVPath string `json:"csv_path" yaml:"csv_path"`

	// RISPath is the RIS destination, overwritten per run.
	RISPath string `json:"ris_path" yaml:"ris_path"`

	// ReportPath is the YAML run-report destination.
	ReportPath string `json:"report_path" yaml:"report_path"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Search    SearchConfig    `json:"search" yaml:"search"`
	Export    ExportConfig    `json:"export" yaml:"export"`
	Download  DownloadConfig  `json:"download" yaml:"download"`
	Highlight HighlightConfig `json:"highlight" yaml:"highlight"`
}

// Defaults for the CLI and config file. The search terms match the
// research question this tool was originally written for.
const (
	DefaultEndpoint  = "https://repository.overheid.nl/sru"
	DefaultMinistry  = "Ministerie van Onderwijs, Cultuur en Wetenschap"
	DefaultCSVPath   = "parlementaire_documenten.csv"
	DefaultRISPath   = "parlementaire_documenten.ris"
	DefaultTargetDir = "downloaded_pdfs"
	DefaultUserAgent = "parldocs/0.1"
	DefaultPageSize  = 50
	DefaultTimeout   = 15 * time.Second
	DefaultDelay     = 1 * time.Second
)

// DefaultSearchTerms returns the default keyword set.
func DefaultSearchTerms() []string {
	return []string{"doorstroomtoets", "doorstroomtoetsen"}
}
