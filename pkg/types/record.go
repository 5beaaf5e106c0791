// Copyright Halflink, 2026. All rights reserved.

// Package types defines shared data structures for the parldocs pipeline.
package types

import "strings"

// PublicationBase is the host serving the PDF rendition of every
// publication known to the repository, keyed by identifier.
const PublicationBase = "https://zoek.officielebekendmakingen.nl/"

// DocumentRecord holds the metadata of one parliamentary publication as
// returned by the SRU endpoint. Constructed once per search-result entry
// and immutable afterwards.
type DocumentRecord struct {
	// Identifier is the canonical publication id (e.g. "kst-36410-VIII-2").
	Identifier string `json:"identifier" yaml:"identifier"`

	// Title is the publication title.
	Title string `json:"title" yaml:"title"`

	// Type is the publication type from the source vocabulary
	// (e.g. "Kamerstuk", "Handeling").
	Type string `json:"type" yaml:"type"`

	// Creator is the publishing body (e.g. "Tweede Kamer der Staten-Generaal").
	Creator string `json:"creator" yaml:"creator"`

	// Modified is the last-modified date as delivered by the source
	// (YYYY-MM-DD).
	Modified string `json:"modified" yaml:"modified"`

	// DossierNumber groups related documents into a parliamentary case file.
	DossierNumber string `json:"dossier_number,omitempty" yaml:"dossier_number,omitempty"`

	// OnderNumber is the sub-number within the dossier.
	OnderNumber string `json:"onder_number,omitempty" yaml:"onder_number,omitempty"`

	// PublicationName is the series the document appeared in.
	PublicationName string `json:"publication_name,omitempty" yaml:"publication_name,omitempty"`

	// SessionYear is the parliamentary session year (e.g. "2023-2024").
	SessionYear string `json:"session_year,omitempty" yaml:"session_year,omitempty"`

	// PDFURL is the download URL for the PDF rendition. Empty when the
	// record carries no identifier, which means there is no downloadable
	// artifact.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}

// HasPDF reports whether the record references a downloadable PDF.
func (r DocumentRecord) HasPDF() bool { return r.PDFURL != "" }

// Year returns the year component of the Modified date, or "" when the
// date is absent or malformed.
func (r DocumentRecord) Year() string {
	if len(r.Modified) < 4 {
		return ""
	}
	y := r.Modified[:4]
	for _, c := range y {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return y
}

// PDFURLFor derives the publication PDF URL for an identifier.
// Returns "" for an empty identifier.
func PDFURLFor(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ""
	}
	return PublicationBase + identifier + ".pdf"
}

// Deduplicate removes records whose identifier was already seen, keeping
// the first occurrence. Records without an identifier are kept as-is as
// they cannot be told apart. Returns the filtered sequence and the number
// of duplicates removed.
func Deduplicate(records []DocumentRecord) ([]DocumentRecord, int) {
	seen := make(map[string]struct{}, len(records))
	out := records[:0:0]
	removed := 0
	for _, r := range records {
		if r.Identifier != "" {
			if _, ok := seen[r.Identifier]; ok {
				removed++
				continue
			}
			seen[r.Identifier] = struct{}{}
		}
		out = append(out, r)
	}
	return out, removed
}
