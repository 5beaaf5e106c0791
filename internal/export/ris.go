// Copyright Halflink, 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"os"

	"github.com/Halflink/KamerBrieven/pkg/types"
)

// risType is the RIS reference type used for every entry. Parliamentary
// publications map to the standard "government document" type.
const risType = "GOVDOC"

// WriteRIS writes all records to path in RIS format, one tagged entry
// per record. An existing file is replaced.
func WriteRIS(records []types.DocumentRecord, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating RIS %s: %w", path, err)
	}
	defer f.Close()

	for _, r := range records {
		if err := writeRISEntry(f, r); err != nil {
			return fmt.Errorf("writing RIS entry for %s: %w", r.Identifier, err)
		}
	}
	return nil
}

// writeRISEntry emits one entry. Empty fields are omitted except the
// mandatory TY and ER tags.
func writeRISEntry(w io.Writer, r types.DocumentRecord) error {
	tag := func(name, value string) string {
		return fmt.Sprintf("%s  - %s\n", name, value)
	}

	entry := tag("TY", risType)
	if r.Title != "" {
		entry += tag("TI", r.Title)
	}
	if r.Creator != "" {
		entry += tag("AU", r.Creator)
	}
	if y := r.Year(); y != "" {
		entry += tag("PY", y)
	}
	if r.PDFURL != "" {
		entry += tag("UR", r.PDFURL)
	}
	if r.Identifier != "" {
		entry += tag("ID", r.Identifier)
	}
	entry += tag("ER", "")

	_, err := io.WriteString(w, entry)
	return err
}
