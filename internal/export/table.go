// Copyright Halflink, 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Halflink/KamerBrieven/pkg/types"
)

const (
	colIdentifier = 24
	colTitle      = 56
	colType       = 22
)

// FormatTable writes records as a human-readable table. Widths are
// display widths, not byte counts, so titles with diacritics line up.
func FormatTable(records []types.DocumentRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return
	}

	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		pad("Identifier", colIdentifier), pad("Title", colTitle), pad("Type", colType), "Modified")
	fmt.Fprintln(w, strings.Repeat("-", colIdentifier+colTitle+colType+16))

	for _, r := range records {
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			pad(r.Identifier, colIdentifier),
			pad(r.Title, colTitle),
			pad(r.Type, colType),
			r.Modified)
	}
	fmt.Fprintf(w, "\n%d documents\n", len(records))
}

func pad(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
