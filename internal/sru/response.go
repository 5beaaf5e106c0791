// Copyright Halflink, 2026. All rights reserved.

package sru

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/Halflink/KamerBrieven/pkg/types"
)

// Namespaces used by the overheid.nl SRU endpoint.
const (
	nsSRU        = "http://docs.oasis-open.org/ns/search-ws/sruResponse"
	nsDiagnostic = "http://docs.oasis-open.org/ns/search-ws/diagnostic"
	nsDCTerms    = "http://purl.org/dc/terms/"
	nsWetgeving  = "http://standaarden.overheid.nl/wetgeving/"
)

// searchRetrieveResponse maps one SRU response page. Record payloads are
// kept as raw inner XML because the gzd envelope nests the metadata
// fields at varying depths depending on document type.
type searchRetrieveResponse struct {
	XMLName         xml.Name     `xml:"searchRetrieveResponse"`
	NumberOfRecords int          `xml:"numberOfRecords"`
	Records         []sruRecord  `xml:"records>record"`
	Diagnostics     []diagnostic `xml:"diagnostics>diagnostic"`
}

type sruRecord struct {
	Data recordData `xml:"recordData"`
}

type recordData struct {
	Inner []byte `xml:",innerxml"`
}

type diagnostic struct {
	URI     string `xml:"uri"`
	Message string `xml:"message"`
	Details string `xml:"details"`
}

func (d diagnostic) String() string {
	if d.Details == "" {
		return d.Message
	}
	return fmt.Sprintf("%s (%s)", d.Message, d.Details)
}

// recordFields maps each metadata element's local name to its acceptable
// xml.Name.Space values: the namespace URI when the declaration survived
// inside recordData, or the bare prefix when it did not and the decoder
// passes the prefix through verbatim.
var recordFields = map[string][]string{
	"identifier":     {nsDCTerms, "dcterms"},
	"title":          {nsDCTerms, "dcterms"},
	"type":           {nsDCTerms, "dcterms"},
	"creator":        {nsDCTerms, "dcterms"},
	"modified":       {nsDCTerms, "dcterms"},
	"dossiernummer":  {nsWetgeving, "wetgeving"},
	"ondernummer":    {nsWetgeving, "wetgeving"},
	"publicatienaam": {nsWetgeving, "wetgeving"},
	"vergaderjaar":   {nsWetgeving, "wetgeving"},
}

// parseRecord walks the raw payload of one <recordData> element and
// builds a DocumentRecord. Missing fields stay empty; the first
// occurrence of each field wins. The PDF URL is derived from the
// identifier, absence of which means no downloadable artifact.
func parseRecord(data recordData) (types.DocumentRecord, error) {
	found := make(map[string]string, len(recordFields))

	dec := xml.NewDecoder(bytes.NewReader(data.Inner))
	for {
		tok, err := dec.Token()
		if err != nil {
			break // io.EOF ends the scan; a torn payload yields what was found
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		// Non-matching elements are containers to descend into, not skip.
		name := matchField(se.Name)
		if name == "" || found[name] != "" {
			continue
		}
		var value string
		if err := dec.DecodeElement(&value, &se); err != nil {
			return types.DocumentRecord{}, fmt.Errorf("decoding %s: %w", name, err)
		}
		found[name] = strings.TrimSpace(value)
	}

	rec := types.DocumentRecord{
		Identifier:      found["identifier"],
		Title:           found["title"],
		Type:            found["type"],
		Creator:         found["creator"],
		Modified:        found["modified"],
		DossierNumber:   found["dossiernummer"],
		OnderNumber:     found["ondernummer"],
		PublicationName: found["publicatienaam"],
		SessionYear:     found["vergaderjaar"],
	}
	rec.PDFURL = types.PDFURLFor(rec.Identifier)
	return rec, nil
}

// matchField returns the field key for an element name, or "" when the
// element is not one of the metadata fields.
func matchField(name xml.Name) string {
	spaces, ok := recordFields[name.Local]
	if !ok {
		return ""
	}
	for _, s := range spaces {
		if name.Space == s {
			return name.Local
		}
	}
	return ""
}
