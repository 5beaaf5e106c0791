// Copyright Halflink, 2026. All rights reserved.

package highlight

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/color"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// highlightYellow is the fill color for every highlight mark.
var highlightYellow = color.SimpleColor{R: 1, G: 1, B: 0}

// applyHighlights writes outPath as a copy of inPath carrying one
// highlight annotation per match. The quad points are derived from each
// annotation rectangle.
func applyHighlights(inPath, outPath string, matches []Match) error {
	byPage := make(map[int][]model.AnnotationRenderer, len(matches))
	for i, m := range matches {
		ann := model.NewHighlightAnnotation(
			*types.NewRectangle(m.Rect.X1, m.Rect.Y1, m.Rect.X2, m.Rect.Y2),
			m.Term,
			fmt.Sprintf("parldocs-hl-%d-%d", m.Page, i),
			"",
			0,
			&highlightYellow,
			0, 0, 0,
			"parldocs",
			nil,
			nil,
			"",
			"",
			nil,
		)
		byPage[m.Page] = append(byPage[m.Page], ann)
	}
	return api.AddAnnotationsMapFile(inPath, outPath, byPage, nil, false)
}

// repairFile rewrites a damaged PDF as a clean copy at outPath. Relaxed
// validation lets pdfcpu accept files the text extractor chokes on, such
// as PDFs with junk before the header or broken cross-reference offsets.
func repairFile(inPath, outPath string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.OptimizeFile(inPath, outPath, conf); err != nil {
		return fmt.Errorf("repairing %s: %w", inPath, err)
	}
	return nil
}
