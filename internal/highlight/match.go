// Copyright Halflink, 2026. All rights reserved.

// Package highlight finds search-term occurrences in PDF page text and
// marks each one with a highlight annotation.
package highlight

import (
	"math"
	"sort"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Rect is an axis-aligned box in PDF user space (origin bottom-left).
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Match is one case-insensitive term occurrence on a page.
type Match struct {
	Page int
	Term string
	Rect Rect
}

// charBox carries one character with its geometry on the page.
type charBox struct {
	r    rune
	x, w float64 // horizontal extent
	y, h float64 // baseline and font size
}

// textLine is one reconstructed line of page text.
type textLine struct {
	chars []charBox
}

// lineYTolerance groups fragments whose baselines differ by at most
// this many points onto the same line.
const lineYTolerance = 2.0

// buildLines reconstructs text lines from the extractor's fragments.
// Fragments are grouped by baseline, then ordered left to right. A
// fragment holding several runes gets its width spread evenly over them;
// exact glyph widths do not matter for highlight boxes.
func buildLines(fragments []pdf.Text) []textLine {
	byLine := make(map[float64][]pdf.Text)
	var baselines []float64
	for _, f := range fragments {
		if f.S == "" {
			continue
		}
		key := baselineKey(baselines, f.Y)
		if _, ok := byLine[key]; !ok {
			baselines = append(baselines, key)
		}
		byLine[key] = append(byLine[key], f)
	}

	// Top of page first.
	sort.Sort(sort.Reverse(sort.Float64Slice(baselines)))

	lines := make([]textLine, 0, len(baselines))
	for _, base := range baselines {
		frags := byLine[base]
		sort.Slice(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

		var line textLine
		for _, f := range frags {
			runes := []rune(f.S)
			cw := f.W / float64(len(runes))
			for i, r := range runes {
				line.chars = append(line.chars, charBox{
					r: r,
					x: f.X + float64(i)*cw,
					w: cw,
					y: f.Y,
					h: f.FontSize,
				})
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func baselineKey(baselines []float64, y float64) float64 {
	for _, b := range baselines {
		if math.Abs(b-y) <= lineYTolerance {
			return b
		}
	}
	return y
}

// matchLine finds all non-overlapping case-insensitive occurrences of
// term in the line and returns their bounding boxes.
func matchLine(line textLine, term string) []Rect {
	want := []rune(term)
	if len(want) == 0 || len(line.chars) < len(want) {
		return nil
	}
	for i, r := range want {
		want[i] = unicode.ToLower(r)
	}

	var rects []Rect
	for i := 0; i+len(want) <= len(line.chars); {
		if !runesMatchAt(line.chars, i, want) {
			i++
			continue
		}
		rects = append(rects, boundingBox(line.chars[i:i+len(want)]))
		i += len(want)
	}
	return rects
}

func runesMatchAt(chars []charBox, at int, want []rune) bool {
	for j, r := range want {
		if unicode.ToLower(chars[at+j].r) != r {
			return false
		}
	}
	return true
}

// boundingBox returns the box spanning a run of characters, padded a
// quarter font size below the baseline to cover descenders.
func boundingBox(chars []charBox) Rect {
	r := Rect{
		X1: chars[0].x,
		Y1: math.Inf(1),
		X2: chars[len(chars)-1].x + chars[len(chars)-1].w,
		Y2: math.Inf(-1),
	}
	for _, c := range chars {
		r.Y1 = math.Min(r.Y1, c.y-0.25*c.h)
		r.Y2 = math.Max(r.Y2, c.y+c.h)
	}
	return r
}

// matchPage runs all terms against all lines of one page.
func matchPage(pageNo int, fragments []pdf.Text, terms []string) []Match {
	lines := buildLines(fragments)
	var matches []Match
	for _, line := range lines {
		for _, term := range terms {
			for _, rect := range matchLine(line, term) {
				matches = append(matches, Match{Page: pageNo, Term: term, Rect: rect})
			}
		}
	}
	return matches
}
