package main

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Measurer reports the drawn width of a string on some surface.
type Measurer interface {
	MeasureString(s string) float64
}

// cellMeasurer measures in terminal cells scaled to pixels.
type cellMeasurer struct {
	cellWidth float64
}

func (m cellMeasurer) MeasureString(s string) float64 {
	return float64(runewidth.StringWidth(s)) * m.cellWidth
}

// typesetter bundles a measurer with the line height of the main font.
type typesetter struct {
	measurer   Measurer
	lineHeight float64
}

func terminalTypesetter() typesetter {
	return typesetter{measurer: cellMeasurer{cellWidth: cellWidth}, lineHeight: cellHeight}
}

// wrapText greedily packs words into lines no wider than maxWidth. A word
// wider than maxWidth on its own is placed alone on a line and never
// split. Explicit newlines start a new paragraph.
func wrapText(m Measurer, text string, maxWidth float64) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := words[0]
		for _, word := range words[1:] {
			candidate := cur + " " + word
			if m.MeasureString(candidate) <= maxWidth {
				cur = candidate
				continue
			}
			lines = append(lines, cur)
			cur = word
		}
		lines = append(lines, cur)
	}
	return lines
}

// collapseLines applies the collapsed-note limit.
func collapseLines(lines []string) ([]string, bool) {
	if len(lines) <= collapsedLineLimit {
		return lines, false
	}
	out := make([]string, 0, collapsedKeepLines+1)
	out = append(out, lines[:collapsedKeepLines]...)
	return append(out, expandHint), true
}

func (ts typesetter) noteLines(n *Note) []string {
	lines := wrapText(ts.measurer, n.Text, n.W-textInset)
	if !n.Expanded {
		lines, _ = collapseLines(lines)
	}
	return lines
}

// expandedHeight is the height an expanded note needs for its full text.
func (ts typesetter) expandedHeight(text string) float64 {
	lines := wrapText(ts.measurer, text, expandedNoteWidth-textInset)
	h := textTop + float64(len(lines))*ts.lineHeight + textBottom
	if h < noteHeight {
		return noteHeight
	}
	return h
}
