package main

import (
	"math/rand/v2"
	"time"
)

// Note is one sticky note on the wall, in world coordinates.
type Note struct {
	X, Y      float64
	W, H      float64
	Color     string
	Text      string
	TimeLabel string
	Rotation  float64 // degrees
	Expanded  bool
	Hovered   bool
	Anim      animState
}

func (n *Note) Contains(wx, wy float64) bool {
	return wx > n.X && wx < n.X+n.W && wy > n.Y && wy < n.Y+n.H
}

func (n *Note) Center() (float64, float64) {
	return n.X + n.W/2, n.Y + n.H/2
}

// Anchor is where threads attach: the top edge, centered.
func (n *Note) Anchor() (float64, float64) {
	return n.X + n.W/2, n.Y
}

// toggle flips the note between collapsed and expanded and refits its size.
func (n *Note) toggle(ts typesetter) {
	n.Expanded = !n.Expanded
	n.fit(ts)
}

func (n *Note) fit(ts typesetter) {
	if !n.Expanded {
		n.W, n.H = noteWidth, noteHeight
		return
	}
	n.W = expandedNoteWidth
	n.H = ts.expandedHeight(n.Text)
}

// gridLayout places notes on a fixed-column grid.
type gridLayout struct {
	Columns int
}

func (l gridLayout) cell(index int) (row, col int) {
	cols := l.Columns
	if cols < 1 {
		cols = 1
	}
	return index / cols, index % cols
}

func (l gridLayout) position(index int) (float64, float64) {
	row, col := l.cell(index)
	return wallMargin + float64(col)*(noteWidth+noteGap),
		wallMargin + float64(row)*(noteHeight+noteGap)
}

// noteBuilder turns feed records into positioned notes.
type noteBuilder struct {
	layout gridLayout
	ts     typesetter
	rng    *rand.Rand
	loc    *time.Location
}

func randomTilt(rng *rand.Rand) float64 {
	return (rng.Float64() - 0.5) * 6
}

// build sorts records and lays them out. Per-note state (expanded flag,
// rotation, animation, size) is carried over from prev by index, not by
// content: reordering the feed moves that state to a different note.
func (b noteBuilder) build(records []record, prev []*Note) []*Note {
	sorted := make([]record, len(records))
	copy(sorted, records)
	sortRecords(sorted)

	notes := make([]*Note, len(sorted))
	for i, rec := range sorted {
		x, y := b.layout.position(i)
		n := &Note{
			X:         x,
			Y:         y,
			W:         noteWidth,
			H:         noteHeight,
			Color:     notePalette[i%len(notePalette)],
			Text:      rec.Text,
			TimeLabel: timeLabel(rec, b.loc),
		}
		if i < len(prev) && prev[i] != nil {
			old := prev[i]
			n.Expanded = old.Expanded
			n.Rotation = old.Rotation
			n.Anim = old.Anim
			n.Hovered = old.Hovered
			n.W, n.H = old.W, old.H
			if n.Expanded && old.Text != n.Text {
				n.fit(b.ts)
			}
		} else {
			n.Rotation = randomTilt(b.rng)
			n.Anim = restingAnim
		}
		notes[i] = n
	}
	return notes
}
