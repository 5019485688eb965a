package main

import (
	"time"

	"github.com/atotto/clipboard"
)

var clipboardWriteAll = clipboard.WriteAll

// copyHoveredNote puts the text of the note under the pointer on the
// system clipboard.
func (m *model) copyHoveredNote() {
	n := m.board.Hovered()
	if n == nil {
		m.errorMessage = "No note under the pointer"
		return
	}
	if err := clipboardWriteAll(n.Text); err != nil {
		m.errorMessage = "Copy failed: " + err.Error()
		return
	}
	m.successMessage = "Copied note text"
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) canvasHeight() int {
	h := m.height - 1 // status line
	if m.mode == ModeCompose {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

// frameDT converts the wall-clock gap between frames into 60 Hz reference
// frames, capped so a stalled terminal does not snap animations.
func frameDT(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 1
	}
	dt := now.Sub(prev).Seconds() * 60
	if dt < 0 {
		return 0
	}
	if dt > 10 {
		return 10
	}
	return dt
}

func timestampedName(prefix string, now time.Time, ext string) string {
	return prefix + "-" + now.Format("20060102-150405") + ext
}
