package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) viewportPixels() (int, int) {
	width := m.width
	if width < 1 {
		width = 80
	}
	return int(float64(width) * cellWidth), int(float64(m.canvasHeight()) * cellHeight)
}

// exportPNGCmd renders the current viewport through the raster renderer
// and reports the result as a message.
func (m *model) exportPNGCmd(filename string) tea.Cmd {
	if m.fonts == nil {
		fonts, err := loadFonts()
		if err != nil {
			return func() tea.Msg { return exportDoneMsg{err: err} }
		}
		m.fonts = fonts
	}
	path := m.config.GetSavePath(filename)
	w, h := m.viewportPixels()
	err := saveWallPNG(path, m.board, m.fonts, w, h)
	return func() tea.Msg { return exportDoneMsg{path: path, err: err} }
}

func (m *model) exportVisualTXT(filename string) error {
	path := m.config.GetSavePath(filename)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	width := m.width
	if width < 1 {
		width = 80 // Default minimum width
	}
	canvas := newTermCanvas(width, m.canvasHeight(), "")
	drawWallCells(canvas, m.board)

	for _, line := range canvas.plainLines() {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}
