package main

import "strings"

const (
	gridLineColor = "#2e2e2e"
	gridAxisColor = "#5c5c5c"
)

// gridViewer is the plain grid background with drag panning and the host
// stats panel.
type gridViewer struct {
	camera   Camera
	dragging bool
	lastX    float64
	lastY    float64
	stats    string
}

func newGridViewer() *gridViewer {
	return &gridViewer{camera: newCamera(), stats: statsPlaceholder}
}

func (g *gridViewer) Apply(ev Event) {
	switch ev := ev.(type) {
	case PointerDown:
		g.dragging = true
		g.lastX, g.lastY = ev.X, ev.Y
	case PointerMove:
		if !g.dragging {
			return
		}
		g.camera.Pan(ev.X-g.lastX, ev.Y-g.lastY)
		g.lastX, g.lastY = ev.X, ev.Y
	case PointerUp:
		g.dragging = false
	}
}

func (g *gridViewer) setStats(s Stats) {
	g.stats = formatStats(s)
}

func drawGridCells(c *termCanvas, g *gridViewer) {
	widthPx := float64(c.width) * cellWidth
	heightPx := float64(c.height) * cellHeight

	cols := map[int]bool{}
	for sx := stripeOffset(g.camera.X, gridTileSize); sx < widthPx; sx += gridTileSize {
		col, _ := toCell(sx, 0)
		cols[col] = true
	}
	rows := map[int]bool{}
	for sy := stripeOffset(g.camera.Y, gridTileSize); sy < heightPx; sy += gridTileSize {
		_, row := toCell(0, sy)
		rows[row] = true
	}
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			switch {
			case cols[x] && rows[y]:
				c.overlay(x, y, '┼', gridLineColor)
			case cols[x]:
				c.overlay(x, y, '│', gridLineColor)
			case rows[y]:
				c.overlay(x, y, '─', gridLineColor)
			}
		}
	}

	// Origin marker follows the pan from the screen center.
	cx := widthPx/2 + g.camera.X
	cy := heightPx/2 + g.camera.Y
	x0, row := toCell(cx-axisHalfLen, cy)
	x1, _ := toCell(cx+axisHalfLen, cy)
	for x := x0; x <= x1; x++ {
		c.overlay(x, row, '━', gridAxisColor)
	}
	col, y0 := toCell(cx, cy-axisHalfLen)
	_, y1 := toCell(cx, cy+axisHalfLen)
	for y := y0; y <= y1; y++ {
		c.overlay(col, y, '┃', gridAxisColor)
	}
	c.overlay(col, row, '╋', gridAxisColor)

	for i, line := range strings.Split(g.stats, "\n") {
		c.fill(1, 1+i, 3+len(line), 2+i, ' ', cellStyle{fg: "#e5e5e5", bg: "#000000"})
		c.text(2, 1+i, line, "#e5e5e5", c.width)
	}
}
