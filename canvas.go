package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type cellStyle struct {
	fg string
	bg string
}

// termCanvas is a grid of styled terminal cells. Screen pixels map onto it
// at cellWidth x cellHeight per cell.
type termCanvas struct {
	width  int
	height int
	runes  [][]rune
	styles [][]cellStyle
}

func newTermCanvas(width, height int, bg string) *termCanvas {
	if height < 1 {
		height = 1
	}
	if width < 1 {
		width = 1
	}
	c := &termCanvas{
		width:  width,
		height: height,
		runes:  make([][]rune, height),
		styles: make([][]cellStyle, height),
	}
	for i := range c.runes {
		c.runes[i] = make([]rune, width)
		c.styles[i] = make([]cellStyle, width)
		for j := range c.runes[i] {
			c.runes[i][j] = ' '
			c.styles[i][j] = cellStyle{bg: bg}
		}
	}
	return c
}

func (c *termCanvas) isValidPos(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *termCanvas) set(x, y int, r rune, style cellStyle) {
	if !c.isValidPos(x, y) {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x] = style
}

// overlay draws r keeping the cell's background.
func (c *termCanvas) overlay(x, y int, r rune, fg string) {
	if !c.isValidPos(x, y) {
		return
	}
	c.runes[y][x] = r
	c.styles[y][x].fg = fg
}

func (c *termCanvas) fill(x0, y0, x1, y1 int, r rune, style cellStyle) {
	for y := max(y0, 0); y < y1 && y < c.height; y++ {
		for x := max(x0, 0); x < x1 && x < c.width; x++ {
			c.runes[y][x] = r
			c.styles[y][x] = style
		}
	}
}

// text writes s from (x, y), keeping backgrounds, and stops before limit.
func (c *termCanvas) text(x, y int, s string, fg string, limit int) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		c.overlay(x, y, r, fg)
		for k := 1; k < w; k++ {
			c.overlay(x+k, y, 0, fg)
		}
		x += w
	}
}

// lines renders the canvas row by row, grouping runs of equal style.
func (c *termCanvas) lines() []string {
	result := make([]string, c.height)
	for i := range c.runes {
		var line strings.Builder
		var run strings.Builder
		current := c.styles[i][0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle()
			if current.fg != "" {
				style = style.Foreground(lipgloss.Color(current.fg))
			}
			if current.bg != "" {
				style = style.Background(lipgloss.Color(current.bg))
			}
			line.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for j, r := range c.runes[i] {
			if c.styles[i][j] != current {
				flush()
				current = c.styles[i][j]
			}
			if r != 0 {
				run.WriteRune(r)
			}
		}
		flush()
		result[i] = line.String()
	}
	return result
}

// plainLines renders the canvas without styling.
func (c *termCanvas) plainLines() []string {
	result := make([]string, c.height)
	for i, row := range c.runes {
		var line strings.Builder
		for _, r := range row {
			if r != 0 {
				line.WriteRune(r)
			}
		}
		result[i] = strings.TrimRight(line.String(), " ")
	}
	return result
}

func toCell(px, py float64) (int, int) {
	return int(math.Floor(px / cellWidth)), int(math.Floor(py / cellHeight))
}

// cellCenter returns the screen pixel at the middle of a terminal cell.
func cellCenter(x, y int) (float64, float64) {
	return (float64(x) + 0.5) * cellWidth, (float64(y) + 0.5) * cellHeight
}

// drawWallCells draws the board onto the terminal canvas. Rotation is not
// representable in cells and is dropped; scale and shadow offset are kept.
func drawWallCells(c *termCanvas, b *Board) {
	cam := b.Camera()
	widthPx := float64(c.width) * cellWidth

	spacing := stripeSpacing * cam.Zoom
	for sx := stripeOffset(cam.X, spacing); sx < widthPx; sx += spacing {
		col, _ := toCell(sx, 0)
		for y := 0; y < c.height; y++ {
			c.overlay(col, y, '│', wallStripe)
		}
	}

	notes := b.Notes()
	for i := 1; i < len(notes); i++ {
		drawThreadCells(c, cam, notes[i-1], notes[i])
	}
	for _, n := range notes {
		drawNoteCells(c, cam, n)
	}
}

func drawThreadCells(c *termCanvas, cam Camera, from, to *Note) {
	ax, ay := from.Anchor()
	bx, by := to.Anchor()
	mx, my := (ax+bx)/2, math.Max(ay, by)+threadDroop
	const steps = 64
	for i := 0; i <= steps; i++ {
		t := float64(i) / steps
		u := 1 - t
		wx := u*u*ax + 2*u*t*mx + t*t*bx
		wy := u*u*ay + 2*u*t*my + t*t*by
		col, row := toCell(cam.WorldToScreen(wx, wy))
		c.overlay(col, row, '·', threadColor)
	}
}

func drawNoteCells(c *termCanvas, cam Camera, n *Note) {
	cx, cy := n.Center()
	s := n.Anim.Scale
	sx0, sy0 := cam.WorldToScreen(cx-n.W*s/2, cy-n.H*s/2)
	sx1, sy1 := cam.WorldToScreen(cx+n.W*s/2, cy+n.H*s/2)
	x0, y0 := toCell(sx0, sy0)
	x1, y1 := toCell(sx1, sy1)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	off := n.Anim.Offset * s * cam.Zoom
	dx := int(math.Round(off / cellWidth))
	dy := int(math.Round(off / cellHeight))
	if dx > 0 || dy > 0 {
		c.fill(x0+dx, y0+dy, x1+dx, y1+dy, ' ', cellStyle{bg: shadowColor(n.Anim.Blur)})
	}

	body := cellStyle{fg: inkColor, bg: n.Color}
	c.fill(x0, y0, x1, y1, ' ', body)

	tape := int(math.Max(1, math.Round(tapeWidth*s*cam.Zoom/cellWidth)))
	tx := (x0+x1)/2 - tape/2
	for x := tx; x < tx+tape; x++ {
		c.overlay(x, y0, '▒', "#f8fafc")
	}

	inner := x1 - x0 - 2
	if inner < 3 || y1-y0 < 3 {
		return
	}
	if n.TimeLabel != "" {
		c.text(x1-1-runewidth.StringWidth(n.TimeLabel), y0+1, n.TimeLabel, inkColor, x1-1)
	}

	lines := wrapText(cellMeasurer{cellWidth: cellWidth}, n.Text, float64(inner)*cellWidth)
	if !n.Expanded {
		lines, _ = collapseLines(lines)
	}
	top := y0 + 3
	if y1-y0 < 6 {
		top = y0 + 1
	}
	for i, line := range lines {
		row := top + i
		if row >= y1 {
			break
		}
		lx := x0 + 1 + (inner-runewidth.StringWidth(line))/2
		if lx < x0+1 {
			lx = x0 + 1
		}
		c.text(lx, row, line, inkColor, x1-1)
	}
}

// shadowColor darkens as the shadow softens, standing in for blur.
func shadowColor(blur float64) string {
	if blur > 25 {
		return "#08080f"
	}
	return "#101022"
}
