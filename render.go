package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	bodyFontSize   = 24.0
	labelFontSize  = 14.0
	bodyLineHeight = 30.0
	shadowSteps    = 4
)

type fontSet struct {
	body  font.Face
	label font.Face
}

func loadFonts() (*fontSet, error) {
	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	face := func(size float64) font.Face {
		return truetype.NewFace(ttf, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	return &fontSet{body: face(bodyFontSize), label: face(labelFontSize)}, nil
}

// faceMeasurer measures strings with a font face.
type faceMeasurer struct {
	face font.Face
}

func (m faceMeasurer) MeasureString(s string) float64 {
	return float64(font.MeasureString(m.face, s)) / 64
}

func (f *fontSet) typesetter() typesetter {
	return typesetter{measurer: faceMeasurer{face: f.body}, lineHeight: bodyLineHeight}
}

// renderWall draws one frame of the board onto dc: background stripes,
// then threads and notes under the camera transform.
func renderWall(dc *gg.Context, b *Board, fonts *fontSet) {
	width, height := float64(dc.Width()), float64(dc.Height())
	cam := b.Camera()

	dc.Identity()
	dc.SetHexColor(wallBackground)
	dc.Clear()

	spacing := stripeSpacing * cam.Zoom
	dc.SetHexColor(wallStripe)
	dc.SetLineWidth(2)
	for x := stripeOffset(cam.X, spacing); x < width; x += spacing {
		dc.DrawLine(x, 0, x, height)
	}
	dc.Stroke()

	dc.Push()
	dc.Translate(cam.X, cam.Y)
	dc.Scale(cam.Zoom, cam.Zoom)

	notes := b.Notes()
	drawThreads(dc, notes)
	ts := fonts.typesetter()
	for _, n := range notes {
		drawNote(dc, drawnNote(n, ts), fonts, ts)
	}
	dc.Pop()
}

// drawThreads strings consecutive notes together in list order.
func drawThreads(dc *gg.Context, notes []*Note) {
	if len(notes) < 2 {
		return
	}
	dc.SetHexColor(threadColor)
	dc.SetLineWidth(2)
	for i := 1; i < len(notes); i++ {
		ax, ay := notes[i-1].Anchor()
		bx, by := notes[i].Anchor()
		dc.MoveTo(ax, ay)
		dc.QuadraticTo((ax+bx)/2, math.Max(ay, by)+threadDroop, bx, by)
	}
	dc.Stroke()
}

// drawnNote sizes an expanded note for the typesetter doing the drawing.
// The board may have fitted it with a different one.
func drawnNote(n *Note, ts typesetter) *Note {
	if !n.Expanded {
		return n
	}
	c := *n
	c.fit(ts)
	return &c
}

func drawNote(dc *gg.Context, n *Note, fonts *fontSet, ts typesetter) {
	cx, cy := n.Center()
	halfW, halfH := n.W/2, n.H/2

	dc.Push()
	defer dc.Pop()
	dc.Translate(cx, cy)
	dc.Rotate(gg.Radians(n.Rotation))
	dc.Scale(n.Anim.Scale, n.Anim.Scale)

	// Soft shadow: stacked translucent rounds widening with blur.
	off := n.Anim.Offset
	for i := shadowSteps; i >= 1; i-- {
		spread := n.Anim.Blur * float64(i) / shadowSteps / 2
		dc.SetRGBA(0, 0, 0, 0.5/shadowSteps)
		dc.DrawRoundedRectangle(-halfW+off-spread, -halfH+off-spread, n.W+2*spread, n.H+2*spread, spread)
		dc.Fill()
	}

	dc.SetHexColor(n.Color)
	dc.DrawRectangle(-halfW, -halfH, n.W, n.H)
	dc.Fill()

	dc.SetRGBA(1, 1, 1, 0.4)
	dc.DrawRectangle(-tapeWidth/2, -halfH-tapeHeight/2, tapeWidth, tapeHeight)
	dc.Fill()

	dc.SetHexColor(inkColor)
	if n.TimeLabel != "" {
		dc.SetFontFace(fonts.label)
		dc.DrawStringAnchored(n.TimeLabel, halfW-10, -halfH+25, 1, 0.5)
	}

	dc.SetFontFace(fonts.body)
	lines := ts.noteLines(n)
	block := float64(len(lines)) * ts.lineHeight
	avail := n.H - textTop - textBottom
	startY := -halfH + textTop + (avail-block)/2 + ts.lineHeight/2
	if block > avail {
		startY = -halfH + textTop + ts.lineHeight/2
	}
	for i, line := range lines {
		dc.DrawStringAnchored(line, 0, startY+float64(i)*ts.lineHeight, 0.5, 0.5)
	}
}

func writeWallPNG(w io.Writer, b *Board, fonts *fontSet, width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	renderWall(dc, b, fonts)
	return dc.EncodePNG(w)
}

func saveWallPNG(path string, b *Board, fonts *fontSet, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeWallPNG(f, b, fonts, width, height); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
