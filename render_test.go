package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgb(c color.Color) [3]uint32 {
	r, g, b, _ := c.RGBA()
	return [3]uint32{r >> 8, g >> 8, b >> 8}
}

func renderPNG(t *testing.T, b *Board, fonts *fontSet, width, height int) image.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, writeWallPNG(&buf, b, fonts, width, height))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	return img
}

func TestRenderEmptyWall(t *testing.T) {
	fonts, err := loadFonts()
	require.NoError(t, err)

	img := renderPNG(t, newTestBoard(t, 5), fonts, 200, 100)
	assert.Equal(t, [3]uint32{0x1a, 0x1a, 0x2e}, rgb(img.At(20, 50)))
	assert.Equal(t, [3]uint32{0x16, 0x21, 0x3e}, rgb(img.At(40, 50)))
}

func TestRenderDrawsNotes(t *testing.T) {
	fonts, err := loadFonts()
	require.NoError(t, err)
	b := newBoard(boardOptions{ts: fonts.typesetter()})
	require.True(t, b.Apply(DataArrived{Body: feedBody("hello")}))
	b.Notes()[0].Rotation = 0

	img := renderPNG(t, b, fonts, 400, 300)
	// Lower left of the first note, clear of text and shadow.
	assert.Equal(t, [3]uint32{0xfe, 0xf6, 0x8a}, rgb(img.At(60, 220)))
}

func TestWriteWallPNG(t *testing.T) {
	fonts, err := loadFonts()
	require.NoError(t, err)
	b := newTestBoard(t, 5)
	require.True(t, b.Apply(DataArrived{Body: feedBody("a", "b", "c")}))

	img := renderPNG(t, b, fonts, 320, 200)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	assert.Error(t, saveWallPNG(filepath.Join(t.TempDir(), "x.png"), b, fonts, 0, 10))
}

func TestExportRefitsExpandedNote(t *testing.T) {
	fonts, err := loadFonts()
	require.NoError(t, err)
	b := newTestBoard(t, 5)
	long := strings.TrimSpace(strings.Repeat("the wall keeps every answer ", 12))
	require.True(t, b.Apply(DataArrived{Body: feedBody(long)}))
	n := b.Notes()[0]
	n.Rotation = 0
	b.Apply(PointerDown{X: 150, Y: 140})
	b.Apply(PointerUp{X: 150, Y: 140})
	require.True(t, n.Expanded)

	ts := fonts.typesetter()
	drawn := drawnNote(n, ts)
	assert.NotSame(t, n, drawn)
	assert.Greater(t, drawn.H, n.H)
	block := float64(len(ts.noteLines(drawn))) * ts.lineHeight
	assert.LessOrEqual(t, block, drawn.H-textTop-textBottom)

	img := renderPNG(t, b, fonts, 500, 1200)
	// Lower left corner of the refitted note, below where the board's
	// terminal-sized note ends.
	assert.Equal(t, [3]uint32{0xfe, 0xf6, 0x8a}, rgb(img.At(int(n.X)+8, int(n.Y+drawn.H)-8)))

	collapsed := &Note{W: noteWidth, H: noteHeight}
	assert.Same(t, collapsed, drawnNote(collapsed, ts))
}

func TestFontTypesetterWraps(t *testing.T) {
	fonts, err := loadFonts()
	require.NoError(t, err)
	ts := fonts.typesetter()

	assert.Greater(t, ts.measurer.MeasureString("wide words"), ts.measurer.MeasureString("wide"))
	n := &Note{W: noteWidth, H: noteHeight, Text: "the quick brown fox jumps over the lazy dog again and again"}
	lines := ts.noteLines(n)
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		if line == expandHint {
			continue
		}
		assert.LessOrEqual(t, ts.measurer.MeasureString(line), noteWidth-textInset)
	}
}
