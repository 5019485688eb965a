package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func testZoomKeepsCursorFixed(t *rapid.T) {
	cam := Camera{
		X:    rapid.Float64Range(-5000, 5000).Draw(t, "x"),
		Y:    rapid.Float64Range(-5000, 5000).Draw(t, "y"),
		Zoom: rapid.Float64Range(minZoom, maxZoom).Draw(t, "zoom"),
	}
	sx := rapid.Float64Range(0, 2000).Draw(t, "sx")
	sy := rapid.Float64Range(0, 2000).Draw(t, "sy")
	delta := rapid.Float64Range(-3000, 3000).Draw(t, "delta")

	wx, wy := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(sx, sy, delta)

	if cam.Zoom < minZoom || cam.Zoom > maxZoom {
		t.Fatalf("zoom %v outside [%v, %v]", cam.Zoom, minZoom, maxZoom)
	}
	gx, gy := cam.ScreenToWorld(sx, sy)
	if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
		t.Fatalf("world point moved: (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
	}
}

func TestZoomKeepsCursorFixed(t *testing.T) {
	rapid.Check(t, testZoomKeepsCursorFixed)
}

func testScreenWorldRoundTrip(t *rapid.T) {
	cam := Camera{
		X:    rapid.Float64Range(-5000, 5000).Draw(t, "x"),
		Y:    rapid.Float64Range(-5000, 5000).Draw(t, "y"),
		Zoom: rapid.Float64Range(minZoom, maxZoom).Draw(t, "zoom"),
	}
	wx := rapid.Float64Range(-1e4, 1e4).Draw(t, "wx")
	wy := rapid.Float64Range(-1e4, 1e4).Draw(t, "wy")

	gx, gy := cam.ScreenToWorld(cam.WorldToScreen(wx, wy))
	if math.Abs(gx-wx) > 1e-6 || math.Abs(gy-wy) > 1e-6 {
		t.Fatalf("round trip (%v,%v) -> (%v,%v)", wx, wy, gx, gy)
	}
}

func TestScreenWorldRoundTrip(t *testing.T) {
	rapid.Check(t, testScreenWorldRoundTrip)
}

func TestZoomClamps(t *testing.T) {
	cam := newCamera()
	cam.ZoomAt(0, 0, -1e6)
	assert.Equal(t, maxZoom, cam.Zoom)

	cam.ZoomAt(0, 0, 1e6)
	assert.Equal(t, minZoom, cam.Zoom)

	cam.Zoom = 1
	cam.ZoomAt(0, 0, math.NaN())
	assert.Equal(t, 1.0, cam.Zoom)
}

func TestWheelStep(t *testing.T) {
	cam := newCamera()
	cam.ZoomAt(100, 100, -100)
	assert.InDelta(t, 1.1, cam.Zoom, 1e-9)
	assert.InDelta(t, -10, cam.X, 1e-9)
	assert.InDelta(t, -10, cam.Y, 1e-9)
}

func TestPanIgnoresZoom(t *testing.T) {
	cam := Camera{Zoom: 3}
	cam.Pan(10, -5)
	assert.Equal(t, Camera{X: 10, Y: -5, Zoom: 3}, cam)
}

func TestStripeOffset(t *testing.T) {
	assert.Equal(t, 0.0, stripeOffset(0, 40))
	assert.Equal(t, 10.0, stripeOffset(50, 40))
	assert.Equal(t, 30.0, stripeOffset(-10, 40))
	assert.Equal(t, 0.0, stripeOffset(15, 0))
}
