package main

import "math"

// Camera maps world coordinates onto the screen: screen = world*Zoom + (X, Y).
type Camera struct {
	X    float64
	Y    float64
	Zoom float64
}

func newCamera() Camera {
	return Camera{Zoom: 1}
}

func (c Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.X) / c.Zoom, (sy - c.Y) / c.Zoom
}

func (c Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*c.Zoom + c.X, wy*c.Zoom + c.Y
}

// Pan moves the view by a screen-space delta. The delta is not divided by
// zoom, so panning speed is the same at every zoom level.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// ZoomAt applies a wheel step at screen point (sx, sy), keeping the world
// point under it fixed.
func (c *Camera) ZoomAt(sx, sy, deltaY float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clampZoom(c.Zoom - deltaY*zoomSensitivity)
	c.X = sx - wx*c.Zoom
	c.Y = sy - wy*c.Zoom
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	return math.Max(minZoom, math.Min(maxZoom, z))
}

// stripeOffset returns where the first background stripe starts on screen
// for a pan offset, so the pattern scrolls with the wall.
func stripeOffset(pan, spacing float64) float64 {
	if spacing <= 0 {
		return 0
	}
	off := math.Mod(pan, spacing)
	if off < 0 {
		off += spacing
	}
	return off
}
