package hexfolio

import "math"

// Camera maps world space onto a screen-space viewport. World (X, Y) is drawn
// at the viewport centre, so a grid built around the origin fills the window
// one world unit per pixel at Zoom 1.
type Camera struct {
	// X and Y are the world-space position the camera centres on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

func newCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport, dirty: true}
}

// SyncViewport resizes the viewport to w x h pixels at the screen origin. It
// reports whether the size changed.
func (c *Camera) SyncViewport(w, h float64) bool {
	if c.Viewport.Width == w && c.Viewport.Height == h && c.Viewport.X == 0 && c.Viewport.Y == 0 {
		return false
	}
	c.Viewport = Rect{Width: w, Height: h}
	c.dirty = true
	return true
}

// SetSway sets rotation and zoom together.
func (c *Camera) SetSway(rotation, zoom float64) {
	if c.Rotation == rotation && c.Zoom == zoom {
		return
	}
	c.Rotation, c.Zoom = rotation, zoom
	c.dirty = true
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport centre.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	sin, cos := math.Sincos(-c.Rotation)
	z := c.Zoom

	c.viewMatrix = [6]float64{
		z * cos,
		z * sin,
		-z * sin,
		z * cos,
		cx + z*(-cos*c.X+sin*c.Y),
		cy + z*(-sin*c.X-cos*c.Y),
	}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return transformPoint(c.computeViewMatrix(), wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the world-space bounding box of the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix
	vp := c.Viewport

	x0, y0 := transformPoint(inv, vp.X, vp.Y)
	x1, y1 := transformPoint(inv, vp.X+vp.Width, vp.Y)
	x2, y2 := transformPoint(inv, vp.X+vp.Width, vp.Y+vp.Height)
	x3, y3 := transformPoint(inv, vp.X, vp.Y+vp.Height)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
