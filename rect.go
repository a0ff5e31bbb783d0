package hexfolio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// scaleEpsilon is how close to 1 both scale factors must be for a measured
// rect to be used as is.
const scaleEpsilon = 0.001

// TransformMatrix is a computed 2D or 3D transform. M is the 4x4 matrix in
// column-major order, the layout of matrix3d(). A 2D matrix(a, b, c, d, e, f)
// occupies M[0], M[1], M[4], M[5], M[12] and M[13].
type TransformMatrix struct {
	M    [16]float64
	Is2D bool
}

// IdentityTransform returns the 2D identity.
func IdentityTransform() TransformMatrix {
	return Matrix2D(1, 0, 0, 1, 0, 0)
}

// Matrix2D builds the equivalent of matrix(a, b, c, d, e, f).
func Matrix2D(a, b, c, d, e, f float64) TransformMatrix {
	m := TransformMatrix{Is2D: true}
	m.M[0], m.M[1] = a, b
	m.M[4], m.M[5] = c, d
	m.M[10], m.M[15] = 1, 1
	m.M[12], m.M[13] = e, f
	return m
}

// ScaleTransform returns a 2D scale about the origin.
func ScaleTransform(sx, sy float64) TransformMatrix {
	return Matrix2D(sx, 0, 0, sy, 0, 0)
}

// Scale returns the x and y scale factors: the lengths of the first two
// basis columns.
func (m TransformMatrix) Scale() (sx, sy float64) {
	if m.Is2D {
		return math.Hypot(m.M[0], m.M[1]), math.Hypot(m.M[4], m.M[5])
	}
	return math.Sqrt(m.M[0]*m.M[0] + m.M[1]*m.M[1] + m.M[2]*m.M[2]),
		math.Sqrt(m.M[4]*m.M[4] + m.M[5]*m.M[5] + m.M[6]*m.M[6])
}

// String formats m as a CSS transform value.
func (m TransformMatrix) String() string {
	var vals []float64
	name := "matrix3d"
	if m.Is2D {
		name = "matrix"
		vals = []float64{m.M[0], m.M[1], m.M[4], m.M[5], m.M[12], m.M[13]}
	} else {
		vals = m.M[:]
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

var errTransformSyntax = errors.New("unsupported transform syntax")

// ParseTransform parses a computed transform: "none", "matrix(...)" with six
// values or "matrix3d(...)" with sixteen. An empty string is "none".
func ParseTransform(css string) (TransformMatrix, error) {
	s := strings.TrimSpace(css)
	if s == "" || s == "none" {
		return IdentityTransform(), nil
	}
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return TransformMatrix{}, fmt.Errorf("hexfolio: parse transform %q: %w", css, errTransformSyntax)
	}
	name := strings.TrimSpace(s[:open])
	fields := strings.Split(s[open+1:len(s)-1], ",")
	vals := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return TransformMatrix{}, fmt.Errorf("hexfolio: parse transform %q: %w", css, err)
		}
		vals[i] = v
	}

	switch {
	case name == "matrix" && len(vals) == 6:
		return Matrix2D(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), nil
	case name == "matrix3d" && len(vals) == 16:
		var m TransformMatrix
		copy(m.M[:], vals)
		return m, nil
	}
	return TransformMatrix{}, fmt.Errorf("hexfolio: parse transform %q: %w", css, errTransformSyntax)
}

// Element is anything whose on-screen box can be measured.
type Element interface {
	// BoundingRect returns the rendered box, including any active scale.
	BoundingRect() Rect
	// ComputedTransform returns the transform scaling the rendered box.
	ComputedTransform() TransformMatrix
	// IsConnected reports whether the element is still on screen.
	IsConnected() bool
}

// MeasureFunc measures an element's stable box. It reports false when the
// element can no longer be measured.
type MeasureFunc func(Element) (Rect, bool)

// StableRect removes the scale of m from raw. When both scale factors are
// within 0.001 of 1, or m is degenerate, raw is returned unchanged. Otherwise
// the unscaled box is rebuilt around raw's centre.
func StableRect(raw Rect, m TransformMatrix) Rect {
	sx, sy := m.Scale()
	if math.Abs(sx-1) <= scaleEpsilon && math.Abs(sy-1) <= scaleEpsilon {
		return raw
	}
	if sx < 1e-9 || sy < 1e-9 {
		return raw
	}
	c := raw.Center()
	w, h := raw.Width/sx, raw.Height/sy
	return Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// MeasureStable measures el with StableRect. It reports false for a nil or
// disconnected element.
func MeasureStable(el Element) (Rect, bool) {
	if el == nil || !el.IsConnected() {
		return Rect{}, false
	}
	return StableRect(el.BoundingRect(), el.ComputedTransform()), true
}

// NodeElement exposes a node with a Width x Height layout box in local
// coordinates as an Element measured in screen pixels. Nodes in the world
// tree are projected through the scene camera.
type NodeElement struct {
	Scene  *Scene
	Node   *Node
	Width  float64
	Height float64
}

// NewNodeElement wraps node with a w x h layout box.
func NewNodeElement(scene *Scene, node *Node, w, h float64) *NodeElement {
	return &NodeElement{Scene: scene, Node: node, Width: w, Height: h}
}

// screenTransform returns the node's current local-to-screen transform,
// computed from its ancestors rather than the last traversal.
func (e *NodeElement) screenTransform() [6]float64 {
	m := identityTransform
	for p := e.Node; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	if e.Scene != nil && e.Node.IsConnected(e.Scene.root) {
		m = multiplyAffine(e.Scene.camera.computeViewMatrix(), m)
	}
	return m
}

// BoundingRect returns the screen-space AABB of the layout box.
func (e *NodeElement) BoundingRect() Rect {
	m := e.screenTransform()
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, e.Width, 0)
	x2, y2 := transformPoint(m, e.Width, e.Height)
	x3, y3 := transformPoint(m, 0, e.Height)
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ComputedTransform returns the accumulated screen transform.
func (e *NodeElement) ComputedTransform() TransformMatrix {
	m := e.screenTransform()
	return Matrix2D(m[0], m[1], m[2], m[3], m[4], m[5])
}

// IsConnected reports whether the node is alive under one of the scene's
// roots.
func (e *NodeElement) IsConnected() bool {
	if e.Node == nil || e.Node.IsDisposed() {
		return false
	}
	if e.Scene == nil {
		return true
	}
	return e.Node.IsConnected(e.Scene.root) || e.Node.IsConnected(e.Scene.ui)
}
