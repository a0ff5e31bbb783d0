package hexfolio

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/hexfolio/hexgrid"
)

// maxMeshVertices is the most vertices a single uint16-indexed mesh can
// address.
const maxMeshVertices = math.MaxUint16 + 1

// transformVertices applies an affine transform and tint to src, writing
// premultiplied colors into dst. dst must be at least len(src) long.
//
// Matrix layout: [0]=a, [1]=b, [2]=c, [3]=d, [4]=tx, [5]=ty
func transformVertices(src, dst []ebiten.Vertex, transform [6]float64, tint Color) {
	a, b, c, d, tx, ty := transform[0], transform[1], transform[2], transform[3], transform[4], transform[5]
	cr := float32(tint.R)
	cg := float32(tint.G)
	cb := float32(tint.B)
	ca := float32(tint.A)

	for i := range src {
		s := &src[i]
		ox := float64(s.DstX)
		oy := float64(s.DstY)
		alpha := s.ColorA * ca
		dst[i] = ebiten.Vertex{
			DstX:   float32(a*ox + c*oy + tx),
			DstY:   float32(b*ox + d*oy + ty),
			SrcX:   s.SrcX,
			SrcY:   s.SrcY,
			ColorR: s.ColorR * cr * alpha,
			ColorG: s.ColorG * cg * alpha,
			ColorB: s.ColorB * cb * alpha,
			ColorA: alpha,
		}
	}
}

// computeMeshAABB returns the local-space bounding box of the vertices.
func computeMeshAABB(verts []ebiten.Vertex) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	minX, minY := float64(verts[0].DstX), float64(verts[0].DstY)
	maxX, maxY := minX, minY
	for i := 1; i < len(verts); i++ {
		x, y := float64(verts[i].DstX), float64(verts[i].DstY)
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// ensureTransformedVerts grows the node's transform buffer to the high-water
// mark of len(n.Vertices). It never shrinks.
func ensureTransformedVerts(n *Node) []ebiten.Vertex {
	need := len(n.Vertices)
	if cap(n.transformedVerts) < need {
		n.transformedVerts = make([]ebiten.Vertex, need)
	}
	n.transformedVerts = n.transformedVerts[:need]
	return n.transformedVerts
}

// InvalidateMeshAABB marks the cached bounds stale. Call it after editing
// Vertices.
func (n *Node) InvalidateMeshAABB() {
	n.meshAABBDirty = true
}

// MeshBounds returns the local-space bounds of a mesh node.
func (n *Node) MeshBounds() Rect {
	if n.meshAABBDirty {
		n.meshAABB = computeMeshAABB(n.Vertices)
		n.meshAABBDirty = false
	}
	return n.meshAABB
}

// --- White pixel singleton ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily created 1x1 white image used by
// untextured meshes and solid rectangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// --- Mesh building ---

// meshBuilder accumulates untextured, vertex-colored triangles. Vertex
// colors are straight (not premultiplied) and are premultiplied at draw time.
type meshBuilder struct {
	verts []ebiten.Vertex
	inds  []uint16
}

func (b *meshBuilder) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// room reports whether n more vertices fit under the uint16 index limit.
func (b *meshBuilder) room(n int) bool {
	return len(b.verts)+n <= maxMeshVertices
}

func (b *meshBuilder) vertex(x, y float64, c Color) uint16 {
	i := uint16(len(b.verts))
	b.verts = append(b.verts, ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 0.5, SrcY: 0.5,
		ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
	})
	return i
}

// hexagon appends a filled pointy-top hexagon as a six-triangle fan.
func (b *meshBuilder) hexagon(cx, cy, radius float64, c Color) {
	center := b.vertex(cx, cy, c)
	for k := 0; k < 6; k++ {
		x, y := hexCorner(cx, cy, radius, k)
		b.vertex(x, y, c)
	}
	for k := uint16(0); k < 6; k++ {
		b.inds = append(b.inds, center, center+1+k, center+1+(k+1)%6)
	}
}

// segment appends a line of the given width from (x0,y0) to (x1,y1) with a
// color per endpoint.
func (b *meshBuilder) segment(x0, y0, x1, y1, width float64, c0, c1 Color) {
	dx, dy := x1-x0, y1-y0
	ln := math.Hypot(dx, dy)
	if ln < 1e-10 {
		return
	}
	nx, ny := -dy/ln*width/2, dx/ln*width/2
	v := b.vertex(x0+nx, y0+ny, c0)
	b.vertex(x0-nx, y0-ny, c0)
	b.vertex(x1+nx, y1+ny, c1)
	b.vertex(x1-nx, y1-ny, c1)
	b.inds = append(b.inds, v, v+1, v+2, v+1, v+3, v+2)
}

// hexOutline appends the six sides of a pointy-top hexagon.
func (b *meshBuilder) hexOutline(cx, cy, radius, width float64, c Color) {
	for k := 0; k < 6; k++ {
		x0, y0 := hexCorner(cx, cy, radius, k)
		x1, y1 := hexCorner(cx, cy, radius, (k+1)%6)
		b.segment(x0, y0, x1, y1, width, c, c)
	}
}

// roundedRect appends a filled w x h rectangle at the origin with corners of
// the given radius, as a fan around its centre.
func (b *meshBuilder) roundedRect(w, h, radius float64, c Color) {
	radius = math.Max(0, math.Min(radius, math.Min(w, h)/2))
	const arcSteps = 6
	center := b.vertex(w/2, h/2, c)
	corners := [4][3]float64{
		{w - radius, radius, -math.Pi / 2},
		{w - radius, h - radius, 0},
		{radius, h - radius, math.Pi / 2},
		{radius, radius, math.Pi},
	}
	first := uint16(len(b.verts))
	for _, k := range corners {
		for s := 0; s <= arcSteps; s++ {
			ang := k[2] + float64(s)/arcSteps*math.Pi/2
			sin, cos := math.Sincos(ang)
			b.vertex(k[0]+radius*cos, k[1]+radius*sin, c)
		}
	}
	n := uint16(len(b.verts)) - first
	for i := uint16(0); i < n; i++ {
		b.inds = append(b.inds, center, first+i, first+(i+1)%n)
	}
}

func hexCorner(cx, cy, radius float64, k int) (float64, float64) {
	p := hexgrid.Corner(hexgrid.Point{X: cx, Y: cy}, radius, k)
	return p.X, p.Y
}

// NewRoundedRect creates a mesh node filled with a w x h rounded rectangle
// whose top-left corner is at the node origin.
func NewRoundedRect(name string, w, h, radius float64, c Color) *Node {
	var b meshBuilder
	b.roundedRect(w, h, radius, c)
	return NewMesh(name, nil, b.verts, b.inds)
}
