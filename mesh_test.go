package hexfolio

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestMeshBuilderHexagon(t *testing.T) {
	var b meshBuilder
	b.hexagon(0, 0, 10, ColorWhite)
	if len(b.verts) != 7 || len(b.inds) != 18 {
		t.Fatalf("verts=%d inds=%d, want 7 and 18", len(b.verts), len(b.inds))
	}
	for i, v := range b.verts[1:] {
		if d := math.Hypot(float64(v.DstX), float64(v.DstY)); !approxEqual(d, 10, 1e-4) {
			t.Errorf("corner %d at distance %f, want 10", i, d)
		}
	}
}

func TestMeshBuilderSegment(t *testing.T) {
	var b meshBuilder
	b.segment(0, 0, 10, 0, 2, ColorWhite, ColorWhite)
	if len(b.verts) != 4 || len(b.inds) != 6 {
		t.Fatalf("verts=%d inds=%d, want 4 and 6", len(b.verts), len(b.inds))
	}
	if b.verts[0].DstY != 1 || b.verts[1].DstY != -1 {
		t.Errorf("half width offsets = %v, %v; want 1, -1", b.verts[0].DstY, b.verts[1].DstY)
	}
	b.reset()
	b.segment(3, 3, 3, 3, 2, ColorWhite, ColorWhite)
	if len(b.verts) != 0 {
		t.Error("zero-length segment should emit nothing")
	}
}

func TestMeshBuilderRoom(t *testing.T) {
	var b meshBuilder
	b.verts = make([]ebiten.Vertex, maxMeshVertices-3)
	if !b.room(3) {
		t.Error("room(3) = false at the limit")
	}
	if b.room(4) {
		t.Error("room(4) = true past the limit")
	}
}

func TestRoundedRectBounds(t *testing.T) {
	n := NewRoundedRect("rr", 80, 40, 10, ColorWhite)
	b := n.MeshBounds()
	if !approxEqual(b.X, 0, 1e-4) || !approxEqual(b.Y, 0, 1e-4) ||
		!approxEqual(b.Width, 80, 1e-4) || !approxEqual(b.Height, 40, 1e-4) {
		t.Errorf("bounds = %v, want 0,0 80x40", b)
	}
}

func TestRoundedRectClampsRadius(t *testing.T) {
	var b meshBuilder
	b.roundedRect(10, 4, 50, ColorWhite)
	for _, v := range b.verts {
		if v.DstX < -1e-4 || v.DstX > 10+1e-4 || v.DstY < -1e-4 || v.DstY > 4+1e-4 {
			t.Fatalf("vertex (%v, %v) outside 10x4", v.DstX, v.DstY)
		}
	}
}

func TestTransformVerticesPremultiplies(t *testing.T) {
	src := []ebiten.Vertex{{DstX: 1, DstY: 2, ColorR: 1, ColorG: 0.5, ColorB: 0, ColorA: 0.5}}
	dst := make([]ebiten.Vertex, 1)
	transformVertices(src, dst, [6]float64{2, 0, 0, 2, 10, 10}, Color{1, 1, 1, 0.5})
	v := dst[0]
	if v.DstX != 12 || v.DstY != 14 {
		t.Errorf("position = (%v, %v), want (12, 14)", v.DstX, v.DstY)
	}
	if !approxEqual(float64(v.ColorA), 0.25, 1e-6) || !approxEqual(float64(v.ColorR), 0.25, 1e-6) {
		t.Errorf("color = %v/%v, want premultiplied 0.25/0.25", v.ColorR, v.ColorA)
	}
}
