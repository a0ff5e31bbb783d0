package hexfolio

import (
	"github.com/phanxgames/hexfolio/hexgrid"
)

// Line widths in pixels.
const (
	fillEdgeWidth  = 1.0
	outlineWidth   = 1.25
	trailBaseWidth = 1.0
	trailGlowWidth = 2.0
	trailBaseAlpha = 0.06
)

// meshLayer splits one logical layer of geometry across as many mesh nodes
// as the uint16 index limit requires.
type meshLayer struct {
	parent   *Node
	blend    BlendMode
	chunks   []*Node
	builders []meshBuilder
	n        int
}

func (l *meshLayer) begin() {
	l.n = 0
	if len(l.builders) == 0 {
		l.builders = append(l.builders, meshBuilder{})
	}
	l.builders[0].reset()
}

// reserve returns a builder with room for v more vertices, opening a new
// chunk when the current one is full.
func (l *meshLayer) reserve(v int) *meshBuilder {
	if !l.builders[l.n].room(v) {
		l.n++
		if l.n == len(l.builders) {
			l.builders = append(l.builders, meshBuilder{})
		}
		l.builders[l.n].reset()
	}
	return &l.builders[l.n]
}

// end publishes the built geometry to the chunk nodes and hides the unused
// ones.
func (l *meshLayer) end() {
	for i := range l.builders {
		if i > l.n {
			break
		}
		if i == len(l.chunks) {
			chunk := NewMesh(l.parent.Name+"_chunk", nil, nil, nil)
			chunk.BlendMode = l.blend
			l.parent.AddChild(chunk)
			l.chunks = append(l.chunks, chunk)
		}
		b := &l.builders[i]
		c := l.chunks[i]
		c.Vertices = b.verts
		c.Indices = b.inds
		c.Visible = len(b.inds) > 0
		c.InvalidateMeshAABB()
	}
	for i := l.n + 1; i < len(l.chunks); i++ {
		l.chunks[i].Visible = false
	}
}

func (l *meshLayer) release() {
	l.chunks = nil
	l.builders = nil
	l.n = 0
}

// Surface draws an animated hexgrid.Field into the scene's world tree. Its
// node's OnUpdate syncs the field to the viewport, advances it, rebuilds the
// mesh geometry and sways the scene camera.
type Surface struct {
	scene *Scene
	node  *Node
	field *hexgrid.Field

	base meshLayer
	glow meshLayer

	edgeAlpha []float64
	sway      bool
	disposed  bool
}

// NewSurface creates a surface for cfg and adds it to the scene's world root.
func NewSurface(scene *Scene, cfg hexgrid.Config) *Surface {
	s := &Surface{
		scene: scene,
		node:  NewContainer("hexgrid"),
		field: hexgrid.NewField(cfg),
		sway:  true,
	}
	s.base = meshLayer{parent: NewContainer("hexgrid_base"), blend: BlendNormal}
	s.glow = meshLayer{parent: NewContainer("hexgrid_glow"), blend: BlendAdd}
	s.node.AddChild(s.base.parent)
	s.node.AddChild(s.glow.parent)
	s.node.OnUpdate = s.update
	scene.Root().AddChild(s.node)
	return s
}

// Node returns the surface's container node.
func (s *Surface) Node() *Node { return s.node }

// Field returns the underlying field.
func (s *Surface) Field() *hexgrid.Field { return s.field }

// SetSway enables or disables driving the scene camera's rotation and zoom.
func (s *Surface) SetSway(enabled bool) {
	s.sway = enabled
	if !enabled {
		s.scene.Camera().SetSway(0, 1)
	}
}

// Reconfigure swaps the grid configuration. Buffers are rebuilt on the next
// update.
func (s *Surface) Reconfigure(cfg hexgrid.Config) {
	if s.disposed {
		return
	}
	s.field.Reconfigure(cfg)
	s.edgeAlpha = nil
}

func (s *Surface) update(ft FrameTime) {
	if s.disposed {
		return
	}
	w, h := s.scene.Viewport()
	if s.field.Resize(w, h) {
		s.edgeAlpha = nil
		debugf("hexgrid rebuilt %vx%v: %d cells", w, h, len(s.field.Cells()))
	}
	s.field.Advance(ft)
	s.rebuild()

	if s.sway {
		rot, zoom := s.field.Sway()
		s.scene.Camera().SetSway(rot, zoom)
	}
}

// rebuild regenerates the geometry for the active mode.
func (s *Surface) rebuild() {
	s.base.begin()
	s.glow.begin()
	if !s.field.Empty() {
		switch s.field.Mode() {
		case hexgrid.ModeFill:
			s.buildFill()
		case hexgrid.ModeOverlapLine:
			s.buildOutlines()
		case hexgrid.ModeTrails:
			s.buildTrails()
		case hexgrid.ModeStrata:
			s.buildCells()
		}
	}
	s.base.end()
	s.glow.end()
}

func (s *Surface) cellColor(hue01, lightness, alpha float64) Color {
	c := hexgrid.CellColor(hue01, s.field.Config().Saturation, lightness)
	return Color{c.R, c.G, c.B, alpha}
}

func (s *Surface) buildCells() {
	cells, states := s.field.Cells(), s.field.States()
	for i := range cells {
		c, st := &cells[i], &states[i]
		b := s.base.reserve(7)
		b.hexagon(c.Center.X+st.Offset.X, c.Center.Y+st.Offset.Y, c.Radius*st.Scale,
			s.cellColor(c.Hue01, st.Lightness, st.Alpha))
	}
}

// buildFill draws the pulsing cells, then every shared edge with each
// endpoint lit by its vertex glow.
func (s *Surface) buildFill() {
	s.buildCells()

	cfg := s.field.Config()
	g := s.field.Graph()
	glow := s.field.VertexGlow()
	cells := s.field.Cells()
	baseL := cfg.Lightness / 100
	tu := cfg.Pulse
	endpoint := func(hue01 float64, v int) Color {
		p := glow[v]
		l := baseL + (p-0.5)*2*tu.LightAmp
		return s.cellColor(hue01, clampRange(l, 0.05, 0.95), lerp(tu.AlphaMin, tu.AlphaMax, p))
	}
	for _, e := range g.Edges {
		hue := cells[e.CellA].Hue01
		va, vb := g.Vertices[e.A], g.Vertices[e.B]
		b := s.base.reserve(4)
		b.segment(va.X, va.Y, vb.X, vb.Y, fillEdgeWidth, endpoint(hue, e.A), endpoint(hue, e.B))
	}
}

func (s *Surface) buildOutlines() {
	cells, states := s.field.Cells(), s.field.States()
	for i := range cells {
		c, st := &cells[i], &states[i]
		b := s.base.reserve(24)
		b.hexOutline(c.Center.X, c.Center.Y, c.Radius*st.Scale, outlineWidth,
			s.cellColor(c.Hue01, st.Lightness, st.Alpha))
	}
}

// buildTrails draws the faint graph, then the glowing edges additively.
// Edges that cooled this frame have their alpha zeroed.
func (s *Surface) buildTrails() {
	cfg := s.field.Config()
	g := s.field.Graph()
	tr := s.field.Trails()
	if len(s.edgeAlpha) != g.Len() {
		s.edgeAlpha = make([]float64, g.Len())
	}
	for _, e := range tr.Cooled() {
		s.edgeAlpha[e] = 0
	}
	tr.EachHot(func(e int, heat float64) {
		s.edgeAlpha[e] = heat
	})

	hue := cfg.Hue / 360
	baseL := cfg.Lightness / 100
	dim := s.cellColor(hue, baseL, trailBaseAlpha)
	for i, e := range g.Edges {
		va, vb := g.Vertices[e.A], g.Vertices[e.B]
		b := s.base.reserve(4)
		b.segment(va.X, va.Y, vb.X, vb.Y, trailBaseWidth, dim, dim)

		if a := s.edgeAlpha[i]; a > 0 {
			hot := s.cellColor(hue, clampRange(baseL+0.4, 0.05, 0.95), a)
			gb := s.glow.reserve(4)
			gb.segment(va.X, va.Y, vb.X, vb.Y, trailGlowWidth, hot, hot)
		}
	}
}

// EdgeAlpha returns the rendered alpha of edge e in trails mode.
func (s *Surface) EdgeAlpha(e int) float64 {
	if e < 0 || e >= len(s.edgeAlpha) {
		return 0
	}
	return s.edgeAlpha[e]
}

// Dispose stops the update callback, removes the surface from the scene and
// releases every buffer.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.node.OnUpdate = nil
	s.field.Dispose()
	s.base.release()
	s.glow.release()
	s.edgeAlpha = nil
	s.node.Dispose()
	if s.sway {
		s.scene.Camera().SetSway(0, 1)
	}
}

// IsDisposed reports whether Dispose has been called.
func (s *Surface) IsDisposed() bool {
	return s.disposed
}
