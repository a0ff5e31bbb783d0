package hexgrid

import "math"

// Field owns every buffer of one animated grid: cells, edge graph, trail
// state and per-frame attributes. Nothing is shared between Fields. Buffers
// are rebuilt on Resize and released on Dispose.
type Field struct {
	cfg  Config
	anim Animator

	width, height float64

	cells      []Cell
	states     []CellState
	graph      *EdgeGraph
	trails     *Trails
	vertexGlow []float64
	elapsed    float64
	built      bool
	disposed   bool
}

// NewField creates an empty field. Call Resize before the first Advance.
func NewField(cfg Config) *Field {
	cfg = cfg.WithDefaults()
	return &Field{cfg: cfg, anim: Animator{Tuning: cfg.Pulse}}
}

// Config returns the field's effective configuration.
func (f *Field) Config() Config {
	return f.cfg
}

// Mode returns the active visual mode.
func (f *Field) Mode() Mode {
	return f.cfg.Mode
}

// Size returns the viewport size the field was last built for.
func (f *Field) Size() (width, height float64) {
	return f.width, f.height
}

// Resize rebuilds the field for a new viewport. It reports whether anything
// was rebuilt. A zero-area viewport empties the field.
func (f *Field) Resize(width, height float64) bool {
	if f.disposed || (f.built && width == f.width && height == f.height) {
		return false
	}
	f.width, f.height = width, height
	f.release()
	f.built = true

	f.cells = Build(width, height, f.cfg)
	if len(f.cells) == 0 {
		return true
	}
	f.states = make([]CellState, len(f.cells))

	switch f.cfg.Mode {
	case ModeFill:
		f.graph = NewEdgeGraph(f.cells)
		f.vertexGlow = make([]float64, len(f.graph.Vertices))
	case ModeTrails:
		f.graph = NewEdgeGraph(f.cells)
		// Walkers use their own stream so cell jitter stays independent of
		// the trail count.
		f.trails = NewTrails(f.graph, f.cfg.Trails, newRand(f.cfg.Seed+1))
	}
	f.Advance(FrameTime{Elapsed: f.elapsed})
	return true
}

// Reconfigure swaps the configuration and rebuilds for the current size.
func (f *Field) Reconfigure(cfg Config) {
	f.cfg = cfg.WithDefaults()
	f.anim = Animator{Tuning: f.cfg.Pulse}
	f.built = false
	f.Resize(f.width, f.height)
}

// Advance recomputes every per-frame attribute for the active mode.
func (f *Field) Advance(ft FrameTime) {
	f.elapsed = ft.Elapsed
	if len(f.cells) == 0 {
		return
	}
	baseL := f.cfg.Lightness / 100
	t := ft.Elapsed

	switch f.cfg.Mode {
	case ModeFill:
		for i := range f.cells {
			f.states[i] = f.anim.Animate(&f.cells[i], t, baseL)
		}
		for v := range f.vertexGlow {
			glow := 0.0
			for _, ci := range f.graph.VertexCells(v) {
				glow = math.Max(glow, f.states[ci].Pulse)
			}
			f.vertexGlow[v] = glow
		}
	case ModeOverlapLine:
		for i := range f.cells {
			f.states[i] = f.anim.Animate(&f.cells[i], t, baseL)
		}
	case ModeTrails:
		for i := range f.cells {
			f.states[i] = CellState{Scale: 1, Alpha: f.anim.Tuning.AlphaMin, Lightness: baseL}
		}
		f.trails.Advance(ft.Delta)
	case ModeStrata:
		f.advanceStrata(t, baseL)
	}
}

func (f *Field) advanceStrata(t, baseL float64) {
	o := f.cfg.Strata
	for i := range f.cells {
		c := &f.cells[i]
		wave := 2 * math.Pi * (float64(c.Row)/o.BandRows - o.Speed*t)
		// A small per-cell phase keeps the bands from looking ruled.
		p := 0.5 + 0.5*math.Sin(wave+0.35*math.Sin(c.Phase))
		st := f.anim.fromPulse(p, baseL)
		st.Scale = lerp(f.anim.Tuning.ScaleMin, f.anim.Tuning.ScaleMax, p)
		st.Alpha = lerp(f.anim.Tuning.AlphaMin, f.anim.Tuning.AlphaMax, p)
		st.Offset = Point{Y: (p - 0.5) * 2 * o.Displacement}
		f.states[i] = st
	}
}

// Cells returns the cell list. It must not be mutated.
func (f *Field) Cells() []Cell { return f.cells }

// States returns the per-cell state of the last Advance, parallel to Cells.
func (f *Field) States() []CellState { return f.states }

// Graph returns the edge graph, or nil in modes that do not use one.
func (f *Field) Graph() *EdgeGraph { return f.graph }

// Trails returns the trail state in ModeTrails, nil otherwise.
func (f *Field) Trails() *Trails { return f.trails }

// VertexGlow returns the per-vertex edge intensity in ModeFill: the strongest
// pulse among the cells sharing each vertex.
func (f *Field) VertexGlow() []float64 { return f.vertexGlow }

// Sway returns the global rotation and zoom for the last advanced time.
func (f *Field) Sway() (rotation, zoom float64) {
	return Sway(f.cfg.Sway, f.elapsed)
}

// Empty reports whether the field has nothing to render.
func (f *Field) Empty() bool {
	return len(f.cells) == 0
}

func (f *Field) release() {
	if f.trails != nil {
		f.trails.Reset()
	}
	f.cells = nil
	f.states = nil
	f.graph = nil
	f.trails = nil
	f.vertexGlow = nil
}

// Dispose releases every buffer. A disposed field ignores Resize.
func (f *Field) Dispose() {
	f.release()
	f.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (f *Field) IsDisposed() bool {
	return f.disposed
}
