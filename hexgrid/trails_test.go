package hexgrid

import (
	"math"
	"testing"
)

// singleEdgeGraph builds a graph with one edge between two vertices.
func singleEdgeGraph() *EdgeGraph {
	return &EdgeGraph{
		Vertices: []Point{{0, 0}, {1, 0}},
		Edges:    []Edge{{A: 0, B: 1, CellA: 0, CellB: -1}},
		byVertex: [][]int{{0}, {0}},
	}
}

func TestWalkerRespawnsOnDeadEnd(t *testing.T) {
	g := singleEdgeGraph()
	rng := newRand(7)
	w := Walker{Edge: 0, Head: 1}
	for i := 0; i < 20; i++ {
		e, respawned := w.Step(g, rng, true)
		if !respawned {
			t.Fatalf("step %d: expected respawn on a single edge with avoidBacktrack", i)
		}
		if e != 0 || (w.Head != 0 && w.Head != 1) {
			t.Fatalf("step %d: walker at edge %d head %d", i, e, w.Head)
		}
	}
}

func TestWalkerBacktracksWhenAllowed(t *testing.T) {
	g := singleEdgeGraph()
	w := Walker{Edge: 0, Head: 1}
	e, respawned := w.Step(g, newRand(1), false)
	if respawned || e != 0 || w.Head != 0 {
		t.Errorf("got edge %d head %d respawned %v, want edge 0 head 0 without respawn", e, w.Head, respawned)
	}
}

func TestWalkerMovesAlongIncidentEdges(t *testing.T) {
	g := NewEdgeGraph(Build(300, 300, DefaultConfig()))
	rng := newRand(3)
	var w Walker
	w.Spawn(g, rng)
	for i := 0; i < 500; i++ {
		prevEdge, prevHead := w.Edge, w.Head
		e, respawned := w.Step(g, rng, true)
		if respawned {
			continue
		}
		if e == prevEdge {
			t.Fatalf("step %d backtracked onto edge %d", i, e)
		}
		edge := g.Edges[e]
		if edge.A != prevHead && edge.B != prevHead {
			t.Fatalf("step %d: edge %d does not touch previous head %d", i, e, prevHead)
		}
		if w.Head == prevHead || (w.Head != edge.A && w.Head != edge.B) {
			t.Fatalf("step %d: head %d not at far end of edge %+v", i, w.Head, edge)
		}
	}
}

func TestTrailsNoEdgesNoWalkers(t *testing.T) {
	tr := NewTrails(NewEdgeGraph(nil), TrailOptions{TrailCount: 5, StepsPerSecond: 10, FadeSeconds: 1}, newRand(1))
	if len(tr.Walkers()) != 0 {
		t.Fatalf("walkers = %d, want 0", len(tr.Walkers()))
	}
	tr.Advance(1)
	if tr.ActiveCount() != 0 {
		t.Errorf("active = %d, want 0", tr.ActiveCount())
	}
}

func TestTrailsHeatDecay(t *testing.T) {
	g := NewEdgeGraph(Build(200, 200, DefaultConfig()))
	const fade = 0.8
	tr := NewTrails(g, TrailOptions{TrailCount: 0, StepsPerSecond: 10, FadeSeconds: fade}, newRand(1))
	tr.Light(4)

	elapsed := 0.0
	for _, dt := range []float64{1.0 / 60, 0.05, 0.1, 1.0 / 30, 0.2} {
		tr.Advance(dt)
		elapsed += dt
		want := math.Exp(-elapsed / fade)
		if got := tr.Heat(4); !approxEqual(got, want, 1e-9) {
			t.Fatalf("after %.4fs heat = %v, want %v", elapsed, got, want)
		}
	}

	// ln(100)·fade seconds brings heat under the floor.
	for i := 0; i < 400 && tr.ActiveCount() > 0; i++ {
		tr.Advance(1.0 / 60)
		elapsed += 1.0 / 60
	}
	if tr.ActiveCount() != 0 {
		t.Fatalf("edge still active after %.2fs", elapsed)
	}
	if elapsed < fade*math.Log(100)-1.0/60 {
		t.Errorf("edge removed after %.3fs, before heat fell below %v", elapsed, heatFloor)
	}
}

func TestTrailsCooledReported(t *testing.T) {
	g := NewEdgeGraph(Build(200, 200, DefaultConfig()))
	tr := NewTrails(g, TrailOptions{FadeSeconds: 0.1}, newRand(1))
	tr.Light(2)
	tr.Advance(1)
	cooled := tr.Cooled()
	if len(cooled) != 1 || cooled[0] != 2 {
		t.Fatalf("cooled = %v, want [2]", cooled)
	}
	if tr.Heat(2) != 0 {
		t.Errorf("heat of cooled edge = %v, want 0", tr.Heat(2))
	}
	tr.Advance(0.01)
	if len(tr.Cooled()) != 0 {
		t.Errorf("cooled list not cleared: %v", tr.Cooled())
	}
}

func TestTrailsStepCadenceIndependentOfFrameRate(t *testing.T) {
	g := NewEdgeGraph(Build(300, 300, DefaultConfig()))
	// Binary-exact intervals keep both accumulators on identical step counts.
	opts := TrailOptions{TrailCount: 1, StepsPerSecond: 8, FadeSeconds: 100, AvoidBacktrack: true}

	fast := NewTrails(g, opts, newRand(9))
	for i := 0; i < 128; i++ {
		fast.Advance(1.0 / 128)
	}
	slow := NewTrails(g, opts, newRand(9))
	for i := 0; i < 4; i++ {
		slow.Advance(0.25)
	}
	// Same seed and same number of steps: the walkers end on the same edge.
	if fast.Walkers()[0] != slow.Walkers()[0] {
		t.Errorf("walker at %+v (128 fps) vs %+v (4 fps)", fast.Walkers()[0], slow.Walkers()[0])
	}
}

func TestTrailsLitEdgesStartAtFullHeat(t *testing.T) {
	g := NewEdgeGraph(Build(300, 300, DefaultConfig()))
	tr := NewTrails(g, TrailOptions{TrailCount: 3, StepsPerSecond: 60, FadeSeconds: 1}, newRand(2))
	tr.Advance(1.0 / 60)
	for _, w := range tr.Walkers() {
		if h := tr.Heat(w.Edge); h != 1 {
			t.Errorf("walker edge %d heat = %v, want 1", w.Edge, h)
		}
	}
}

func TestTrailsLongDeltaStaysBounded(t *testing.T) {
	g := NewEdgeGraph(Build(1600, 1200, DefaultConfig()))
	opts := DefaultConfig().Trails
	tr := NewTrails(g, opts, newRand(4))
	tr.Advance(3600)

	if tr.ActiveCount() == 0 {
		t.Fatal("no glowing edges after a long advance")
	}
	limit := len(tr.Walkers()) * tr.maxBacklog(1/opts.StepsPerSecond)
	if tr.ActiveCount() > limit {
		t.Errorf("active = %d, want at most %d", tr.ActiveCount(), limit)
	}
	full := 0
	tr.EachHot(func(e int, h float64) {
		if h < heatFloor || h > 1 {
			t.Errorf("edge %d heat = %v outside [%v, 1]", e, h, heatFloor)
		}
		if h == 1 {
			full++
		}
	})
	if full > len(tr.Walkers()) {
		t.Errorf("%d edges at full heat, want at most one per walker (%d)", full, len(tr.Walkers()))
	}
}

func TestTrailsBacklogHeatAged(t *testing.T) {
	g := NewEdgeGraph(Build(300, 300, DefaultConfig()))
	opts := TrailOptions{TrailCount: 1, StepsPerSecond: 4, FadeSeconds: 1}
	tr := NewTrails(g, opts, newRand(6))
	tr.Advance(0.5)

	// Replay the same walk to learn which edges the two steps lit.
	rng := newRand(6)
	var w Walker
	w.Spawn(g, rng)
	first, _ := w.Step(g, rng, false)
	second, _ := w.Step(g, rng, false)

	if h := tr.Heat(second); h != 1 {
		t.Errorf("heat of the last lit edge = %v, want 1", h)
	}
	if first != second {
		if h, want := tr.Heat(first), math.Exp(-0.25); !approxEqual(h, want, 1e-9) {
			t.Errorf("heat of the earlier edge = %v, want %v", h, want)
		}
	}
}
