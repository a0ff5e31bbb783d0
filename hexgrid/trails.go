package hexgrid

import (
	"math"
	"math/rand/v2"
)

// heatFloor is the heat below which an edge stops glowing and leaves the
// active set.
const heatFloor = 0.01

// Walker is a token sitting on one edge of an EdgeGraph with its head at one
// of the edge's endpoints.
type Walker struct {
	Edge int
	Head int
}

// Spawn places the walker on a uniformly random edge with a random head.
func (w *Walker) Spawn(g *EdgeGraph, rng *rand.Rand) {
	w.Edge = rng.IntN(len(g.Edges))
	if rng.IntN(2) == 0 {
		w.Head = g.Edges[w.Edge].A
	} else {
		w.Head = g.Edges[w.Edge].B
	}
}

// Step moves the walker onto a random edge incident to its head and turns the
// head to the far end of that edge. With avoidBacktrack the current edge is
// not a candidate. When no candidate exists the walker respawns. It returns
// the edge the walker now occupies. g must have at least one edge.
func (w *Walker) Step(g *EdgeGraph, rng *rand.Rand, avoidBacktrack bool) (edge int, respawned bool) {
	incident := g.Incident(w.Head)
	n := len(incident)
	if avoidBacktrack {
		for _, e := range incident {
			if e == w.Edge {
				n--
			}
		}
	}
	if n <= 0 {
		w.Spawn(g, rng)
		return w.Edge, true
	}

	pick := rng.IntN(n)
	for _, e := range incident {
		if avoidBacktrack && e == w.Edge {
			continue
		}
		if pick == 0 {
			w.Head = g.Other(e, w.Head)
			w.Edge = e
			break
		}
		pick--
	}
	return w.Edge, false
}

// Trails advances a set of walkers over an EdgeGraph and keeps the decaying
// heat of every lit edge. Only edges that currently glow are stored.
type Trails struct {
	graph   *EdgeGraph
	opts    TrailOptions
	rng     *rand.Rand
	walkers []Walker
	heat    map[int]float64
	cooled  []int
	acc     float64
}

// NewTrails spawns opts.TrailCount walkers on g. A graph without edges gets
// no walkers.
func NewTrails(g *EdgeGraph, opts TrailOptions, rng *rand.Rand) *Trails {
	t := &Trails{
		graph: g,
		opts:  opts,
		rng:   rng,
		heat:  make(map[int]float64),
	}
	if g == nil || g.Len() == 0 {
		return t
	}
	t.walkers = make([]Walker, opts.TrailCount)
	for i := range t.walkers {
		t.walkers[i].Spawn(g, rng)
		t.heat[t.walkers[i].Edge] = 1
	}
	return t
}

// Walkers returns the walker slice. It must not be mutated.
func (t *Trails) Walkers() []Walker {
	return t.walkers
}

// Light sets the heat of edge e to 1.
func (t *Trails) Light(e int) {
	t.heat[e] = 1
}

// Heat returns the current heat of edge e, 0 when it is not glowing.
func (t *Trails) Heat(e int) float64 {
	return t.heat[e]
}

// ActiveCount returns the number of glowing edges.
func (t *Trails) ActiveCount() int {
	return len(t.heat)
}

// EachHot calls fn for every glowing edge. Iteration order is unspecified.
func (t *Trails) EachHot(fn func(edge int, heat float64)) {
	for e, h := range t.heat {
		fn(e, h)
	}
}

// Cooled returns the edges that dropped out of the active set during the last
// Advance. Renderers must force their alpha to zero.
func (t *Trails) Cooled() []int {
	return t.cooled
}

// Advance decays all heat by exp(-dt/fade) and then runs as many discrete
// walker steps as the step cadence allows for the accumulated time. Edges lit
// by earlier steps of the same call start already decayed by their age, and
// a backlog longer than the glow horizon is dropped, so a long dt leaves the
// same bounded set of glowing edges as many short ones.
func (t *Trails) Advance(dt float64) {
	t.cooled = t.cooled[:0]
	if dt < 0 {
		dt = 0
	}

	decay := 0.0
	if t.opts.FadeSeconds > 0 {
		decay = math.Exp(-dt / t.opts.FadeSeconds)
	}
	for e, h := range t.heat {
		h *= decay
		if h < heatFloor {
			delete(t.heat, e)
			t.cooled = append(t.cooled, e)
			continue
		}
		t.heat[e] = h
	}

	if len(t.walkers) == 0 || t.opts.StepsPerSecond <= 0 {
		return
	}
	t.acc += dt
	interval := 1 / t.opts.StepsPerSecond
	steps := int(math.Floor(t.acc / interval))
	if steps <= 0 {
		return
	}
	t.acc -= float64(steps) * interval
	// Steps older than the glow horizon would already have cooled.
	if limit := t.maxBacklog(interval); steps > limit {
		steps = limit
	}
	for s := 0; s < steps; s++ {
		age := float64(steps-1-s) * interval
		h := 1.0
		if age > 0 {
			h = decayOver(age, t.opts.FadeSeconds)
		}
		for i := range t.walkers {
			e, _ := t.walkers[i].Step(t.graph, t.rng, t.opts.AvoidBacktrack)
			if h >= heatFloor && h > t.heat[e] {
				t.heat[e] = h
			}
		}
	}
}

// maxBacklog is the most steps one Advance runs: those whose edges can still
// glow by the end of the call, and at least one.
func (t *Trails) maxBacklog(interval float64) int {
	horizon := t.opts.FadeSeconds * math.Log(1/heatFloor)
	return max(1, int(math.Ceil(horizon/interval)))
}

func decayOver(age, fade float64) float64 {
	if fade <= 0 {
		return 0
	}
	return math.Exp(-age / fade)
}

// Reset clears all heat and releases the walker slice.
func (t *Trails) Reset() {
	clear(t.heat)
	t.walkers = nil
	t.cooled = nil
	t.acc = 0
}
