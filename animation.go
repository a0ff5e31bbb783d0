package hexfolio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup drives up to four float64 fields of a Node with gween tweens.
// Build one with TweenPosition, TweenScale, TweenAlpha or TweenColor and call
// Update each frame, or hand it to Node.Play. A group whose node is disposed
// stops without writing.
type TweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
	target *Node
	Done   bool
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, to []float64, fields ...*float64) *TweenGroup {
	g := &TweenGroup{target: node, count: len(fields)}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f), float32(to[i]), duration, fn)
		g.fields[i] = f
	}
	return g
}

// Update advances every tween by dt seconds and writes the values back.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		allDone = allDone && finished
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Stop ends the group where it is.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenPosition animates node.X and node.Y to (toX, toY).
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []float64{toX, toY}, &node.X, &node.Y)
}

// TweenScale animates node.ScaleX and node.ScaleY to (toSX, toSY).
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []float64{toSX, toSY}, &node.ScaleX, &node.ScaleY)
}

// TweenAlpha animates node.Alpha to a.
func TweenAlpha(node *Node, a float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []float64{a}, &node.Alpha)
}

// TweenColor animates the four components of node.Color to c.
func TweenColor(node *Node, c Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, []float64{c.R, c.G, c.B, c.A},
		&node.Color.R, &node.Color.G, &node.Color.B, &node.Color.A)
}

// Play runs g from the node's OnUpdate until it finishes, replacing any
// group already playing there. Any previous OnUpdate is restored afterwards.
func (n *Node) Play(g *TweenGroup) {
	if n.playing != nil {
		n.playing.Stop()
		n.OnUpdate = n.prevUpdate
	}
	prev := n.OnUpdate
	n.playing = g
	n.prevUpdate = prev
	n.OnUpdate = func(ft FrameTime) {
		if prev != nil {
			prev(ft)
		}
		g.Update(float32(ft.Delta))
		if g.Done && n.playing == g {
			n.playing = nil
			n.OnUpdate = prev
		}
	}
}
