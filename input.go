package hexfolio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState tracks the primary pointer across frames.
type pointerState struct {
	down      bool
	x, y      float64
	hitNode   *Node
	hoverNode *Node
}

// OnKeyPress registers fn to receive keys pressed this frame. Only one
// handler is kept; a nil fn removes it.
func (s *Scene) OnKeyPress(fn func(ebiten.Key)) {
	s.keyHandler = fn
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set. A sprite without one uses its image bounds, or the
// unit square its scale stretches into a rectangle.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	switch n.Type {
	case NodeTypeSprite:
		w, h := 1.0, 1.0
		if n.customImage != nil {
			b := n.customImage.Bounds()
			w, h = float64(b.Dx()), float64(b.Dy())
		}
		return lx >= 0 && lx <= w && ly >= 0 && ly <= h
	case NodeTypeMesh:
		return n.MeshBounds().Contains(lx, ly)
	}
	return false
}

func interactable(n *Node) bool {
	if n.OnClick == nil && n.OnHover == nil {
		return false
	}
	return n.HitShape != nil || n.Type != NodeTypeContainer
}

// collectInteractable walks the tree in painter order, appending nodes with
// pointer callbacks to buf. Invisible subtrees are skipped.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if interactable(n) {
		buf = append(buf, n)
	}
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at screen point (x, y). The UI
// tree is tested before the world tree.
func (s *Scene) hitTest(x, y float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])
	wx, wy := s.camera.ScreenToWorld(x, y)
	worldCount := len(s.hitBuf)
	s.hitBuf = collectInteractable(s.ui, s.hitBuf)

	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		px, py := x, y
		if i < worldCount {
			px, py = wx, wy
		}
		lx, ly := n.WorldToLocal(px, py)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// processInput reads the mouse (or first touch) and the keyboard, then
// dispatches hover, click and key callbacks.
func (s *Scene) processInput() {
	updateWorldTransform(s.root, identityTransform, 1, false)
	updateWorldTransform(s.ui, identityTransform, 1, false)

	if s.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if touches := ebiten.AppendTouchIDs(s.touchBuf[:0]); len(touches) > 0 {
		mx, my = ebiten.TouchPosition(touches[0])
		pressed = true
		s.touchBuf = touches
	} else if len(s.touchBuf) > 0 {
		// Touch released this frame: keep the last position so the release
		// lands on the pressed node.
		s.touchBuf = s.touchBuf[:0]
		mx, my = int(s.pointer.x), int(s.pointer.y)
	}
	s.processPointer(float64(mx), float64(my), pressed)

	if s.keyHandler != nil {
		s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
		for _, k := range s.keyBuf {
			s.keyHandler(k)
		}
	}
}

// processPointer runs the pointer state machine for one sample. A click fires
// when press and release land on the same node.
func (s *Scene) processPointer(x, y float64, pressed bool) {
	ps := &s.pointer
	target := s.hitTest(x, y)

	if target != ps.hoverNode {
		if prev := ps.hoverNode; prev != nil && prev.OnHover != nil && !prev.disposed {
			prev.OnHover(false)
		}
		if target != nil && target.OnHover != nil {
			target.OnHover(true)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.hitNode = target
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target && target.OnClick != nil {
			px, py := x, y
			if target.IsConnected(s.root) {
				px, py = s.camera.ScreenToWorld(x, y)
			}
			lx, ly := target.WorldToLocal(px, py)
			target.OnClick(ClickContext{Node: target, GlobalX: x, GlobalY: y, LocalX: lx, LocalY: ly})
		}
		ps.down = false
		ps.hitNode = nil
	}
	ps.x, ps.y = x, y
}
