package hexfolio

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// HitShape is a custom hit testing region in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is a rectangular HitShape.
type HitRect = Rect

// ClickContext carries click event data.
type ClickContext struct {
	Node    *Node
	GlobalX float64
	GlobalY float64
	LocalX  float64
	LocalY  float64
}

// nodeIDCounter is a plain counter; nodes are only created on the game goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct serves every node
// type to keep the per-frame traversal free of interface dispatch.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha      float64
	Visible    bool
	Renderable bool

	// Ordering
	ZIndex      int
	RenderLayer uint8

	UserData any

	// Sprite fields (NodeTypeSprite). A sprite without a custom image is a
	// solid rectangle of ScaleX x ScaleY pixels.
	BlendMode   BlendMode
	Color       Color
	customImage *ebiten.Image

	// Mesh fields (NodeTypeMesh)
	Vertices         []ebiten.Vertex
	Indices          []uint16
	MeshImage        *ebiten.Image
	transformedVerts []ebiten.Vertex
	meshAABB         Rect
	meshAABBDirty    bool

	// Hit testing
	HitShape HitShape

	// OnUpdate runs once per Scene.Update while the node is in the tree.
	OnUpdate func(ft FrameTime)
	// OnClick fires on press then release over the node's HitShape.
	OnClick func(ClickContext)
	// OnHover fires when the pointer enters (true) or leaves (false) the node.
	OnHover func(hovering bool)

	// Internal
	playing        *TweenGroup
	prevUpdate     func(ft FrameTime)
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid-color sprite of the given size.
func NewRect(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite}
	nodeDefaults(n)
	n.ScaleX, n.ScaleY = w, h
	n.Color = c
	return n
}

// NewMesh creates a mesh node rendered with DrawTriangles. A nil image draws
// untextured, vertex-colored triangles.
func NewMesh(name string, img *ebiten.Image, vertices []ebiten.Vertex, indices []uint16) *Node {
	n := &Node{
		Name:          name,
		Type:          NodeTypeMesh,
		MeshImage:     img,
		Vertices:      vertices,
		Indices:       indices,
		meshAABBDirty: true,
	}
	nodeDefaults(n)
	return n
}

// NewImageSprite creates a sprite that draws img at its native size.
func NewImageSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, customImage: img}
	nodeDefaults(n)
	return n
}

// SetCustomImage sets an image a sprite draws instead of a solid rectangle.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, detaching it from any
// previous parent. Panics if child is nil or an ancestor of n.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("hexfolio: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("hexfolio: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("hexfolio: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent. No-op without a parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children. Children are not disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	clear(n.children)
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// IsConnected reports whether the node is attached to a tree whose root is
// root.
func (n *Node) IsConnected(root *Node) bool {
	if n.disposed {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p == root {
			return true
		}
	}
	return false
}

// --- Disposal ---

// Dispose removes this node from its parent and disposes it and all its
// descendants. Per-frame callbacks are dropped synchronously, so a disposed
// node is never updated again.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.customImage = nil
	n.MeshImage = nil
	n.Vertices = nil
	n.Indices = nil
	n.transformedVerts = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnClick = nil
	n.OnHover = nil
	n.playing = nil
	n.prevUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent, nil-ing the vacated slot.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
