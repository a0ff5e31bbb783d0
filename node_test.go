package hexfolio

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewRectDefaults(t *testing.T) {
	c := Color{0.2, 0.4, 0.6, 1}
	n := NewRect("box", 30, 20, c)
	assertNodeDefaults(t, n, "box", NodeTypeSprite)
	if n.ScaleX != 30 || n.ScaleY != 20 {
		t.Errorf("Scale = (%v, %v), want (30, 20)", n.ScaleX, n.ScaleY)
	}
	if n.Color != c {
		t.Errorf("Color = %v, want %v", n.Color, c)
	}
}

func TestNewMeshDefaults(t *testing.T) {
	verts := []ebiten.Vertex{{DstX: 0, DstY: 0}}
	inds := []uint16{0}
	n := NewMesh("mesh", nil, verts, inds)
	if n.ScaleX != 1 || n.Type != NodeTypeMesh {
		t.Errorf("mesh defaults wrong: %+v", n)
	}
	if len(n.Vertices) != 1 || len(n.Indices) != 1 {
		t.Errorf("Vertices/Indices not set")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.Type == NodeTypeContainer && (n.ScaleX != 1 || n.ScaleY != 1) {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.Renderable {
		t.Error("Renderable should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Errorf("children = %v", parent.Children())
	}
}

func TestAddChildReparent(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if c.Parent != b {
		t.Error("child.Parent should be new parent")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanic(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewContainer("a").AddChild(nil)
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(b)
}

func TestRemoveFromParentNoOp(t *testing.T) {
	n := NewContainer("n")
	n.RemoveFromParent()
	if n.Parent != nil {
		t.Error("Parent should stay nil")
	}
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	kids := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, k := range kids {
		p.AddChild(k)
	}
	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil {
			t.Errorf("%s.Parent not cleared", k.Name)
		}
		if k.IsDisposed() {
			t.Errorf("%s disposed, want detached only", k.Name)
		}
	}
}

func TestSetZIndexOrdersTraversal(t *testing.T) {
	p := NewContainer("p")
	a := NewContainer("a")
	b := NewContainer("b")
	p.AddChild(a)
	p.AddChild(b)
	a.SetZIndex(5)
	rebuildSortedChildren(p)
	if p.sortedChildren[0] != b || p.sortedChildren[1] != a {
		t.Errorf("sorted order = %s, %s; want b, a", p.sortedChildren[0].Name, p.sortedChildren[1].Name)
	}
}

func TestIsConnected(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)
	if !leaf.IsConnected(root) {
		t.Error("leaf should be connected")
	}
	mid.RemoveFromParent()
	if leaf.IsConnected(root) {
		t.Error("leaf should be disconnected after its parent is removed")
	}
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	child := NewContainer("child")
	root.AddChild(n)
	n.AddChild(child)
	n.OnUpdate = func(FrameTime) {}
	n.OnClick = func(ClickContext) {}
	n.OnHover = func(bool) {}

	n.Dispose()

	if !n.IsDisposed() || !child.IsDisposed() {
		t.Error("node and descendants should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from parent")
	}
	if n.OnUpdate != nil || n.OnClick != nil || n.OnHover != nil {
		t.Error("callbacks should be cleared")
	}
	if n.IsConnected(root) {
		t.Error("disposed node should not be connected")
	}
	n.Dispose() // second call is a no-op
}
