package hexfolio

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandSprite CommandType = iota // DrawImage
	CommandMesh                      // DrawTriangles
)

// color32 is a compact RGBA color using float32, for render commands only.
type color32 struct {
	R, G, B, A float32
}

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type        CommandType
	Transform   [6]float32
	Color       color32
	BlendMode   BlendMode
	RenderLayer uint8
	treeOrder   int // assigned during traversal for stable sort

	// Mesh-only fields (slice headers, not copies of vertex data).
	meshVerts []ebiten.Vertex
	meshInds  []uint16
	meshImage *ebiten.Image

	// directImage, when non-nil, is drawn instead of the white pixel.
	directImage *ebiten.Image
}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// traverse walks the node tree depth-first, refreshing transforms and
// emitting render commands for visible, renderable nodes. World transforms
// stay in tree space; view is applied only to the emitted geometry.
func (s *Scene) traverse(n *Node, view [6]float64, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool, treeOrder *int) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.Renderable && n.worldAlpha > 0 {
		screen := multiplyAffine(view, n.worldTransform)
		switch n.Type {
		case NodeTypeSprite:
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Type:        CommandSprite,
				Transform:   affine32(screen),
				Color:       color32{float32(n.Color.R), float32(n.Color.G), float32(n.Color.B), float32(n.Color.A * n.worldAlpha)},
				BlendMode:   n.BlendMode,
				RenderLayer: n.RenderLayer,
				treeOrder:   *treeOrder,
				directImage: n.customImage,
			})
		case NodeTypeMesh:
			if len(n.Vertices) == 0 || len(n.Indices) == 0 {
				break
			}
			tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
			dst := ensureTransformedVerts(n)
			transformVertices(n.Vertices, dst, screen, tint)
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Type:        CommandMesh,
				Transform:   affine32(screen),
				BlendMode:   n.BlendMode,
				RenderLayer: n.RenderLayer,
				treeOrder:   *treeOrder,
				meshVerts:   dst,
				meshInds:    n.Indices,
				meshImage:   n.MeshImage,
			})
		}
	}

	if len(n.children) == 0 {
		return
	}
	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child, view, n.worldTransform, n.worldAlpha, recompute, treeOrder)
	}
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Insertion sort: stable, allocation free and linear when nearly sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Merge sort ---

// commandLessOrEqual reports whether a sorts before or with b. Comparing
// treeOrder with <= keeps the sort stable.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	return a.treeOrder <= b.treeOrder
}

// sortCommands sorts s.commands in place by render layer, then tree order,
// using s.sortBuf as scratch. Bottom-up merge sort, allocation free once the
// buffer reaches its high-water mark.
func (s *Scene) sortCommands() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
