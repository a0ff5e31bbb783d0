package hexgrid

import "math"

// Edge is one physical boundary between hexagons. CellB is -1 for edges on
// the outer boundary of the grid.
type Edge struct {
	A, B         int // vertex indices
	CellA, CellB int
}

// Canonical sides emitted first for every cell, as corner pairs: E, NE, SE.
// The remaining sides (W, NW, SW) are the canonical sides of a neighbour and
// only create a new edge on the grid boundary.
var (
	canonicalSides = [3][2]int{{0, 1}, {5, 0}, {1, 2}}
	otherSides     = [3][2]int{{3, 4}, {4, 5}, {2, 3}}
)

type vertexKey struct{ x, y int64 }

type edgeKey struct{ a, b int }

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// EdgeGraph is the vertex/edge adjacency of a cell list. Vertices shared by
// neighbouring cells are merged so each physical boundary is a single edge.
type EdgeGraph struct {
	Vertices []Point
	Edges    []Edge

	byVertex    [][]int // vertex -> incident edge ids
	vertexCells [][]int // vertex -> touching cell ids
	cellEdges   [][6]int
}

// NewEdgeGraph builds the graph for cells produced by Build with a single
// pixelsPerHex. An empty cell list gives an empty graph.
func NewEdgeGraph(cells []Cell) *EdgeGraph {
	g := &EdgeGraph{}
	if len(cells) == 0 {
		return g
	}
	// Corners sit on an exact lattice: x in half-columns, y in half-radii.
	radius := cells[0].Radius
	halfCol := radius * sqrt3 / 2
	halfRad := radius / 2

	vertexIndex := make(map[vertexKey]int, len(cells)*2)
	edgeIndex := make(map[edgeKey]int, len(cells)*3)
	g.cellEdges = make([][6]int, len(cells))

	vertexOf := func(p Point) int {
		key := vertexKey{int64(math.Round(p.X / halfCol)), int64(math.Round(p.Y / halfRad))}
		if v, ok := vertexIndex[key]; ok {
			return v
		}
		v := len(g.Vertices)
		vertexIndex[key] = v
		g.Vertices = append(g.Vertices, p)
		g.byVertex = append(g.byVertex, nil)
		g.vertexCells = append(g.vertexCells, nil)
		return v
	}

	corners := make([][6]int, len(cells))
	for ci := range cells {
		c := &cells[ci]
		for k := 0; k < 6; k++ {
			v := vertexOf(Corner(c.Center, c.Radius, k))
			corners[ci][k] = v
			g.vertexCells[v] = append(g.vertexCells[v], ci)
		}
	}

	addSide := func(ci, slot int, side [2]int) {
		a, b := corners[ci][side[0]], corners[ci][side[1]]
		key := newEdgeKey(a, b)
		if e, ok := edgeIndex[key]; ok {
			if g.Edges[e].CellA != ci && g.Edges[e].CellB < 0 {
				g.Edges[e].CellB = ci
			}
			g.cellEdges[ci][slot] = e
			return
		}
		e := len(g.Edges)
		edgeIndex[key] = e
		g.Edges = append(g.Edges, Edge{A: a, B: b, CellA: ci, CellB: -1})
		g.byVertex[a] = append(g.byVertex[a], e)
		g.byVertex[b] = append(g.byVertex[b], e)
		g.cellEdges[ci][slot] = e
	}

	for ci := range cells {
		for s, side := range canonicalSides {
			addSide(ci, s, side)
		}
	}
	for ci := range cells {
		for s, side := range otherSides {
			addSide(ci, 3+s, side)
		}
	}
	return g
}

// Incident returns the ids of the edges touching vertex v. The returned slice
// must not be mutated.
func (g *EdgeGraph) Incident(v int) []int {
	return g.byVertex[v]
}

// Other returns the endpoint of edge e that is not v.
func (g *EdgeGraph) Other(e, v int) int {
	if g.Edges[e].A == v {
		return g.Edges[e].B
	}
	return g.Edges[e].A
}

// VertexCells returns the ids of the cells that share vertex v.
func (g *EdgeGraph) VertexCells(v int) []int {
	return g.vertexCells[v]
}

// CellEdges returns the six edge ids of cell ci. The first three are the
// canonical E, NE and SE edges.
func (g *EdgeGraph) CellEdges(ci int) [6]int {
	return g.cellEdges[ci]
}

// Len returns the number of edges.
func (g *EdgeGraph) Len() int {
	return len(g.Edges)
}
