// Package nav builds a uniform 3D lattice over the world bounds and answers
// shortest-path queries on it with A*.
package nav

import (
	"math"

	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
)

// latticeSlack lets the max corner land on the lattice despite float error.
const latticeSlack = 1e-9

// Coord is a node's integer lattice coordinate, counted in cells from
// bounds.Min.
type Coord struct {
	X, Y, Z int
}

type Edge struct {
	To   *Node
	Cost float64
}

type Node struct {
	ID       int
	Coord    Coord
	Position common.Vec3
	Edges    []Edge
}

// Graph is immutable once built and safe to share between agents and
// goroutines.
type Graph struct {
	bounds   body.Bounds
	cellSize float64
	nodes    []*Node
	byCoord  map[Coord]*Node
}

// NewGraph lays one node at every bounds.Min + k*cellSize inside bounds
// (max corner included) and links each to its axis neighbours. Nodes are
// created with x outermost, then y, then z. A non-positive cell size or
// inverted bounds give an empty graph.
func NewGraph(bounds body.Bounds, cellSize float64) *Graph {
	g := &Graph{
		bounds:   bounds,
		cellSize: cellSize,
		byCoord:  make(map[Coord]*Node),
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 0) {
		return g
	}

	span := bounds.Span()
	nx, okX := stepsAlong(span.X, cellSize)
	ny, okY := stepsAlong(span.Y, cellSize)
	nz, okZ := stepsAlong(span.Z, cellSize)
	if !okX || !okY || !okZ {
		return g
	}

	g.nodes = make([]*Node, 0, nx*ny*nz)
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			for z := 0; z < nz; z++ {
				c := Coord{X: x, Y: y, Z: z}
				n := &Node{
					ID:    len(g.nodes),
					Coord: c,
					Position: common.V3(
						bounds.Min.X+float64(x)*cellSize,
						bounds.Min.Y+float64(y)*cellSize,
						bounds.Min.Z+float64(z)*cellSize,
					),
				}
				g.nodes = append(g.nodes, n)
				g.byCoord[c] = n
			}
		}
	}

	for _, n := range g.nodes {
		for _, d := range neighbourSteps {
			c := Coord{X: n.Coord.X + d.X, Y: n.Coord.Y + d.Y, Z: n.Coord.Z + d.Z}
			if to, ok := g.byCoord[c]; ok {
				n.Edges = append(n.Edges, Edge{To: to, Cost: n.Position.Distance(to.Position)})
			}
		}
	}
	return g
}

var neighbourSteps = [...]Coord{
	{X: -1}, {X: 1},
	{Y: -1}, {Y: 1},
	{Z: -1}, {Z: 1},
}

// stepsAlong is the number of lattice points along one axis.
func stepsAlong(span, cell float64) (int, bool) {
	if span < 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 0, false
	}
	return int(math.Floor((span+latticeSlack)/cell)) + 1, true
}

func (g *Graph) Len() int {
	if g == nil {
		return 0
	}
	return len(g.nodes)
}

// Nodes returns the nodes in creation order. Callers must not modify them.
func (g *Graph) Nodes() []*Node {
	if g == nil {
		return nil
	}
	return g.nodes
}

func (g *Graph) Bounds() body.Bounds { return g.bounds }

func (g *Graph) CellSize() float64 { return g.cellSize }

// At looks a node up by lattice coordinate.
func (g *Graph) At(c Coord) (*Node, bool) {
	if g == nil {
		return nil, false
	}
	n, ok := g.byCoord[c]
	return n, ok
}

// ClosestNode returns the node nearest pos. On ties the earliest-created
// node wins.
func (g *Graph) ClosestNode(pos common.Vec3) (*Node, bool) {
	if g == nil || len(g.nodes) == 0 {
		return nil, false
	}
	var best *Node
	bestDist := math.Inf(1)
	for _, n := range g.nodes {
		if d := n.Position.Distance(pos); d < bestDist {
			best = n
			bestDist = d
		}
	}
	return best, best != nil
}
