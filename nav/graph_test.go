package nav

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/alienfield/body"
	"github.com/milk9111/alienfield/common"
)

// flatGrid is the 3x1x3 lattice used throughout: x and z in {0,100,200}.
func flatGrid() *Graph {
	return NewGraph(body.NewBounds(common.V3(0, 0, 0), common.V3(200, 0, 200)), 100)
}

func TestNewGraphFlatLattice(t *testing.T) {
	grids := []struct {
		name string
		max  float64
		cell float64
	}{
		{"cell_100", 200, 100},
		{"cell_30", 60, 30},
	}
	nodes := []struct {
		name  string
		coord Coord
		edges int
	}{
		{"centre", Coord{X: 1, Z: 1}, 4},
		{"corner_min", Coord{}, 2},
		{"corner_max", Coord{X: 2, Z: 2}, 2},
		{"edge_mid_x", Coord{X: 1}, 3},
		{"edge_mid_z", Coord{Z: 1}, 3},
	}
	for _, grid := range grids {
		t.Run(grid.name, func(t *testing.T) {
			g := NewGraph(body.NewBounds(common.V3(0, 0, 0), common.V3(grid.max, 0, grid.max)), grid.cell)
			require.Equal(t, 9, g.Len())
			assert.Equal(t, grid.cell, g.CellSize())

			for _, c := range nodes {
				t.Run(c.name, func(t *testing.T) {
					n, ok := g.At(c.coord)
					require.True(t, ok)
					assert.Len(t, n.Edges, c.edges)
					for _, e := range n.Edges {
						assert.InDelta(t, grid.cell, e.Cost, 1e-9)
					}
				})
			}

			path := g.FindPath(common.V3(0, 0, 0), common.V3(grid.max, 0, grid.max))
			require.Len(t, path, 5)
			assert.Equal(t, common.V3(0, 0, 0), path[0])
			assert.Equal(t, common.V3(grid.max, 0, grid.max), path[4])
		})
	}
}

func TestNewGraphCreationOrder(t *testing.T) {
	g := flatGrid()
	for i, n := range g.Nodes() {
		assert.Equal(t, i, n.ID)
		assert.Equal(t, i, n.Coord.X*3+n.Coord.Z, "x outermost then z")
	}
}

func TestNewGraphInvariants(t *testing.T) {
	bounds := body.NewBounds(common.V3(-150, -50, -150), common.V3(150, 50, 150))
	g := NewGraph(bounds, 50)
	require.Equal(t, 7*3*7, g.Len())

	for _, n := range g.Nodes() {
		rel := n.Position.Sub(bounds.Min).Scale(1.0 / 50)
		assert.InDelta(t, math.Round(rel.X), rel.X, 1e-9)
		assert.InDelta(t, math.Round(rel.Y), rel.Y, 1e-9)
		assert.InDelta(t, math.Round(rel.Z), rel.Z, 1e-9)

		for _, e := range n.Edges {
			d := e.To.Coord
			steps := abs(d.X-n.Coord.X) + abs(d.Y-n.Coord.Y) + abs(d.Z-n.Coord.Z)
			assert.Equal(t, 1, steps, "edges only join axis neighbours")
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestNewGraphDegenerate(t *testing.T) {
	cases := []struct {
		name   string
		bounds body.Bounds
		cell   float64
		want   int
	}{
		{"zero_cell", body.Cube(100), 0, 0},
		{"negative_cell", body.Cube(100), -5, 0},
		{"nan_cell", body.Cube(100), math.NaN(), 0},
		{"inverted", body.NewBounds(common.V3(10, 0, 0), common.V3(0, 0, 0)), 1, 0},
		{"single_point", body.NewBounds(common.Vec3{}, common.Vec3{}), 10, 1},
		{"cell_larger_than_span", body.Cube(10), 100, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := NewGraph(c.bounds, c.cell)
			assert.Equal(t, c.want, g.Len())
		})
	}
}

func TestClosestNode(t *testing.T) {
	g := flatGrid()

	n, ok := g.ClosestNode(common.V3(190, 30, 12))
	require.True(t, ok)
	assert.Equal(t, Coord{X: 2}, n.Coord)

	// equidistant from (0,0,0) and (100,0,0): first created wins
	n, ok = g.ClosestNode(common.V3(50, 0, 0))
	require.True(t, ok)
	assert.Equal(t, 0, n.ID)

	_, ok = NewGraph(body.Cube(1), 0).ClosestNode(common.Vec3{})
	assert.False(t, ok)

	var nilGraph *Graph
	_, ok = nilGraph.ClosestNode(common.Vec3{})
	assert.False(t, ok)
}

func TestFindPath(t *testing.T) {
	g := flatGrid()

	path := g.FindPath(common.V3(1, 0, 1), common.V3(199, 0, 199))
	require.Len(t, path, 5, "four unit hops across the grid")
	assert.Equal(t, common.V3(0, 0, 0), path[0])
	assert.Equal(t, common.V3(200, 0, 200), path[len(path)-1])
	for i := 1; i < len(path); i++ {
		assert.InDelta(t, 100, path[i].Distance(path[i-1]), 1e-9, "consecutive waypoints share an edge")
	}
}

func TestFindPathSameNode(t *testing.T) {
	g := flatGrid()
	path := g.FindPath(common.V3(101, 0, 99), common.V3(95, 0, 104))
	assert.Equal(t, []common.Vec3{common.V3(100, 0, 100)}, path)
}

func TestFindPathEmptyGraph(t *testing.T) {
	g := NewGraph(body.Cube(10), 0)
	path := g.FindPath(common.Vec3{}, common.V3(5, 5, 5))
	assert.NotNil(t, path)
	assert.Empty(t, path)
}

func TestFindPathUnreachable(t *testing.T) {
	// two islands built by hand
	a := &Node{ID: 0, Position: common.V3(0, 0, 0)}
	b := &Node{ID: 1, Position: common.V3(1, 0, 0)}
	c := &Node{ID: 2, Position: common.V3(10, 0, 0)}
	a.Edges = []Edge{{To: b, Cost: 1}}
	b.Edges = []Edge{{To: a, Cost: 1}}
	g := &Graph{nodes: []*Node{a, b, c}, byCoord: map[Coord]*Node{}}

	path, stats := g.FindPathStats(common.Vec3{}, common.V3(10, 0, 0))
	assert.Empty(t, path)
	assert.False(t, stats.Found)
	assert.Equal(t, 2, stats.Expanded)
}

func TestFindPathStatsCountsExpansions(t *testing.T) {
	g := flatGrid()
	_, stats := g.FindPathStats(common.Vec3{}, common.V3(100, 0, 0))
	assert.True(t, stats.Found)
	assert.Equal(t, 2, stats.Expanded)
}

func TestFindPathIsOptimal(t *testing.T) {
	g := NewGraph(body.Cube(200), 100)
	rng := rand.New(rand.NewPCG(5, 9))
	for i := 0; i < 50; i++ {
		from := g.Nodes()[rng.IntN(g.Len())]
		to := g.Nodes()[rng.IntN(g.Len())]
		path := g.FindPath(from.Position, to.Position)
		manhattan := abs(from.Coord.X-to.Coord.X) + abs(from.Coord.Y-to.Coord.Y) + abs(from.Coord.Z-to.Coord.Z)
		assert.Len(t, path, manhattan+1)
	}
}

func TestFindPathConcurrent(t *testing.T) {
	g := NewGraph(body.Cube(300), 100)
	want := g.FindPath(common.V3(-300, -300, -300), common.V3(300, 300, 300))
	require.NotEmpty(t, want)

	var wg sync.WaitGroup
	results := make([][]common.Vec3, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = g.FindPath(common.V3(-300, -300, -300), common.V3(300, 300, 300))
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

// scanPath is a plain A* over an insertion-ordered open list: lowest f
// wins, ties go to the node that joined the list first, and an improved
// node keeps its place.
func scanPath(g *Graph, start, end common.Vec3) []common.Vec3 {
	from, ok := g.ClosestNode(start)
	if !ok {
		return []common.Vec3{}
	}
	to, _ := g.ClosestNode(end)

	n := g.Len()
	gs := make([]float64, n)
	fs := make([]float64, n)
	parent := make([]int, n)
	inOpen := make([]bool, n)
	closed := make([]bool, n)
	for i := range gs {
		gs[i] = math.Inf(1)
		parent[i] = -1
	}
	gs[from.ID] = 0
	fs[from.ID] = from.Position.Distance(to.Position)
	open := []int{from.ID}
	inOpen[from.ID] = true

	for len(open) > 0 {
		best := 0
		for i, id := range open {
			if fs[id] < fs[open[best]] {
				best = i
			}
		}
		cur := open[best]
		open = append(open[:best], open[best+1:]...)
		inOpen[cur] = false
		closed[cur] = true

		if cur == to.ID {
			var path []common.Vec3
			for id := cur; id != -1; id = parent[id] {
				path = append([]common.Vec3{g.Nodes()[id].Position}, path...)
				if id == from.ID {
					break
				}
			}
			return path
		}

		for _, e := range g.Nodes()[cur].Edges {
			id := e.To.ID
			if closed[id] {
				continue
			}
			tg := gs[cur] + e.Cost
			if inOpen[id] && tg >= gs[id] {
				continue
			}
			gs[id] = tg
			fs[id] = tg + e.To.Position.Distance(to.Position)
			parent[id] = cur
			if !inOpen[id] {
				open = append(open, id)
				inOpen[id] = true
			}
		}
	}
	return []common.Vec3{}
}

func TestFindPathTieBreaksLikeInsertionOrderScan(t *testing.T) {
	grids := []struct {
		name   string
		bounds body.Bounds
		cell   float64
	}{
		{"flat_3x1x3", body.NewBounds(common.V3(0, 0, 0), common.V3(60, 0, 60)), 30},
		{"cube_9", body.Cube(400), 100},
		{"cube_13", body.Cube(600), 100},
	}
	for _, grid := range grids {
		t.Run(grid.name, func(t *testing.T) {
			g := NewGraph(grid.bounds, grid.cell)
			rng := rand.New(rand.NewPCG(11, 13))
			span := grid.bounds.Span()
			point := func() common.Vec3 {
				return grid.bounds.Min.Add(common.V3(rng.Float64()*span.X, rng.Float64()*span.Y, rng.Float64()*span.Z))
			}
			for i := 0; i < 200; i++ {
				start, end := point(), point()
				require.Equal(t, scanPath(g, start, end), g.FindPath(start, end), "from %v to %v", start, end)
			}
		})
	}
}
