package nav

import (
	"container/heap"
	"context"
	"math"

	"github.com/milk9111/alienfield/common"
)

// PathStats describes the work one query did.
type PathStats struct {
	Expanded int
	Found    bool
}

// FindPath returns node positions from the node closest to start to the node
// closest to end, both inclusive. An empty slice means no path.
func (g *Graph) FindPath(start, end common.Vec3) []common.Vec3 {
	path, _ := g.FindPathStats(start, end)
	return path
}

// FindPathStats is FindPath plus the number of nodes the search expanded.
func (g *Graph) FindPathStats(start, end common.Vec3) ([]common.Vec3, PathStats) {
	path, stats := g.search(start, end)
	recordQuery(context.Background(), stats)
	return path, stats
}

// scratch is the per-query A* bookkeeping for one node. seq is the order
// the node first entered the open set and is kept when it is re-pushed.
type scratch struct {
	g      float64
	parent int
	seq    int
	open   bool
	closed bool
}

func (g *Graph) search(start, end common.Vec3) ([]common.Vec3, PathStats) {
	var stats PathStats

	from, ok := g.ClosestNode(start)
	if !ok {
		return []common.Vec3{}, stats
	}
	to, ok := g.ClosestNode(end)
	if !ok {
		return []common.Vec3{}, stats
	}

	table := make([]scratch, len(g.nodes))
	for i := range table {
		table[i] = scratch{g: math.Inf(1), parent: -1}
	}

	open := &openSet{}
	heap.Init(open)

	seq := 0
	table[from.ID].g = 0
	table[from.ID].open = true
	table[from.ID].seq = seq
	heap.Push(open, &openItem{node: from.ID, f: from.Position.Distance(to.Position), g: 0, seq: seq})
	seq++

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := &table[current.node]
		if cur.closed || current.g > cur.g {
			// superseded by a cheaper push
			continue
		}
		cur.closed = true
		cur.open = false
		stats.Expanded++

		if current.node == to.ID {
			stats.Found = true
			return g.reconstruct(table, from.ID, to.ID), stats
		}

		for _, e := range g.nodes[current.node].Edges {
			next := &table[e.To.ID]
			if next.closed {
				continue
			}
			tentativeG := cur.g + e.Cost
			if next.open && tentativeG >= next.g {
				continue
			}
			if !next.open {
				next.seq = seq
				seq++
			}
			next.g = tentativeG
			next.parent = current.node
			next.open = true
			f := tentativeG + e.To.Position.Distance(to.Position)
			heap.Push(open, &openItem{node: e.To.ID, f: f, g: tentativeG, seq: next.seq})
		}
	}

	return []common.Vec3{}, stats
}

func (g *Graph) reconstruct(table []scratch, startID, goalID int) []common.Vec3 {
	path := make([]common.Vec3, 0, 16)
	for cur := goalID; cur != -1; cur = table[cur].parent {
		path = append(path, g.nodes[cur].Position)
		if cur == startID {
			break
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	node  int
	f     float64
	g     float64
	seq   int
	index int
}

// openSet pops the lowest f, and among equal f the node that entered the
// open set first.
type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].seq < o[j].seq
}
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
