// Package layout places subgraph words on a plane with a force-directed
// algorithm.
package layout

import (
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/nvandessel/cooccur/internal/cooccur"
)

// Point is a position in the unit square.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options tunes the Eades spring embedder.
type Options struct {
	// Iterations is the number of optimizer updates. Default: 200.
	Iterations int
	// Seed makes the initial placement reproducible.
	Seed uint64
}

// DefaultOptions returns the default layout options.
func DefaultOptions() Options {
	return Options{Iterations: 200, Seed: 1}
}

// Compute returns a position in [0,1]² for every word in sub. The result is
// deterministic for a fixed seed.
func Compute(sub *cooccur.Subgraph, opts Options) map[string]Point {
	nodes := sub.Nodes()
	pos := make(map[string]Point, len(nodes))
	switch len(nodes) {
	case 0:
		return pos
	case 1:
		pos[nodes[0].Word] = Point{X: 0.5, Y: 0.5}
		return pos
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultOptions().Iterations
	}

	ids := make(map[string]int64, len(nodes))
	g := simple.NewUndirectedGraph()
	for i, n := range nodes {
		ids[n.Word] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, e := range sub.Edges() {
		g.SetEdge(simple.Edge{F: simple.Node(ids[e.Source]), T: simple.Node(ids[e.Target])})
	}

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   opts.Iterations,
		Theta:     0.2,
		Src:       rand.NewPCG(opts.Seed, opts.Seed),
	}
	opt := layout.NewOptimizerR2(orderedGraph{g}, eades.Update)
	for opt.Update() {
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	raw := make([]Point, len(nodes))
	for i := range nodes {
		c := opt.Coord2(int64(i))
		raw[i] = Point{X: c.X, Y: c.Y}
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minY, maxY = math.Min(minY, c.Y), math.Max(maxY, c.Y)
	}
	for i, n := range nodes {
		pos[n.Word] = Point{X: scale(raw[i].X, minX, maxX), Y: scale(raw[i].Y, minY, maxY)}
	}
	return pos
}

func scale(v, lo, hi float64) float64 {
	if hi-lo < 1e-12 || math.IsNaN(v) {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// orderedGraph yields nodes and neighbors sorted by ID. The simple graph
// iterates its maps, which would make placement vary between runs.
type orderedGraph struct {
	*simple.UndirectedGraph
}

func (g orderedGraph) Nodes() graph.Nodes {
	return sortedNodes(g.UndirectedGraph.Nodes())
}

func (g orderedGraph) From(id int64) graph.Nodes {
	return sortedNodes(g.UndirectedGraph.From(id))
}

func sortedNodes(it graph.Nodes) graph.Nodes {
	nodes := graph.NodesOf(it)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return iterator.NewOrderedNodes(nodes)
}
