package render

import (
	"math"
	"math/rand/v2"
	"sort"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/graph"
)

// Position is a node coordinate in the unit square.
type Position struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// orderedGraph iterates nodes by id so the seeded initial placement and
// the force sums do not depend on map order.
type orderedGraph struct {
	*simple.UndirectedGraph
}

func (g orderedGraph) Nodes() gonumgraph.Nodes {
	return iterator.NewOrderedNodes(sortedNodes(g.UndirectedGraph.Nodes()))
}

func (g orderedGraph) From(id int64) gonumgraph.Nodes {
	return iterator.NewOrderedNodes(sortedNodes(g.UndirectedGraph.From(id)))
}

func sortedNodes(it gonumgraph.Nodes) []gonumgraph.Node {
	nodes := gonumgraph.NodesOf(it)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	return nodes
}

// Layout places the nodes of g with the Eades spring model. Edge direction
// is ignored. The same graph, seed and iteration count always give the same
// positions, in node order.
func Layout(g *graph.Graph, seed int64, iterations int) []Position {
	n := len(g.Nodes)
	if n == 0 {
		return []Position{}
	}
	if iterations <= 0 {
		iterations = 300
	}

	ug := simple.NewUndirectedGraph()
	index := make(map[string]int64, n)
	for i, node := range g.Nodes {
		index[node.ID] = int64(i)
		ug.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges {
		a, b := index[e.From], index[e.To]
		if a == b || ug.HasEdgeBetween(a, b) {
			continue
		}
		ug.SetEdge(ug.NewEdge(simple.Node(a), simple.Node(b)))
	}

	eades := &layout.EadesR2{
		Updates:   iterations,
		Repulsion: 1,
		Rate:      0.05,
		Theta:     0.1,
		Src:       rand.NewPCG(uint64(seed), 0),
	}
	opt := layout.NewOptimizerR2(orderedGraph{ug}, eades.Update)
	for opt.Update() {
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range g.Nodes {
		c := opt.Coord2(int64(i))
		xs[i], ys[i] = c.X, c.Y
	}
	return normalize(g, xs, ys)
}

// normalize rescales coordinates into [0, 1] and rounds them so output is
// stable across platforms' last-bit float differences.
func normalize(g *graph.Graph, xs, ys []float64) []Position {
	minX, maxX := xs[0], xs[0]
	minY, maxY := ys[0], ys[0]
	for i := range xs {
		minX, maxX = math.Min(minX, xs[i]), math.Max(maxX, xs[i])
		minY, maxY = math.Min(minY, ys[i]), math.Max(maxY, ys[i])
	}
	spanX, spanY := maxX-minX, maxY-minY
	out := make([]Position, len(xs))
	for i, node := range g.Nodes {
		x, y := 0.5, 0.5
		if spanX > 0 {
			x = (xs[i] - minX) / spanX
		}
		if spanY > 0 {
			y = (ys[i] - minY) / spanY
		}
		out[i] = Position{ID: node.ID, X: round4(x), Y: round4(y)}
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
