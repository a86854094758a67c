// Package graph builds directed, weighted word graphs from bigram counts.
// Every distinct word is a node and every frequent bigram an edge from its
// first word to its second, weighted by count.
package graph

import (
	"sort"

	"github.com/katalvlaran/lvlath/core"

	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/aggregate"
	"github.com/Adithya-Monish-Kumar-K/Profile-Text-Analytics/internal/dataset"
)

// Graph is the exported view of a word graph: sorted nodes with their
// degree and edges heaviest first.
type Graph struct {
	Group     dataset.Group `json:"group"`
	Threshold int           `json:"threshold"`
	Nodes     []Node        `json:"nodes"`
	Edges     []Edge        `json:"edges"`
	Stats     *Stats        `json:"stats,omitempty"`
}

type Node struct {
	ID     string `json:"id"`
	Degree int    `json:"degree"`
}

type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Weight int    `json:"weight"`
}

type Stats struct {
	TotalNodes  int `json:"total_nodes"`
	TotalEdges  int `json:"total_edges"`
	TotalWeight int `json:"total_weight"`
}

// newWordGraph returns the directed, weighted graph a group's bigrams are
// loaded into. A bigram may repeat its word, so self-loops are allowed.
func newWordGraph() *core.Graph {
	return core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithLoops())
}

// Build keeps the two-word rows of group whose count is above threshold.
// Nodes are sorted by id; edges are ordered by weight descending, then by
// endpoints. No surviving rows gives an empty graph.
func Build(counts []aggregate.Count, group dataset.Group, threshold int) *Graph {
	wg := newWordGraph()
	for _, c := range aggregate.Filter(counts, group, threshold) {
		if len(c.Words) != 2 {
			continue
		}
		// a repeated term keeps its first row
		_, _ = wg.AddEdge(c.Words[0], c.Words[1], int64(c.N))
	}
	return export(wg, group, threshold)
}

func export(wg *core.Graph, group dataset.Group, threshold int) *Graph {
	g := &Graph{
		Group:     group,
		Threshold: threshold,
		Nodes:     []Node{},
		Edges:     []Edge{},
	}
	for _, id := range wg.Vertices() {
		in, out, _, err := wg.Degree(id)
		if err != nil {
			continue
		}
		g.Nodes = append(g.Nodes, Node{ID: id, Degree: in + out})
	}

	total := 0
	for _, e := range wg.Edges() {
		g.Edges = append(g.Edges, Edge{From: e.From, To: e.To, Weight: int(e.Weight)})
		total += int(e.Weight)
	}
	sort.SliceStable(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if a.From != b.From {
			return a.From < b.From
		}
		return a.To < b.To
	})

	g.Stats = &Stats{
		TotalNodes:  wg.VertexCount(),
		TotalEdges:  wg.EdgeCount(),
		TotalWeight: total,
	}
	return g
}

// HasNode reports whether id is a node of g.
func (g *Graph) HasNode(id string) bool {
	i := sort.Search(len(g.Nodes), func(i int) bool { return g.Nodes[i].ID >= id })
	return i < len(g.Nodes) && g.Nodes[i].ID == id
}

// NodeIDs returns the node ids in graph order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Empty reports whether the graph has no edges.
func (g *Graph) Empty() bool {
	return len(g.Edges) == 0
}
