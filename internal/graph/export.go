package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteDOT writes g in Graphviz DOT syntax. Edge pen width follows weight.
func WriteDOT(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", strconv.Quote("bigrams_"+string(g.Group)))
	fmt.Fprintf(bw, "  label=%s;\n", strconv.Quote(fmt.Sprintf("group=%s n>%d", g.Group, g.Threshold)))
	fmt.Fprintln(bw, "  node [shape=point];")
	for _, n := range g.Nodes {
		fmt.Fprintf(bw, "  %s [xlabel=%s];\n", strconv.Quote(n.ID), strconv.Quote(n.ID))
	}
	maxWeight := 1
	for _, e := range g.Edges {
		if e.Weight > maxWeight {
			maxWeight = e.Weight
		}
	}
	for _, e := range g.Edges {
		width := 0.5 + 2.5*float64(e.Weight)/float64(maxWeight)
		fmt.Fprintf(bw, "  %s -> %s [weight=%d, penwidth=%.2f];\n",
			strconv.Quote(e.From), strconv.Quote(e.To), e.Weight, width)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
