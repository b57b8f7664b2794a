package graph

import "newsresearch/internal/model"

// Graph is a compiled, immutable stage graph.
type Graph struct {
	stages  []Stage
	edges   []Edge
	succ    [][]int
	preds   []int
	entries []int
	initial model.Fields
}

// Nodes lists Start, every stage in declaration order, then End.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.stages)+2)
	nodes = append(nodes, Start)
	for _, st := range g.stages {
		nodes = append(nodes, st.Name)
	}
	return append(nodes, End)
}

// Edges lists the edges in declaration order, duplicates removed.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

func (g *Graph) Stage(name string) (Stage, bool) {
	for _, st := range g.stages {
		if st.Name == name {
			return st, true
		}
	}
	return Stage{}, false
}

// Predecessors returns the stages name waits for.
func (g *Graph) Predecessors(name string) []string {
	var out []string
	for _, e := range g.edges {
		if e.To == name && e.From != Start {
			out = append(out, e.From)
		}
	}
	return out
}
