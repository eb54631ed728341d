package cooccur

import (
	"sort"
)

// Subgraph is a read-only induced view over a subset of a graph's nodes.
type Subgraph struct {
	parent *Graph
	nodes  []Node
	member map[string]bool
	edges  []Edge
	degree map[string]int
}

// Induced returns the subgraph of g restricted to words. Words that are not
// nodes of g are ignored. Nodes keep parent order and edges keep parent
// creation order.
func Induced(g *Graph, words []string) *Subgraph {
	member := make(map[string]bool, len(words))
	for _, w := range words {
		if g.HasNode(w) {
			member[w] = true
		}
	}

	sub := &Subgraph{
		parent: g,
		member: member,
		degree: make(map[string]int, len(member)),
	}
	for _, n := range g.nodes {
		if member[n.Word] {
			sub.nodes = append(sub.nodes, n)
		}
	}
	for _, e := range g.edges {
		if member[e.Source] && member[e.Target] {
			sub.edges = append(sub.edges, e)
			sub.degree[e.Source]++
			sub.degree[e.Target]++
		}
	}
	return sub
}

// Whole returns a subgraph covering every node of g.
func Whole(g *Graph) *Subgraph {
	words := make([]string, 0, len(g.nodes))
	for _, n := range g.nodes {
		words = append(words, n.Word)
	}
	return Induced(g, words)
}

// Parent returns the graph the subgraph was selected from.
func (s *Subgraph) Parent() *Graph { return s.parent }

// Nodes returns a copy of the selected nodes in parent order.
func (s *Subgraph) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns a copy of the induced edges in parent creation order.
func (s *Subgraph) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// NodeCount returns the number of selected nodes.
func (s *Subgraph) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of induced edges.
func (s *Subgraph) EdgeCount() int { return len(s.edges) }

// Contains reports whether word is part of the selection.
func (s *Subgraph) Contains(word string) bool { return s.member[word] }

// Degree returns the degree of word within the subgraph.
func (s *Subgraph) Degree(word string) int { return s.degree[word] }

// Words returns the selected words in parent order.
func (s *Subgraph) Words() []string {
	out := make([]string, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n.Word)
	}
	return out
}

// Criteria selects nodes either by explicit name or by top-weighted edges.
// A non-empty Names list takes precedence over Zoom.
type Criteria struct {
	Names []string
	Zoom  int
}

// Strategy names the selection strategy that produced a Selection.
type Strategy string

const (
	StrategyNames  Strategy = "names"
	StrategyRanked Strategy = "ranked"
)

// Selection is the outcome of Select.
type Selection struct {
	Strategy Strategy
	Subgraph *Subgraph
	// Missing lists requested names that are not nodes of the graph.
	Missing []string
}

// Select applies c to g.
func Select(g *Graph, c Criteria) Selection {
	if len(c.Names) > 0 {
		sub, missing := SelectNames(g, c.Names)
		return Selection{Strategy: StrategyNames, Subgraph: sub, Missing: missing}
	}
	return Selection{Strategy: StrategyRanked, Subgraph: SelectTopEdges(g, c.Zoom)}
}

// SelectNames returns the subgraph induced by names ∩ nodes(g), plus the
// requested names that are absent. Matching is exact and case-sensitive.
func SelectNames(g *Graph, names []string) (*Subgraph, []string) {
	var missing []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if !g.HasNode(name) {
			missing = append(missing, name)
		}
	}
	return Induced(g, names), missing
}

// TopEdges returns up to k edges sorted by descending count. Ties keep
// creation order. k <= 0 returns nil.
func TopEdges(g *Graph, k int) []Edge {
	if k <= 0 || len(g.edges) == 0 {
		return nil
	}
	sorted := g.Edges()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	return sorted[:k]
}

// SelectTopEdges returns the subgraph induced by the endpoints of the top k edges.
func SelectTopEdges(g *Graph, k int) *Subgraph {
	top := TopEdges(g, k)
	words := make([]string, 0, 2*len(top))
	for _, e := range top {
		words = append(words, e.Source, e.Target)
	}
	return Induced(g, words)
}

// TopNodes returns up to n nodes sorted by descending count. Ties keep
// first-sighting order.
func TopNodes(g *Graph, n int) []Node {
	if n <= 0 || len(g.nodes) == 0 {
		return nil
	}
	sorted := g.Nodes()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
