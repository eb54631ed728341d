// Package cooccur builds and queries word co-occurrence graphs.
//
// A Graph is populated once by a Builder and is read-only afterwards: the
// exported API exposes no mutators. Nodes keep first-sighting order and edges
// keep creation order; both orders are used to break ties deterministically.
package cooccur

// Node is a word and the number of times it occurred in the document.
type Node struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Pair is the canonical key of an undirected edge. A is always less than B.
type Pair struct {
	A string
	B string
}

// NewPair returns the canonical pair for two words in either order.
func NewPair(v, w string) Pair {
	if w < v {
		v, w = w, v
	}
	return Pair{A: v, B: w}
}

// Edge is an undirected co-occurrence between two distinct words.
// Source and Target follow the canonical Pair ordering.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// Pair returns the canonical key for the edge.
func (e Edge) Pair() Pair {
	return Pair{A: e.Source, B: e.Target}
}

// Other returns the endpoint opposite word. It returns "" if word is not an endpoint.
func (e Edge) Other(word string) string {
	switch word {
	case e.Source:
		return e.Target
	case e.Target:
		return e.Source
	default:
		return ""
	}
}

// Graph is a weighted undirected co-occurrence graph.
type Graph struct {
	nodeIndex map[string]int
	nodes     []Node

	edgeIndex map[Pair]int
	edges     []Edge

	// adjacency keeps neighbor lists in first-co-occurrence order.
	adjacency map[string][]string
}

func newGraph() *Graph {
	return &Graph{
		nodeIndex: make(map[string]int),
		edgeIndex: make(map[Pair]int),
		adjacency: make(map[string][]string),
	}
}

// addOccurrence creates word with count 1 or increments it.
func (g *Graph) addOccurrence(word string) {
	if i, ok := g.nodeIndex[word]; ok {
		g.nodes[i].Count++
		return
	}
	g.nodeIndex[word] = len(g.nodes)
	g.nodes = append(g.nodes, Node{Word: word, Count: 1})
}

// addCooccurrence creates the edge {v, w} with count 1 or increments it.
// Self-pairs are ignored.
func (g *Graph) addCooccurrence(v, w string) {
	if v == w {
		return
	}
	key := NewPair(v, w)
	if i, ok := g.edgeIndex[key]; ok {
		g.edges[i].Count++
		return
	}
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Edge{Source: key.A, Target: key.B, Count: 1})
	g.adjacency[v] = append(g.adjacency[v], w)
	g.adjacency[w] = append(g.adjacency[w], v)
}

// NodeCount returns the number of distinct words.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct co-occurring pairs.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether word is a node of the graph.
func (g *Graph) HasNode(word string) bool {
	_, ok := g.nodeIndex[word]
	return ok
}

// Node returns the node for word.
func (g *Graph) Node(word string) (Node, bool) {
	i, ok := g.nodeIndex[word]
	if !ok {
		return Node{}, false
	}
	return g.nodes[i], true
}

// Edge returns the edge between v and w. Argument order does not matter.
func (g *Graph) Edge(v, w string) (Edge, bool) {
	i, ok := g.edgeIndex[NewPair(v, w)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// Nodes returns a copy of all nodes in first-sighting order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges returns a copy of all edges in creation order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// Neighbors returns the words that co-occur with word, in first-co-occurrence order.
func (g *Graph) Neighbors(word string) []string {
	nbrs := g.adjacency[word]
	out := make([]string, len(nbrs))
	copy(out, nbrs)
	return out
}

// Degree returns the number of distinct words that co-occur with word.
func (g *Graph) Degree(word string) int {
	return len(g.adjacency[word])
}
