// Package ranking scores words by their structural importance in a
// co-occurrence subgraph.
package ranking

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/nvandessel/cooccur/internal/cooccur"
)

// PageRankConfig holds configuration for PageRank computation.
type PageRankConfig struct {
	// DampingFactor (d) is the probability of following an edge vs. teleporting.
	// Standard value: 0.85.
	DampingFactor float64

	// Tolerance is the convergence threshold on the 2-norm of the change
	// between iterations. Default: 1e-6.
	Tolerance float64

	// Weighted follows edges in proportion to their co-occurrence count
	// instead of uniformly.
	Weighted bool
}

// DefaultPageRankConfig returns the default PageRank configuration.
func DefaultPageRankConfig() PageRankConfig {
	return PageRankConfig{
		DampingFactor: 0.85,
		Tolerance:     1e-6,
		Weighted:      true,
	}
}

// ComputePageRank calculates PageRank scores for every word in sub.
// Returns a map of word to score normalized to [0, 1] by the maximum.
//
// Each undirected edge becomes a link in both directions. Isolated words
// spread their score evenly over the graph.
func ComputePageRank(ctx context.Context, sub *cooccur.Subgraph, config PageRankConfig) (map[string]float64, error) {
	nodes := sub.Nodes()
	if len(nodes) == 0 {
		return make(map[string]float64), nil
	}

	ids := make(map[string]int64, len(nodes))
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i, n := range nodes {
		ids[n.Word] = int64(i)
		g.AddNode(simple.Node(i))
	}
	for _, e := range sub.Edges() {
		w := 1.0
		if config.Weighted {
			w = float64(e.Count)
		}
		from, to := simple.Node(ids[e.Source]), simple.Node(ids[e.Target])
		g.SetWeightedEdge(simple.WeightedEdge{F: from, T: to, W: w})
		g.SetWeightedEdge(simple.WeightedEdge{F: to, T: from, W: w})
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("computing pagerank: %w", err)
	}
	ranks := network.PageRank(g, config.DampingFactor, config.Tolerance)

	scores := make(map[string]float64, len(nodes))
	maxScore := 0.0
	for i, n := range nodes {
		score := ranks[int64(i)]
		scores[n.Word] = score
		if score > maxScore {
			maxScore = score
		}
	}
	if maxScore > 0 {
		for word, score := range scores {
			scores[word] = score / maxScore
		}
	}

	return scores, nil
}
