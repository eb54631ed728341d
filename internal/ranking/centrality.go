package ranking

import (
	"sort"

	"github.com/nvandessel/cooccur/internal/cooccur"
)

// DegreeCentrality returns degree/(n-1) for each word in sub. A subgraph
// with fewer than two nodes scores every word 0.
func DegreeCentrality(sub *cooccur.Subgraph) map[string]float64 {
	nodes := sub.Nodes()
	scores := make(map[string]float64, len(nodes))
	if len(nodes) < 2 {
		for _, node := range nodes {
			scores[node.Word] = 0
		}
		return scores
	}
	denom := float64(len(nodes) - 1)
	for _, node := range nodes {
		scores[node.Word] = float64(sub.Degree(node.Word)) / denom
	}
	return scores
}

// Score pairs a word with a ranking value.
type Score struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Top returns up to n entries of scores ordered by descending score. Ties
// follow the order of words, which should be the subgraph node order.
func Top(scores map[string]float64, words []string, n int) []Score {
	if n <= 0 {
		return nil
	}
	out := make([]Score, 0, len(words))
	for _, w := range words {
		if s, ok := scores[w]; ok {
			out = append(out, Score{Word: w, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if n < len(out) {
		out = out[:n]
	}
	return out
}
