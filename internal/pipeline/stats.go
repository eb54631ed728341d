package pipeline

import (
	"context"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/ranking"
)

// Summary describes a built graph for `cooccur stats` and the MCP tools.
type Summary struct {
	Source     string          `json:"source,omitempty"`
	CountMode  string          `json:"count_mode"`
	Sentences  int             `json:"sentences"`
	Tokens     int             `json:"tokens"`
	Nodes      int             `json:"nodes"`
	Edges      int             `json:"edges"`
	TopWords   []cooccur.Node  `json:"top_words"`
	TopEdges   []cooccur.Edge  `json:"top_edges"`
	PageRank   []ranking.Score `json:"pagerank"`
	Centrality []ranking.Score `json:"degree_centrality"`
}

// Summarize ranks the whole graph of res and keeps the top n of each list.
func Summarize(ctx context.Context, res *Result, n int) (*Summary, error) {
	whole := cooccur.Whole(res.Graph)
	pr, err := ranking.ComputePageRank(ctx, whole, ranking.DefaultPageRankConfig())
	if err != nil {
		return nil, err
	}
	words := whole.Words()

	s := &Summary{
		Source:     res.Source,
		CountMode:  string(res.CountMode),
		Sentences:  res.Sentences,
		Tokens:     res.Tokens,
		Nodes:      res.Graph.NodeCount(),
		Edges:      res.Graph.EdgeCount(),
		TopWords:   cooccur.TopNodes(res.Graph, n),
		TopEdges:   cooccur.TopEdges(res.Graph, n),
		PageRank:   ranking.Top(pr, words, n),
		Centrality: ranking.Top(ranking.DegreeCentrality(whole), words, n),
	}
	if s.TopWords == nil {
		s.TopWords = []cooccur.Node{}
	}
	if s.TopEdges == nil {
		s.TopEdges = []cooccur.Edge{}
	}
	if s.PageRank == nil {
		s.PageRank = []ranking.Score{}
	}
	if s.Centrality == nil {
		s.Centrality = []ranking.Score{}
	}
	return s, nil
}
