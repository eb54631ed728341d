package mcp

import "github.com/nvandessel/cooccur/internal/cooccur"

// GraphInput defines the input for the cooccur_graph tool.
type GraphInput struct {
	Path      string   `json:"path" jsonschema:"Document path (txt, md, html, pdf, docx), absolute or relative to the first allowed root"`
	Zoom      *int     `json:"zoom,omitempty" jsonschema:"Number of highest-count edges whose endpoints are kept (default from config)"`
	Names     []string `json:"names,omitempty" jsonschema:"Explicit words to keep; takes precedence over zoom"`
	Format    string   `json:"format,omitempty" jsonschema:"Output format: json (default), dot, html, or adjlist"`
	CountMode string   `json:"count_mode,omitempty" jsonschema:"Pair counting: once (default) or legacy (every pair counted twice)"`
}

// GraphOutput defines the output for the cooccur_graph tool.
type GraphOutput struct {
	Format    string   `json:"format" jsonschema:"Format of the graph field"`
	Strategy  string   `json:"strategy" jsonschema:"Selection strategy that was applied: names or ranked"`
	Graph     any      `json:"graph" jsonschema:"The rendered subgraph; an object for json, text otherwise"`
	NodeCount int      `json:"node_count" jsonschema:"Number of words in the subgraph"`
	EdgeCount int      `json:"edge_count" jsonschema:"Number of co-occurrences in the subgraph"`
	Missing   []string `json:"missing,omitempty" jsonschema:"Requested names that do not occur in the document"`
}

// StatsInput defines the input for the cooccur_stats tool.
type StatsInput struct {
	Path string `json:"path" jsonschema:"Document path, absolute or relative to the first allowed root"`
	Top  int    `json:"top,omitempty" jsonschema:"Length of each ranked list (default: 10)"`
}

// StatsOutput defines the output for the cooccur_stats tool.
type StatsOutput struct {
	Sentences  int            `json:"sentences" jsonschema:"Number of sentences read"`
	Tokens     int            `json:"tokens" jsonschema:"Number of words kept after filtering"`
	Nodes      int            `json:"nodes" jsonschema:"Distinct words in the graph"`
	Edges      int            `json:"edges" jsonschema:"Distinct co-occurring pairs in the graph"`
	CountMode  string         `json:"count_mode" jsonschema:"Pair counting mode used"`
	TopWords   []cooccur.Node `json:"top_words" jsonschema:"Most frequent words"`
	TopEdges   []cooccur.Edge `json:"top_edges" jsonschema:"Highest-count co-occurrences"`
	PageRank   []ScoreItem    `json:"pagerank" jsonschema:"Words ranked by weighted PageRank"`
	Centrality []ScoreItem    `json:"degree_centrality" jsonschema:"Words ranked by degree centrality"`
}

// ScoreItem is a ranked word.
type ScoreItem struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}
