package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/pathutil"
	"github.com/nvandessel/cooccur/internal/pipeline"
	"github.com/nvandessel/cooccur/internal/ranking"
	"github.com/nvandessel/cooccur/internal/ratelimit"
	"github.com/nvandessel/cooccur/internal/visualization"
)

const defaultStatsTop = 10

// registerTools registers all cooccur MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "cooccur_graph",
		Description: "Build the word co-occurrence graph of a document and render a subgraph selected by explicit words or by the top-K edges, as JSON, DOT, HTML, or an adjacency list",
	}, s.handleGraph)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "cooccur_stats",
		Description: "Summarize the word co-occurrence graph of a document: sentence and word counts, most frequent words, strongest pairs, and PageRank",
	}, s.handleStats)
}

// build validates path against the allowed roots and builds its graph.
func (s *Server) build(ctx context.Context, path, countMode string) (*pipeline.Result, error) {
	resolved, err := pathutil.Resolve(path, s.roots)
	if err != nil {
		return nil, err
	}

	settings := *s.settings
	if countMode != "" {
		settings.Graph.CountMode = countMode
	}
	b, err := pipeline.New(&settings, s.log, nil)
	if err != nil {
		return nil, err
	}
	res, err := b.BuildFromFile(ctx, resolved)
	if err != nil {
		// Keep absolute paths out of tool errors.
		return nil, errors.New(strings.ReplaceAll(err.Error(), resolved, pathutil.RedactPath(resolved)))
	}
	return res, nil
}

// handleGraph implements the cooccur_graph tool.
func (s *Server) handleGraph(ctx context.Context, req *sdk.CallToolRequest, args GraphInput) (_ *sdk.CallToolResult, _ GraphOutput, retErr error) {
	start := time.Now()
	defer func() {
		params := map[string]any{"path": args.Path, "format": args.Format}
		if args.Zoom != nil {
			params["zoom"] = *args.Zoom
		}
		if len(args.Names) > 0 {
			params["names"] = args.Names
		}
		if args.CountMode != "" {
			params["count_mode"] = args.CountMode
		}
		s.auditTool("cooccur_graph", start, retErr, sanitizeToolParams(params))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, "cooccur_graph"); err != nil {
		return nil, GraphOutput{}, err
	}

	format := visualization.FormatJSON
	if args.Format != "" {
		f, err := visualization.ParseFormat(args.Format)
		if err != nil {
			return nil, GraphOutput{}, err
		}
		format = f
	}
	if format == visualization.FormatPNG {
		return nil, GraphOutput{}, fmt.Errorf("unsupported format %q (use 'json', 'dot', 'html', or 'adjlist')", args.Format)
	}

	criteria := s.settings.Criteria()
	if args.Zoom != nil {
		if *args.Zoom < 0 {
			return nil, GraphOutput{}, fmt.Errorf("zoom must be >= 0, got %d", *args.Zoom)
		}
		criteria.Zoom = *args.Zoom
		if len(args.Names) == 0 {
			// Names win over zoom in Select.
			criteria.Names = nil
		}
	}
	if len(args.Names) > 0 {
		criteria.Names = args.Names
	}

	res, err := s.build(ctx, args.Path, args.CountMode)
	if err != nil {
		return nil, GraphOutput{}, err
	}
	sel := cooccur.Select(res.Graph, criteria)
	sub := sel.Subgraph

	opts := pipeline.RenderOptions(s.settings)
	out := GraphOutput{
		Format:    string(format),
		Strategy:  string(sel.Strategy),
		NodeCount: sub.NodeCount(),
		EdgeCount: sub.EdgeCount(),
		Missing:   sel.Missing,
	}

	switch format {
	case visualization.FormatJSON:
		out.Graph = visualization.RenderJSON(sub, opts)
	case visualization.FormatDOT:
		out.Graph = visualization.RenderDOT(sub, opts.Style)
	case visualization.FormatAdjList:
		var b strings.Builder
		if err := cooccur.WriteAdjList(&b, sub); err != nil {
			return nil, GraphOutput{}, fmt.Errorf("render adjlist: %w", err)
		}
		out.Graph = b.String()
	case visualization.FormatHTML:
		pr, err := ranking.ComputePageRank(ctx, sub, ranking.DefaultPageRankConfig())
		if err != nil {
			return nil, GraphOutput{}, err
		}
		opts.Enrichment = &visualization.EnrichmentData{PageRank: pr}
		html, err := visualization.RenderHTML(visualization.BuildView(sub, opts), nil)
		if err != nil {
			return nil, GraphOutput{}, fmt.Errorf("render HTML: %w", err)
		}
		out.Graph = string(html)
	}

	return nil, out, nil
}

// handleStats implements the cooccur_stats tool.
func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (_ *sdk.CallToolResult, _ StatsOutput, retErr error) {
	start := time.Now()
	defer func() {
		params := map[string]any{"path": args.Path}
		if args.Top != 0 {
			params["top"] = args.Top
		}
		s.auditTool("cooccur_stats", start, retErr, sanitizeToolParams(params))
	}()

	if err := ratelimit.CheckLimit(s.toolLimiters, "cooccur_stats"); err != nil {
		return nil, StatsOutput{}, err
	}

	top := args.Top
	if top <= 0 {
		top = defaultStatsTop
	}

	res, err := s.build(ctx, args.Path, "")
	if err != nil {
		return nil, StatsOutput{}, err
	}
	sum, err := pipeline.Summarize(ctx, res, top)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	return nil, StatsOutput{
		Sentences:  sum.Sentences,
		Tokens:     sum.Tokens,
		Nodes:      sum.Nodes,
		Edges:      sum.Edges,
		CountMode:  sum.CountMode,
		TopWords:   sum.TopWords,
		TopEdges:   sum.TopEdges,
		PageRank:   scoreItems(sum.PageRank),
		Centrality: scoreItems(sum.Centrality),
	}, nil
}

func scoreItems(scores []ranking.Score) []ScoreItem {
	items := make([]ScoreItem, len(scores))
	for i, sc := range scores {
		items[i] = ScoreItem{Word: sc.Word, Score: sc.Score}
	}
	return items
}
