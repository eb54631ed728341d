// Package pipeline wires document loading, tokenization, graph building,
// and selection together for the CLI, the HTTP server, and the MCP server.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/nvandessel/cooccur/internal/config"
	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/layout"
	"github.com/nvandessel/cooccur/internal/logging"
	"github.com/nvandessel/cooccur/internal/source"
	"github.com/nvandessel/cooccur/internal/tokenize"
	"github.com/nvandessel/cooccur/internal/visualization"
)

// Builder runs the single-document pipeline. It holds no per-document state
// and may be reused.
type Builder struct {
	tokenizer *tokenize.Tokenizer
	mode      cooccur.CountMode
	log       *slog.Logger
	decisions *logging.DecisionLogger
}

// New creates a Builder from cfg. log may be nil; decisions may be nil.
func New(cfg *config.Config, log *slog.Logger, decisions *logging.DecisionLogger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	mode, err := cooccur.ParseCountMode(cfg.Graph.CountMode)
	if err != nil {
		return nil, err
	}
	tok, err := tokenize.New(tokenize.Options{
		Splitter:       cfg.Tokenizer.SentenceSplitter,
		ExtraStopWords: cfg.Tokenizer.ExtraStopWords,
		StopWordsFile:  cfg.Tokenizer.StopWordsFile,
	})
	if err != nil {
		return nil, err
	}
	return NewWith(tok, mode, log, decisions), nil
}

// NewWith creates a Builder around an existing tokenizer.
func NewWith(tok *tokenize.Tokenizer, mode cooccur.CountMode, log *slog.Logger, decisions *logging.DecisionLogger) *Builder {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Builder{tokenizer: tok, mode: mode, log: log, decisions: decisions}
}

// Result is a built graph plus what went into it.
type Result struct {
	Source    string            `json:"source"`
	Format    string            `json:"format"`
	CountMode cooccur.CountMode `json:"count_mode"`
	Sentences int               `json:"sentences"`
	Tokens    int               `json:"tokens"`
	Graph     *cooccur.Graph    `json:"-"`
}

// BuildFromFile loads path and builds its co-occurrence graph.
func (b *Builder) BuildFromFile(ctx context.Context, path string) (*Result, error) {
	doc, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	b.log.Debug("document loaded", "path", path, "format", doc.Format, "bytes", len(doc.Text))

	res, err := b.BuildFromText(ctx, doc.Text)
	if err != nil {
		return nil, err
	}
	res.Source = doc.Path
	res.Format = doc.Format
	return res, nil
}

// BuildFromText builds the co-occurrence graph of text. ctx is checked
// between sentences.
func (b *Builder) BuildFromText(ctx context.Context, text string) (*Result, error) {
	start := time.Now()
	gb := cooccur.NewBuilder(b.mode)
	trace := b.log.Enabled(ctx, logging.LevelTrace)
	for tokens := range b.tokenizer.Sentences(text) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build graph: %w", err)
		}
		if trace {
			b.log.Log(ctx, logging.LevelTrace, "sentence", "tokens", strings.Join(tokens, " "))
		}
		gb.AddSentence(tokens)
	}
	g := gb.Graph()

	b.log.Debug("graph built",
		"sentences", gb.Sentences(),
		"tokens", gb.Tokens(),
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"count_mode", b.mode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	b.decisions.Log("graph_built", map[string]any{
		"count_mode": string(b.mode),
		"sentences":  gb.Sentences(),
		"tokens":     gb.Tokens(),
		"nodes":      g.NodeCount(),
		"edges":      g.EdgeCount(),
	})

	return &Result{
		CountMode: b.mode,
		Sentences: gb.Sentences(),
		Tokens:    gb.Tokens(),
		Graph:     g,
	}, nil
}

// Select applies c to the graph and logs the choice. Requested names that
// are not in the graph are logged at debug and reported in the Selection.
func (b *Builder) Select(res *Result, c cooccur.Criteria) cooccur.Selection {
	sel := cooccur.Select(res.Graph, c)
	if len(sel.Missing) > 0 {
		b.log.Debug("requested words not in graph", "missing", sel.Missing)
	}
	b.log.Debug("subgraph selected",
		"strategy", sel.Strategy,
		"zoom", c.Zoom,
		"names", len(c.Names),
		"nodes", sel.Subgraph.NodeCount(),
		"edges", sel.Subgraph.EdgeCount(),
	)
	b.decisions.Log("selection", map[string]any{
		"strategy": string(sel.Strategy),
		"zoom":     c.Zoom,
		"names":    c.Names,
		"missing":  sel.Missing,
		"nodes":    sel.Subgraph.NodeCount(),
		"edges":    sel.Subgraph.EdgeCount(),
	})
	return sel
}

// RenderOptions maps the render section of cfg onto visualization options.
func RenderOptions(cfg *config.Config) visualization.Options {
	opts := visualization.DefaultOptions()
	opts.Style.DegreeThreshold = cfg.Render.DegreeThreshold
	opts.Width = cfg.Render.Width
	opts.Height = cfg.Render.Height
	opts.Layout = layout.Options{Iterations: cfg.Render.LayoutIterations, Seed: cfg.Render.Seed}
	return opts
}
