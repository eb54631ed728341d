// Package visualization renders co-occurrence subgraphs in various output formats.
package visualization

import (
	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/layout"
)

// EnrichmentData provides optional data to augment the rendered graph.
type EnrichmentData struct {
	// PageRank maps words to their PageRank scores (0.0-1.0).
	PageRank map[string]float64
}

// Options configures rendering.
type Options struct {
	Style      Style
	Enrichment *EnrichmentData
	Layout     layout.Options
	Width      int
	Height     int
	Title      string
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Style:  DefaultStyle(),
		Layout: layout.DefaultOptions(),
		Width:  1200,
		Height: 900,
		Title:  "Co-occurrence network",
	}
}

// ViewNode is a word as drawn.
type ViewNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Count    int      `json:"count"`
	Degree   int      `json:"degree"`
	Color    string   `json:"color"`
	PageRank *float64 `json:"pagerank,omitempty"`
	Radius   float64  `json:"radius"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
}

// ViewEdge is a co-occurrence as drawn.
type ViewEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Count  int     `json:"count"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// View is a rendered-ready subgraph: styled, sized, and laid out in pixel
// coordinates. It is also the JSON output format.
type View struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	// LabelColor is the fill used for word labels.
	LabelColor string     `json:"label_color"`
	Nodes      []ViewNode `json:"nodes"`
	Edges      []ViewEdge `json:"edges"`
	NodeCount  int        `json:"node_count"`
	EdgeCount  int        `json:"edge_count"`
}

const (
	minRadius = 5.0
	maxRadius = 18.0
	margin    = 40.0
)

// BuildView applies style, sizing, and layout to sub.
func BuildView(sub *cooccur.Subgraph, opts Options) *View {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	nodes := sub.Nodes()
	edges := sub.Edges()
	pos := layout.Compute(sub, opts.Layout)

	v := &View{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		LabelColor: opts.Style.LabelColor,
		Nodes:      make([]ViewNode, 0, len(nodes)),
		Edges:      make([]ViewEdge, 0, len(edges)),
		NodeCount:  len(nodes),
		EdgeCount:  len(edges),
	}

	minCount, maxCount := countRange(nodes)
	w := float64(opts.Width) - 2*margin
	h := float64(opts.Height) - 2*margin
	for _, n := range nodes {
		vn := ViewNode{
			ID:     n.Word,
			Label:  Label(n.Word),
			Count:  n.Count,
			Degree: sub.Degree(n.Word),
			Color:  opts.Style.ColorFor(sub.Degree(n.Word)),
		}
		size := Normalize(float64(n.Count), minCount, maxCount)
		if opts.Enrichment != nil && opts.Enrichment.PageRank != nil {
			if pr, ok := opts.Enrichment.PageRank[n.Word]; ok {
				vn.PageRank = &pr
				size = pr
			}
		}
		vn.Radius = minRadius + (maxRadius-minRadius)*size
		p := pos[n.Word]
		vn.X = margin + p.X*w
		vn.Y = margin + p.Y*h
		v.Nodes = append(v.Nodes, vn)
	}

	lo, hi := edgeRange(edges)
	for _, e := range edges {
		t := Normalize(float64(e.Count), lo, hi)
		v.Edges = append(v.Edges, ViewEdge{
			Source: e.Source,
			Target: e.Target,
			Count:  e.Count,
			Color:  Blues(t),
			Width:  EdgeWidth(t),
		})
	}
	return v
}

func countRange(nodes []cooccur.Node) (float64, float64) {
	if len(nodes) == 0 {
		return 0, 0
	}
	lo, hi := nodes[0].Count, nodes[0].Count
	for _, n := range nodes[1:] {
		lo, hi = min(lo, n.Count), max(hi, n.Count)
	}
	return float64(lo), float64(hi)
}

func edgeRange(edges []cooccur.Edge) (float64, float64) {
	if len(edges) == 0 {
		return 0, 0
	}
	lo, hi := edges[0].Count, edges[0].Count
	for _, e := range edges[1:] {
		lo, hi = min(lo, e.Count), max(hi, e.Count)
	}
	return float64(lo), float64(hi)
}
