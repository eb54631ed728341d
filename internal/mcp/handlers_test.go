package mcp

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/pathutil"
	"github.com/nvandessel/cooccur/internal/ratelimit"
	"github.com/nvandessel/cooccur/internal/visualization"
)

func intPtr(v int) *int { return &v }

func TestHandleGraph_JSON(t *testing.T) {
	server, _ := setupTestServer(t)

	result, output, err := server.handleGraph(context.Background(), nil, GraphInput{
		Path: "russia.txt",
		Zoom: intPtr(1),
	})
	if err != nil {
		t.Fatalf("handleGraph failed: %v", err)
	}
	if result != nil {
		t.Error("Expected nil result (SDK auto-populates)")
	}
	if output.Format != "json" {
		t.Errorf("Format = %q, want json", output.Format)
	}
	if output.Strategy != string(cooccur.StrategyRanked) {
		t.Errorf("Strategy = %q, want ranked", output.Strategy)
	}
	// The top edge is bond-tatiana (count 2, created first).
	if output.NodeCount != 2 || output.EdgeCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", output.NodeCount, output.EdgeCount)
	}
	view, ok := output.Graph.(*visualization.View)
	if !ok {
		t.Fatalf("Graph = %T, want *visualization.View", output.Graph)
	}
	if view.Edges[0].Source != "bond" || view.Edges[0].Target != "tatiana" {
		t.Errorf("edge = %+v, want bond-tatiana", view.Edges[0])
	}
}

func TestHandleGraph_Names(t *testing.T) {
	server, root := setupTestServer(t)

	_, output, err := server.handleGraph(context.Background(), nil, GraphInput{
		Path:   filepath.Join(root, "russia.txt"),
		Names:  []string{"bond", "kerim", "blofeld"},
		Format: "dot",
	})
	if err != nil {
		t.Fatalf("handleGraph failed: %v", err)
	}
	if output.Strategy != string(cooccur.StrategyNames) {
		t.Errorf("Strategy = %q, want names", output.Strategy)
	}
	if len(output.Missing) != 1 || output.Missing[0] != "blofeld" {
		t.Errorf("Missing = %v, want [blofeld]", output.Missing)
	}
	dot, ok := output.Graph.(string)
	if !ok || !strings.HasPrefix(dot, "graph cooccur {") {
		t.Errorf("Graph = %v, want DOT text", output.Graph)
	}
	if !strings.Contains(dot, `"bond" -- "kerim"`) {
		t.Errorf("DOT missing bond-kerim edge:\n%s", dot)
	}
}

func TestHandleGraph_ZoomOverridesConfiguredNames(t *testing.T) {
	server, _ := setupTestServer(t)
	server.toolLimiters = ratelimit.ToolLimiters{}
	server.settings.Selection.Names = []string{"kerim", "grant"}

	tests := []struct {
		name         string
		args         GraphInput
		wantStrategy cooccur.Strategy
		wantNodes    int
	}{
		{"configured names", GraphInput{Path: "russia.txt"}, cooccur.StrategyNames, 2},
		{"zoom replaces names", GraphInput{Path: "russia.txt", Zoom: intPtr(1)}, cooccur.StrategyRanked, 2},
		{"explicit names beat zoom", GraphInput{Path: "russia.txt", Zoom: intPtr(1), Names: []string{"bond", "kerim", "grant"}}, cooccur.StrategyNames, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleGraph(context.Background(), nil, tt.args)
			if err != nil {
				t.Fatalf("handleGraph failed: %v", err)
			}
			if output.Strategy != string(tt.wantStrategy) {
				t.Errorf("Strategy = %q, want %q", output.Strategy, tt.wantStrategy)
			}
			if output.NodeCount != tt.wantNodes {
				t.Errorf("NodeCount = %d, want %d", output.NodeCount, tt.wantNodes)
			}
		})
	}
	if got := server.settings.Selection.Names; len(got) != 2 {
		t.Errorf("configured names changed to %v", got)
	}
}

func TestHandleGraph_Formats(t *testing.T) {
	server, _ := setupTestServer(t)
	server.toolLimiters = ratelimit.ToolLimiters{}

	tests := []struct {
		format string
		prefix string
	}{
		{"adjlist", "# cooccur adjacency list"},
		{"html", "<!DOCTYPE html>"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, output, err := server.handleGraph(context.Background(), nil, GraphInput{Path: "russia.txt", Format: tt.format})
			if err != nil {
				t.Fatalf("handleGraph failed: %v", err)
			}
			text, _ := output.Graph.(string)
			if !strings.HasPrefix(text, tt.prefix) {
				t.Errorf("output starts %.40q, want prefix %q", text, tt.prefix)
			}
		})
	}

	for _, format := range []string{"png", "svg"} {
		if _, _, err := server.handleGraph(context.Background(), nil, GraphInput{Path: "russia.txt", Format: format}); err == nil {
			t.Errorf("format %q: expected error", format)
		}
	}
}

func TestHandleGraph_CountMode(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleGraph(context.Background(), nil, GraphInput{
		Path:      "russia.txt",
		Names:     []string{"bond", "tatiana"},
		CountMode: "legacy",
	})
	if err != nil {
		t.Fatalf("handleGraph failed: %v", err)
	}
	view := output.Graph.(*visualization.View)
	if len(view.Edges) != 1 || view.Edges[0].Count != 4 {
		t.Errorf("edges = %+v, want bond-tatiana counted 4 in legacy mode", view.Edges)
	}

	_, _, err = server.handleGraph(context.Background(), nil, GraphInput{Path: "russia.txt", CountMode: "twice"})
	if !errors.Is(err, cooccur.ErrInvalidCountMode) {
		t.Errorf("err = %v, want ErrInvalidCountMode", err)
	}
}

func TestHandleGraph_PathOutsideRoot(t *testing.T) {
	server, _ := setupTestServer(t)

	for _, p := range []string{"../escape.txt", filepath.Join(t.TempDir(), "other.txt")} {
		_, _, err := server.handleGraph(context.Background(), nil, GraphInput{Path: p})
		if !errors.Is(err, pathutil.ErrOutsideRoots) {
			t.Errorf("path %q: err = %v, want ErrOutsideRoots", p, err)
		}
	}
}

func TestHandleGraph_MissingFileRedacted(t *testing.T) {
	server, root := setupTestServer(t)

	_, _, err := server.handleGraph(context.Background(), nil, GraphInput{Path: "missing.txt"})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if strings.Contains(err.Error(), root) {
		t.Errorf("error leaks absolute root: %v", err)
	}
}

func TestHandleGraph_NegativeZoom(t *testing.T) {
	server, _ := setupTestServer(t)
	if _, _, err := server.handleGraph(context.Background(), nil, GraphInput{Path: "russia.txt", Zoom: intPtr(-1)}); err == nil {
		t.Error("expected error for negative zoom")
	}
}

func TestHandleGraph_RateLimited(t *testing.T) {
	server, _ := setupTestServer(t)
	server.toolLimiters = ratelimit.ToolLimiters{"cooccur_graph": ratelimit.Every(1, time.Hour, 1)}

	if _, _, err := server.handleGraph(context.Background(), nil, GraphInput{Path: "russia.txt"}); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	_, _, err := server.handleGraph(context.Background(), nil, GraphInput{Path: "russia.txt"})
	if err == nil || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("err = %v, want rate limit error", err)
	}
}

func TestHandleStats(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleStats(context.Background(), nil, StatsInput{Path: "russia.txt", Top: 2})
	if err != nil {
		t.Fatalf("handleStats failed: %v", err)
	}
	if output.Sentences != 4 {
		t.Errorf("Sentences = %d, want 4", output.Sentences)
	}
	if output.CountMode != "once" {
		t.Errorf("CountMode = %q, want once", output.CountMode)
	}
	if len(output.TopWords) != 2 || output.TopWords[0].Word != "bond" || output.TopWords[0].Count != 4 {
		t.Errorf("TopWords = %+v, want bond(4) first", output.TopWords)
	}
	if len(output.PageRank) != 2 || output.PageRank[0].Word != "bond" {
		t.Errorf("PageRank = %+v, want bond first", output.PageRank)
	}
	if len(output.TopEdges) != 2 {
		t.Errorf("TopEdges = %+v, want 2", output.TopEdges)
	}
}

func TestHandleStats_DefaultTop(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleStats(context.Background(), nil, StatsInput{Path: "russia.txt"})
	if err != nil {
		t.Fatalf("handleStats failed: %v", err)
	}
	if len(output.TopWords) != defaultStatsTop {
		t.Errorf("len(TopWords) = %d, want %d", len(output.TopWords), defaultStatsTop)
	}
}
