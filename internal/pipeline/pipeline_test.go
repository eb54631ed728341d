package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nvandessel/cooccur/internal/config"
	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/logging"
)

const russia = "Bond met Tatiana in Istanbul. Kerim watched Bond and Tatiana. " +
	"Grant followed Bond to the train. Bond trusted Kerim."

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	cfg := config.Default()
	cfg.Tokenizer.SentenceSplitter = "simple"
	b, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

func TestBuildFromText(t *testing.T) {
	b := newTestBuilder(t)
	res, err := b.BuildFromText(context.Background(), russia)
	if err != nil {
		t.Fatalf("BuildFromText: %v", err)
	}
	if res.Sentences != 4 {
		t.Errorf("Sentences = %d, want 4", res.Sentences)
	}
	if res.CountMode != cooccur.CountOnce {
		t.Errorf("CountMode = %q, want once", res.CountMode)
	}
	n, ok := res.Graph.Node("bond")
	if !ok || n.Count != 4 {
		t.Errorf("bond = %+v (ok=%v), want count 4", n, ok)
	}
	e, ok := res.Graph.Edge("tatiana", "bond")
	if !ok || e.Count != 2 {
		t.Errorf("bond-tatiana = %+v (ok=%v), want count 2", e, ok)
	}
	if res.Graph.HasNode("the") {
		t.Error("stop word 'the' should be filtered")
	}
}

func TestBuildFromText_Cancelled(t *testing.T) {
	b := newTestBuilder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.BuildFromText(ctx, russia); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuildFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "russia.md")
	if err := os.WriteFile(path, []byte("# From Russia\n\n"+russia+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	res, err := newTestBuilder(t).BuildFromFile(context.Background(), path)
	if err != nil {
		t.Fatalf("BuildFromFile: %v", err)
	}
	if res.Format != "md" {
		t.Errorf("Format = %q, want md", res.Format)
	}
	if res.Source != path {
		t.Errorf("Source = %q, want %q", res.Source, path)
	}
	if !res.Graph.HasNode("russia") {
		t.Error("heading text should be part of the graph")
	}

	if _, err := newTestBuilder(t).BuildFromFile(context.Background(), filepath.Join(t.TempDir(), "none.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v, want os.ErrNotExist", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Graph.CountMode = "twice"
	if _, err := New(cfg, nil, nil); !errors.Is(err, cooccur.ErrInvalidCountMode) {
		t.Errorf("err = %v, want ErrInvalidCountMode", err)
	}
}

func TestSelect_LogsDecision(t *testing.T) {
	dir := t.TempDir()
	dl := logging.NewDecisionLogger(dir, "debug")
	if dl == nil {
		t.Fatal("expected decision logger at debug level")
	}
	cfg := config.Default()
	cfg.Tokenizer.SentenceSplitter = "simple"
	b, err := New(cfg, nil, dl)
	if err != nil {
		t.Fatal(err)
	}
	res, err := b.BuildFromText(context.Background(), russia)
	if err != nil {
		t.Fatal(err)
	}
	sel := b.Select(res, cooccur.Criteria{Names: []string{"bond", "blofeld"}})
	dl.Close()

	if sel.Strategy != cooccur.StrategyNames {
		t.Errorf("Strategy = %q, want names", sel.Strategy)
	}
	if len(sel.Missing) != 1 || sel.Missing[0] != "blofeld" {
		t.Errorf("Missing = %v, want [blofeld]", sel.Missing)
	}

	f, err := os.Open(filepath.Join(dir, "decisions.jsonl"))
	if err != nil {
		t.Fatalf("open decisions: %v", err)
	}
	defer f.Close()
	var decisions []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var entry map[string]any
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("bad decision line %q: %v", sc.Text(), err)
		}
		decisions = append(decisions, entry["decision"].(string))
	}
	if len(decisions) != 2 || decisions[0] != "graph_built" || decisions[1] != "selection" {
		t.Errorf("decisions = %v, want [graph_built selection]", decisions)
	}
}

func TestSummarize(t *testing.T) {
	b := newTestBuilder(t)
	res, err := b.BuildFromText(context.Background(), russia)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Summarize(context.Background(), res, 3)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Nodes != res.Graph.NodeCount() || s.Edges != res.Graph.EdgeCount() {
		t.Errorf("counts = %d/%d, want %d/%d", s.Nodes, s.Edges, res.Graph.NodeCount(), res.Graph.EdgeCount())
	}
	if len(s.TopWords) != 3 || s.TopWords[0].Word != "bond" {
		t.Errorf("TopWords = %v, want bond first", s.TopWords)
	}
	if len(s.PageRank) != 3 || s.PageRank[0].Word != "bond" {
		t.Errorf("PageRank = %v, want bond first", s.PageRank)
	}
	if len(s.Centrality) == 0 || s.Centrality[0].Word != "bond" {
		t.Errorf("Centrality = %v, want bond first", s.Centrality)
	}
	if len(s.TopEdges) != 3 {
		t.Errorf("TopEdges = %v, want 3", s.TopEdges)
	}
}

func TestRenderOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Width = 640
	cfg.Render.DegreeThreshold = 3
	cfg.Render.Seed = 7
	opts := RenderOptions(cfg)
	if opts.Width != 640 || opts.Style.DegreeThreshold != 3 || opts.Layout.Seed != 7 {
		t.Errorf("RenderOptions = %+v", opts)
	}
}
