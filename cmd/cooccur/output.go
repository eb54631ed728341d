package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/ranking"
	"github.com/nvandessel/cooccur/internal/visualization"
)

// outputOptions says where a rendered subgraph goes.
type outputOptions struct {
	format visualization.Format
	output string
	noOpen bool
	render visualization.Options
}

// writeSubgraph renders sub. HTML with no output path goes to a temp file
// that is opened in the browser; every other format goes to stdout unless an
// output path is given.
func writeSubgraph(ctx context.Context, cmd *cobra.Command, sub *cooccur.Subgraph, oo outputOptions) error {
	opts := oo.render
	switch oo.format {
	case visualization.FormatHTML, visualization.FormatPNG, visualization.FormatJSON:
		pageRank, err := ranking.ComputePageRank(ctx, sub, ranking.DefaultPageRankConfig())
		if err != nil {
			return fmt.Errorf("compute PageRank: %w", err)
		}
		opts.Enrichment = &visualization.EnrichmentData{PageRank: pageRank}
	}

	outPath := oo.output
	if outPath == "" && oo.format == visualization.FormatHTML {
		outPath = filepath.Join(os.TempDir(), "cooccur-graph.html")
	}
	if outPath == "" {
		return visualization.Render(cmd.OutOrStdout(), oo.format, sub, opts)
	}

	var buf bytes.Buffer
	if err := visualization.Render(&buf, oo.format, sub, opts); err != nil {
		return fmt.Errorf("render %s: %w", oo.format, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s file: %w", oo.format, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Graph written to %s\n", outPath)

	if oo.format == visualization.FormatHTML && !oo.noOpen {
		if err := visualization.OpenBrowser(outPath); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, outPath)
		}
	}
	return nil
}
