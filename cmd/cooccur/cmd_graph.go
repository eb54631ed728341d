package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nvandessel/cooccur/internal/config"
	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/pipeline"
	"github.com/nvandessel/cooccur/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [PATH]",
		Short: "Build and render the co-occurrence graph of a document",
		Long: `Build the word co-occurrence graph of a document and render a subgraph.

The subgraph holds the endpoints of the --zoom highest-count edges, or the
words given with --names (which take precedence). Words are lowercase.

Supported documents: .txt, .md, .html, .pdf, .docx. PATH defaults to
source.path from the config.

Examples:
  cooccur graph russia.txt                     # top 20 edges, opened in the browser
  cooccur graph russia.txt --zoom 50 --format dot -o russia.dot
  cooccur graph russia.txt --names bond,tatiana,kerim,grant
  cooccur graph russia.txt --serve             # interactive zoom/names form`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := applyGraphFlags(cmd, cfg, args); err != nil {
				return err
			}
			if cfg.Source.Path == "" {
				return errors.New("no document given: pass PATH or set source.path")
			}

			log, dl := newLoggers(cmd, cfg)
			defer dl.Close()

			b, err := pipeline.New(cfg, log, dl)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res, err := b.BuildFromFile(ctx, cfg.Source.Path)
			if err != nil {
				return err
			}

			serve, _ := cmd.Flags().GetBool("serve")
			noOpen, _ := cmd.Flags().GetBool("no-open")
			if serve {
				return runGraphServer(ctx, cmd, res.Graph, cfg, log, noOpen)
			}

			sel := b.Select(res, cfg.Criteria())
			for _, m := range sel.Missing {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %q does not occur in the document\n", m)
			}
			format, _ := visualization.ParseFormat(cfg.Render.Format)
			return writeSubgraph(ctx, cmd, sel.Subgraph, outputOptions{
				format: format,
				output: cfg.Render.Output,
				noOpen: noOpen,
				render: pipeline.RenderOptions(cfg),
			})
		},
	}

	cmd.Flags().Int("zoom", 0, "Number of highest-count edges to keep (default from config: 20)")
	cmd.Flags().String("names", "", "Comma-separated words to keep instead of the top edges")
	cmd.Flags().String("format", "", "Output format: html, dot, json, png, or adjlist (default html)")
	cmd.Flags().StringP("output", "o", "", "Output file path (html defaults to a temp file, others to stdout)")
	cmd.Flags().Bool("no-open", false, "Don't open browser after generating HTML")
	cmd.Flags().Bool("serve", false, "Start a local server with a zoom/names form")
	cmd.Flags().String("count-mode", "", "Pair counting: once or legacy")
	cmd.Flags().String("splitter", "", "Sentence splitter: punkt or simple")

	return cmd
}

// applyGraphFlags overlays explicitly set flags on cfg and validates it.
func applyGraphFlags(cmd *cobra.Command, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		cfg.Source.Path = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("zoom") {
		cfg.Selection.Zoom, _ = flags.GetInt("zoom")
	}
	if flags.Changed("names") {
		names, _ := flags.GetString("names")
		cfg.Selection.Names = visualization.SplitNames(names)
	}
	if flags.Changed("format") {
		cfg.Render.Format, _ = flags.GetString("format")
	}
	if flags.Changed("output") {
		cfg.Render.Output, _ = flags.GetString("output")
	}
	if flags.Changed("count-mode") {
		cfg.Graph.CountMode, _ = flags.GetString("count-mode")
	}
	if flags.Changed("splitter") {
		cfg.Tokenizer.SentenceSplitter, _ = flags.GetString("splitter")
	}
	if serve, _ := flags.GetBool("serve"); serve {
		cfg.Render.Format = string(visualization.FormatHTML)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// runGraphServer starts a local HTTP server for g and blocks until Ctrl-C.
func runGraphServer(ctx context.Context, cmd *cobra.Command, g *cooccur.Graph, cfg *config.Config, log *slog.Logger, noOpen bool) error {
	srv := visualization.NewServer(g, cfg.Criteria(), pipeline.RenderOptions(cfg), log)

	srvCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(srvCtx, cfg.Server.Addr) }()

	// Wait for server to start
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) && srv.Addr() == "" {
		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-time.After(10 * time.Millisecond):
		}
	}

	addr := srv.Addr()
	if addr == "" {
		return fmt.Errorf("server failed to start")
	}

	url := "http://" + addr
	fmt.Fprintf(cmd.OutOrStdout(), "Graph server running at %s\n", url)
	fmt.Fprintf(cmd.OutOrStdout(), "Press Ctrl-C to stop.\n")

	if !noOpen {
		if err := visualization.OpenBrowser(url); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\nOpen %s manually.\n", err, url)
		}
	}

	if err := <-errCh; err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
