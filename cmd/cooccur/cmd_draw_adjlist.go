package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/cooccur/internal/cooccur"
	"github.com/nvandessel/cooccur/internal/pipeline"
	"github.com/nvandessel/cooccur/internal/visualization"
)

func newDrawAdjListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draw-adjlist FILE",
		Short: "Render a saved adjacency list",
		Long: `Render a graph previously written with --format adjlist. Every word and
pair in the file is drawn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("format") {
				cfg.Render.Format, _ = cmd.Flags().GetString("format")
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			format, _ := visualization.ParseFormat(cfg.Render.Format)
			output, _ := cmd.Flags().GetString("output")
			noOpen, _ := cmd.Flags().GetBool("no-open")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open adjacency list: %w", err)
			}
			defer f.Close()
			g, err := cooccur.ReadAdjList(f)
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return writeSubgraph(ctx, cmd, cooccur.Whole(g), outputOptions{
				format: format,
				output: output,
				noOpen: noOpen,
				render: pipeline.RenderOptions(cfg),
			})
		},
	}

	cmd.Flags().String("format", "", "Output format: html, dot, json, png, or adjlist (default html)")
	cmd.Flags().StringP("output", "o", "", "Output file path (html defaults to a temp file, others to stdout)")
	cmd.Flags().Bool("no-open", false, "Don't open browser after generating HTML")
	return cmd
}
