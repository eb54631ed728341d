package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nvandessel/cooccur/internal/pipeline"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [PATH]",
		Short: "Summarize the co-occurrence graph of a document",
		Long: `Print sentence, word, and pair counts for a document together with its most
frequent words, strongest pairs, and highest PageRank words.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if len(args) > 0 {
				cfg.Source.Path = args[0]
			}
			if cfg.Source.Path == "" {
				return errors.New("no document given: pass PATH or set source.path")
			}
			top, _ := cmd.Flags().GetInt("top")
			if top <= 0 {
				return fmt.Errorf("--top must be positive, got %d", top)
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
			sum, err := pipeline.Summarize(ctx, res, top)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sum)
			}
			printSummary(cmd.OutOrStdout(), sum)
			return nil
		},
	}

	cmd.Flags().Int("top", 10, "Length of each ranked list")
	return cmd
}

func printSummary(w io.Writer, s *pipeline.Summary) {
	fmt.Fprintf(w, "Document:   %s\n", s.Source)
	fmt.Fprintf(w, "Sentences:  %d\n", s.Sentences)
	fmt.Fprintf(w, "Words:      %d (%d distinct)\n", s.Tokens, s.Nodes)
	fmt.Fprintf(w, "Pairs:      %d (count mode: %s)\n", s.Edges, s.CountMode)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top words:")
	for i, n := range s.TopWords {
		fmt.Fprintf(w, "  %2d. %-20s %d\n", i+1, n.Word, n.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Top pairs:")
	for i, e := range s.TopEdges {
		fmt.Fprintf(w, "  %2d. %-30s %d\n", i+1, e.Source+" - "+e.Target, e.Count)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "PageRank:")
	for i, sc := range s.PageRank {
		fmt.Fprintf(w, "  %2d. %-20s %.3f\n", i+1, sc.Word, sc.Score)
	}
}
