package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/cooccur/internal/config"
	"github.com/nvandessel/cooccur/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cooccur",
		Short: "Word co-occurrence graphs for documents",
		Long: `cooccur reads a document, splits it into sentences, drops stop words and
punctuation, and links every pair of words that share a sentence.

The strongest part of the resulting graph (or the neighborhood of words you
name) is rendered as an interactive HTML page, Graphviz DOT, JSON, PNG, or
an adjacency list.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("root", ".", "Directory documents may be read from (mcp-server)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.cooccur/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newGraphCmd(),
		newStatsCmd(),
		newDrawAdjListCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)
	return rootCmd
}

// loadSettings loads the effective config and applies --log-level.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// newLoggers creates the stderr logger and, at debug or trace, the decision
// logger. Callers close the decision logger.
func newLoggers(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, *logging.DecisionLogger) {
	log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
	dl := logging.NewDecisionLogger(config.StateDir(), cfg.Logging.Level)
	if dl != nil {
		log.Debug("decision logging enabled", "run_id", dl.RunID())
	}
	return log, dl
}
