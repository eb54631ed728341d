package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/cooccur/internal/config"
	"github.com/nvandessel/cooccur/internal/logging"
	"github.com/nvandessel/cooccur/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run an MCP server over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
cooccur_graph and cooccur_stats tools. Documents must lie under --root.

Logs go to stderr; stdout carries the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			root, _ := cmd.Flags().GetString("root")

			log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

			server, err := mcp.NewServer(&mcp.Config{
				Name:     "cooccur",
				Version:  version,
				Roots:    []string{root},
				Settings: cfg,
				StateDir: config.StateDir(),
				Log:      log,
			})
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			log.Info("mcp server starting", "root", root, "version", version)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return server.Run(ctx)
		},
	}
}
