// Package mcp provides an MCP (Model Context Protocol) server that builds
// co-occurrence graphs for documents under a set of allowed roots.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/cooccur/internal/config"
	"github.com/nvandessel/cooccur/internal/ratelimit"
)

// Server wraps the MCP SDK server and provides cooccur tools.
type Server struct {
	server       *sdk.Server
	settings     *config.Config
	roots        []string
	log          *slog.Logger
	toolLimiters ratelimit.ToolLimiters
	auditLogger  *AuditLogger
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "cooccur")
	Version string // Server version
	// Roots are the directories documents may be read from.
	Roots []string
	// Settings supply tokenizer, graph, selection, and render defaults.
	Settings *config.Config
	// StateDir receives audit.jsonl. Empty disables auditing.
	StateDir string
	Log      *slog.Logger
}

// NewServer creates a new MCP server with cooccur tools.
func NewServer(cfg *Config) (*Server, error) {
	if len(cfg.Roots) == 0 {
		return nil, errors.New("at least one root directory is required")
	}
	roots := make([]string, 0, len(cfg.Roots))
	for _, r := range cfg.Roots {
		abs, err := filepath.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("resolve root %s: %w", r, err)
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("root %s is not a directory", r)
		}
		roots = append(roots, abs)
	}

	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{})

	s := &Server{
		server:       mcpServer,
		settings:     settings,
		roots:        roots,
		log:          log,
		toolLimiters: ratelimit.NewToolLimiters(),
	}
	if cfg.StateDir != "" {
		s.auditLogger = NewAuditLogger(cfg.StateDir)
	}

	s.registerTools()
	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := s.server.Run(ctx, &sdk.StdioTransport{})
	s.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases the audit log.
func (s *Server) Close() error {
	return s.auditLogger.Close()
}
