package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/afero"

	"github.com/mvp-joe/asminfo/internal/config"
	"github.com/mvp-joe/asminfo/internal/parser"
)

// ServerConfig configures the MCP server.
type ServerConfig struct {
	// RootDir resolves relative tool paths.
	RootDir string

	// Project supplies project attribute settings for asminfo_model. May be nil.
	Project *config.Config

	// Fs defaults to the OS filesystem.
	Fs afero.Fs
}

// Server exposes the parser and model builder as MCP tools over stdio.
type Server struct {
	mcp *server.MCPServer
}

// NewServer creates an MCP server with both asminfo tools registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.RootDir == "" {
		return nil, fmt.Errorf("root directory is required")
	}

	p := parser.New(cfg.Fs, parser.FixedEnvironment(cfg.RootDir))

	mcpServer := server.NewMCPServer(
		"asminfo",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	AddParseTool(mcpServer, p)
	AddModelTool(mcpServer, p, cfg.Project)

	return &Server{mcp: mcpServer}, nil
}

// Serve starts the MCP server on stdio and blocks until stdin closes, a
// shutdown signal arrives, or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	return serveUntilDone(ctx, sigCh, func() error {
		log.Printf("Starting MCP server on stdio...")
		return server.ServeStdio(s.mcp)
	})
}

// serveUntilDone runs serve in the background and returns when it finishes,
// a signal arrives, or ctx is done. A nil return from serve (the client closed
// stdin) ends the wait with a nil error.
func serveUntilDone(ctx context.Context, sigCh <-chan os.Signal, serve func() error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := serve(); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
