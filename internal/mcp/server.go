package mcp

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/server"

	"codemap/internal/config"
	"codemap/internal/indexer"
	"codemap/internal/language"
	"codemap/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "codemap"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp     *server.MCPServer
	indexer *indexer.Indexer
	store   storage.RunStore
	exclude []string

	// batchLock rejects overlapping directory-wide writes
	batchLock indexer.IndexLock
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	registry := language.NewRegistry()
	if cfg.ProfilesPath != "" {
		if err := registry.LoadOverlay(cfg.ProfilesPath); err != nil {
			return nil, fmt.Errorf("failed to load language profiles: %w", err)
		}
	}

	var store storage.RunStore
	if cfg.History.Enabled {
		sqlStore, err := storage.NewSQLiteStore(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize run history: %w", err)
		}
		store = sqlStore
	}

	idx := indexer.New(registry, &indexer.Config{
		Workers:        cfg.Workers,
		DriftTolerance: cfg.DriftTolerance,
		Store:          store,
	})

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:     mcpServer,
		indexer: idx,
		store:   store,
		exclude: cfg.Exclude,
	}

	// Register tools
	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
// Stdout carries the protocol, so anything worth saying goes to stderr.
func (s *Server) Serve(ctx context.Context) error {
	defer func() {
		if s.store != nil {
			if err := s.store.Close(); err != nil {
				log.Printf("codemap: failed to close run history: %v", err)
			}
		}
	}()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() error {
	s.mcp.AddTool(getIndexTool(), s.handleGetIndex)
	s.mcp.AddTool(readSectionTool(), s.handleReadSection)
	s.mcp.AddTool(generateIndexTool(), s.handleGenerateIndex)
	s.mcp.AddTool(verifyIndexTool(), s.handleVerifyIndex)
	s.mcp.AddTool(removeIndexTool(), s.handleRemoveIndex)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)

	return nil
}
