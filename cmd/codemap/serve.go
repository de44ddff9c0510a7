package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codemap/internal/mcp"
	"codemap/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server. The server reads protocol
messages from stdin and writes responses to stdout, exposing the
get_index, read_section, generate_index, verify_index, remove_index,
and get_status tools to MCP clients.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log startup info to stderr (stdout reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("codemap MCP server v%s starting (sqlite %s/%s)",
		version, storage.BuildMode, storage.DriverName)

	server, err := mcp.NewServer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Println("MCP server ready, listening on stdio...")
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Printf("received signal %v, shutting down...", sig)
		cancel()
	case err := <-errChan:
		if err != nil {
			return err
		}
	}

	log.Println("server stopped")
	return nil
}
