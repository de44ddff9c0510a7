package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"codemap/internal/indexer"
	"codemap/internal/storage"
	"codemap/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams       = -32602 // Invalid method parameters
	ErrorCodeInternalError       = -32603 // Internal JSON-RPC error
	ErrorCodeFileNotFound        = -32001 // Specified path does not exist
	ErrorCodeBatchInProgress     = -32002 // Another directory-wide write is already running
	ErrorCodeUnsupportedLanguage = -32003 // No language profile for the file's extension
)

// handleGetIndex handles the get_index tool invocation
func (s *Server) handleGetIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requiredPath(args)
	if err != nil {
		return nil, err
	}
	info, err := statPath(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, newMCPError(ErrorCodeInvalidParams, "path must be a file", map[string]interface{}{
			"param": "path",
			"value": path,
		})
	}

	index, rerr := s.indexer.Resolve(path)
	if rerr != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to resolve index", map[string]interface{}{
			"error": rerr.Error(),
		})
	}

	return mcp.NewToolResultText(formatJSON(index)), nil
}

// handleReadSection handles the read_section tool invocation
func (s *Server) handleReadSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requiredPath(args)
	if err != nil {
		return nil, err
	}

	section, ok := args["section"].(string)
	if !ok || section == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "section parameter is required", map[string]interface{}{
			"param":  "section",
			"reason": "missing or empty",
		})
	}

	info, err := statPath(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, newMCPError(ErrorCodeInvalidParams, "path must be a file", map[string]interface{}{
			"param": "path",
			"value": path,
		})
	}

	content, rerr := s.indexer.ReadSection(path, section)
	if rerr != nil {
		var notFound *types.SectionNotFoundError
		if errors.As(rerr, &notFound) {
			// Not a protocol error: tell the caller what it can ask for
			return mcp.NewToolResultError(formatJSON(map[string]interface{}{
				"error":              "section not found",
				"section":            notFound.Name,
				"available_sections": notFound.Available,
			})), nil
		}
		return nil, newMCPError(ErrorCodeInternalError, "failed to read section", map[string]interface{}{
			"error": rerr.Error(),
		})
	}

	response := map[string]interface{}{
		"file":    content.FilePath,
		"section": content.Name,
		"start":   content.Start,
		"end":     content.End,
		"size":    content.End - content.Start + 1,
		"text":    content.Text,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGenerateIndex handles the generate_index tool invocation
func (s *Server) handleGenerateIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requiredPath(args)
	if err != nil {
		return nil, err
	}
	info, err := statPath(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return s.runBatch(ctx, path, s.indexer.GenerateAll, true)
	}

	index, gerr := s.indexer.Generate(path)
	if gerr != nil {
		if errors.Is(gerr, types.ErrUnsupportedLanguage) {
			return nil, newMCPError(ErrorCodeUnsupportedLanguage, "no language profile for this file", map[string]interface{}{
				"path": path,
			})
		}
		return nil, newMCPError(ErrorCodeInternalError, "generate failed", map[string]interface{}{
			"error": gerr.Error(),
		})
	}

	response := map[string]interface{}{
		"generated":   true,
		"file":        path,
		"language":    index.Language,
		"total_lines": index.TotalLines,
		"sections":    index.Sections,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleVerifyIndex handles the verify_index tool invocation
func (s *Server) handleVerifyIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requiredPath(args)
	if err != nil {
		return nil, err
	}
	info, err := statPath(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return s.runBatch(ctx, path, s.indexer.VerifyAll, false)
	}

	result, verr := s.indexer.Verify(path)
	if verr != nil {
		return nil, newMCPError(ErrorCodeInternalError, "verify failed", map[string]interface{}{
			"error": verr.Error(),
		})
	}

	// An invalid index is a finding, not a protocol error
	return mcp.NewToolResultText(formatJSON(result)), nil
}

// handleRemoveIndex handles the remove_index tool invocation
func (s *Server) handleRemoveIndex(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := requiredPath(args)
	if err != nil {
		return nil, err
	}
	info, err := statPath(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		return s.runBatch(ctx, path, s.indexer.RemoveAll, true)
	}

	if rerr := s.indexer.Remove(path); rerr != nil {
		if errors.Is(rerr, types.ErrNoIndex) {
			return mcp.NewToolResultText(formatJSON(map[string]interface{}{
				"removed": false,
				"file":    path,
				"reason":  "no index block",
			})), nil
		}
		return nil, newMCPError(ErrorCodeInternalError, "remove failed", map[string]interface{}{
			"error": rerr.Error(),
		})
	}

	response := map[string]interface{}{
		"removed": true,
		"file":    path,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStatus handles the get_status tool invocation
func (s *Server) handleGetStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Arguments are optional here
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		args = map[string]interface{}{}
	}

	if s.store == nil {
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"history_enabled": false,
			"message":         "run history is disabled in the configuration",
		})), nil
	}

	if path, ok := args["path"].(string); ok && path != "" {
		run, file, err := s.store.LastRunForFile(ctx, path)
		if errors.Is(err, storage.ErrNotFound) {
			return mcp.NewToolResultText(formatJSON(map[string]interface{}{
				"path":    path,
				"found":   false,
				"message": "no recorded run touches this file",
			})), nil
		}
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to query run history", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"path":    path,
			"found":   true,
			"run":     runSummary(run),
			"outcome": file.Outcome,
			"detail":  file.Detail,
		})), nil
	}

	limit := getIntDefault(args, "limit", 10)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	runs, err := s.store.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to query run history", map[string]interface{}{
			"error": err.Error(),
		})
	}

	summaries := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, runSummary(run))
	}

	response := map[string]interface{}{
		"history_enabled": true,
		"build_mode":      storage.BuildMode,
		"runs":            summaries,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// runBatch runs a directory-wide operation. Writes take the batch lock
// so two agents cannot rewrite the same tree at once.
func (s *Server) runBatch(ctx context.Context, root string,
	op func(context.Context, []string) (*indexer.Statistics, error), writes bool) (*mcp.CallToolResult, error) {

	if writes {
		if !s.batchLock.TryAcquire() {
			return nil, newMCPError(ErrorCodeBatchInProgress, "another batch operation is already running", nil)
		}
		defer s.batchLock.Release()
	}

	files, err := s.indexer.Discover(root, s.exclude)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to discover files", map[string]interface{}{
			"error": err.Error(),
		})
	}

	stats, err := op(ctx, files)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "batch operation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"path":        root,
		"files":       len(files),
		"succeeded":   stats.Succeeded,
		"skipped":     stats.Skipped,
		"failed":      stats.Failed,
		"duration_ms": stats.Duration.Milliseconds(),
	}

	if len(stats.ErrorMessages) > 0 {
		// Include first few errors
		errorCount := len(stats.ErrorMessages)
		if errorCount > 5 {
			response["errors"] = stats.ErrorMessages[:5]
			response["error_count"] = errorCount
		} else {
			response["errors"] = stats.ErrorMessages
		}
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// runSummary flattens a run for JSON output
func runSummary(run *storage.Run) map[string]interface{} {
	return map[string]interface{}{
		"id":          run.ID,
		"operation":   run.Operation,
		"started_at":  run.StartedAt.Format(time.RFC3339),
		"duration_ms": run.Duration.Milliseconds(),
		"succeeded":   run.Succeeded,
		"skipped":     run.Skipped,
		"failed":      run.Failed,
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// requiredPath extracts and validates the path argument
func requiredPath(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if !filepath.IsAbs(path) {
		return "", newMCPError(ErrorCodeInvalidParams, "path must be absolute", map[string]interface{}{
			"param": "path",
			"value": path,
		})
	}
	return path, nil
}

// statPath checks that a path exists and is accessible
func statPath(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, newMCPError(ErrorCodeFileNotFound, "path does not exist", map[string]interface{}{
			"path": path,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "cannot access path", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
	return info, nil
}

// formatJSON formats a value as indented JSON
func formatJSON(data interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}
