package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// getIndexTool returns the tool definition for get_index
func getIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_index",
		Description: "Resolve the section index for a file. Sections come from a companion doc, explicit region markers, language auto-detection, or a whole-file fallback, in that order.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the file",
				},
			},
			Required: []string{"path"},
		},
	}
}

// readSectionTool returns the tool definition for read_section
func readSectionTool() mcp.Tool {
	return mcp.Tool{
		Name:        "read_section",
		Description: "Read the text of one named section of a file. Use get_index first to learn the section names.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the file",
				},
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Name of the section to read",
				},
			},
			Required: []string{"path", "section"},
		},
	}
}

// generateIndexTool returns the tool definition for generate_index
func generateIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "generate_index",
		Description: "Write (or refresh) the embedded index block of a file. Given a directory, processes every supported file under it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a file, or a directory to process recursively",
				},
			},
			Required: []string{"path"},
		},
	}
}

// verifyIndexTool returns the tool definition for verify_index
func verifyIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "verify_index",
		Description: "Check whether a file's embedded index block still matches its content (missing block, out-of-range sections, drifted or unlisted regions).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a file, or a directory to check recursively",
				},
			},
			Required: []string{"path"},
		},
	}
}

// removeIndexTool returns the tool definition for remove_index
func removeIndexTool() mcp.Tool {
	return mcp.Tool{
		Name:        "remove_index",
		Description: "Delete the embedded index block from a file, restoring it to its unindexed form. Given a directory, cleans every supported file under it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to a file, or a directory to clean recursively",
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Query recent run history: what was generated, verified, or removed, and how it went. With a path, reports the last run that touched that file.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Optional absolute file path to report on",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of recent runs to return (1-100)",
					"default":     10,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}
