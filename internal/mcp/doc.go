// Package mcp implements the Model Context Protocol (MCP) server for codemap.
//
// The MCP server exposes six tools to AI coding assistants (Claude Code, Codex CLI):
//   - get_index: Resolve the section index of a file without writing anything
//   - read_section: Read one named section's lines from a file
//   - generate_index: Write or refresh the embedded index block
//   - verify_index: Check a stored index block against the current content
//   - remove_index: Strip the embedded index block
//   - get_status: Inspect recorded run history
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Basic Usage
//
// The MCP server is typically started via the serve command:
//
//	codemap serve
//
// It then listens on stdin for MCP protocol messages and writes responses to stdout.
//
// # Tool: get_index
//
// Resolve a file's sections (companion doc, explicit markers, automatic
// detection, or whole-file fallback):
//
//	Request:
//	{
//	  "name": "get_index",
//	  "arguments": {
//	    "path": "/path/to/src/engine.py"
//	  }
//	}
//
//	Response:
//	{
//	  "file_path": "/path/to/src/engine.py",
//	  "language": "python",
//	  "total_lines": 240,
//	  "source": "markers",
//	  "sections": [
//	    {"name": "imports", "start": 1, "end": 12},
//	    {"name": "core", "start": 14, "end": 180}
//	  ]
//	}
//
// # Tool: read_section
//
// Read exactly one section's text:
//
//	Request:
//	{
//	  "name": "read_section",
//	  "arguments": {
//	    "path": "/path/to/src/engine.py",
//	    "section": "core"
//	  }
//	}
//
//	Response:
//	{
//	  "file": "/path/to/src/engine.py",
//	  "section": "core",
//	  "start": 14,
//	  "end": 180,
//	  "size": 167,
//	  "text": "def run():\n    ..."
//	}
//
// An unknown section name returns a tool error payload listing
// available_sections rather than a protocol error, so the caller can
// retry with a valid name.
//
// # Tool: generate_index / verify_index / remove_index
//
// These accept either a single file or a directory. A directory is
// walked recursively (hidden and excluded directories pruned) and every
// supported file is processed concurrently; the response carries
// succeeded, skipped, and failed counters plus the first few error
// messages. Directory-wide generate and remove hold an in-process lock,
// so a second overlapping batch write is rejected with error -32002
// instead of queueing.
//
// # Tool: get_status
//
// Without arguments, returns the most recent recorded runs. With a
// path, returns the last run that touched that file and its outcome.
//
// # MCP Client Configuration
//
// Configure in Claude Code's MCP settings:
//
//	{
//	  "mcpServers": {
//	    "codemap": {
//	      "command": "/usr/local/bin/codemap",
//	      "args": ["serve"]
//	    }
//	  }
//	}
//
// # Error Handling
//
// The MCP server returns standard JSON-RPC error responses:
//
//	{
//	  "error": {
//	    "code": -32602,
//	    "message": "path must be absolute",
//	    "data": {
//	      "param": "path",
//	      "value": "src/engine.py"
//	    }
//	  }
//	}
//
// Error codes:
//   - -32602: Invalid params (missing/invalid arguments)
//   - -32603: Internal error (filesystem, history database, etc.)
//   - -32001: Path not found
//   - -32002: Batch operation in progress
//   - -32003: Unsupported language
//
// # Logging
//
// The MCP server logs to stderr (stdout is reserved for MCP protocol).
package mcp
