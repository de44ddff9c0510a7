// Package companion locates and parses companion metadata documents.
//
// A companion is a human-authored Markdown file describing a source file's
// sections. When one exists and contains a section table, it takes
// absolute precedence over marker scanning and auto-detection; the two
// are never merged.
//
// # Location
//
// For a source file dir/server.go, candidates are checked in order:
//
//	dir/server.go.ai.md
//	dir/.ai/server.go.md
//	dir/.ai/server.md
//
// # Format
//
//	# server.go
//
//	Request routing and lifecycle management.
//
//	## Sections
//
//	| Name          | Lines   | Description        |
//	|---------------|---------|--------------------|
//	| imports       | 1-12    | stdlib and deps    |
//	| handlers/auth | 14-80   | token verification |
//	| main          | 82      | entry point        |
//
//	## Notes
//
//	The auth block is due for a split.
//
// The description is the text between the first # heading and the first
// ## heading. Ranges accept "N" or "N-M" with a hyphen or en-dash.
// Header and separator rows are skipped, as are rows whose range cell
// does not parse. A companion without usable rows yields nothing rather
// than an error.
package companion
