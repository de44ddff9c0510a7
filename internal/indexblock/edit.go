package indexblock

import "strings"

// Upsert splices a rendered block into the file content. When span
// points at an existing block, the new block replaces it at the exact
// same line offset. When span is nil, the block is inserted at the top
// of the file, after a leading interpreter directive when one exists
// (the directive stays verbatim as the first line), followed by one
// blank line.
// All content outside the block is preserved byte for byte.
func Upsert(content, rendered string, span *Span) string {
	renderedLines := strings.Split(rendered, "\n")
	lines := strings.Split(content, "\n")

	if span != nil && span.Start >= 1 && span.End <= len(lines) && span.Start <= span.End {
		out := make([]string, 0, len(lines)+len(renderedLines))
		out = append(out, lines[:span.Start-1]...)
		out = append(out, renderedLines...)
		out = append(out, lines[span.End:]...)
		return strings.Join(out, "\n")
	}

	insertAt := 0
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		insertAt = 1
	}

	out := make([]string, 0, len(lines)+len(renderedLines)+1)
	out = append(out, lines[:insertAt]...)
	out = append(out, renderedLines...)
	out = append(out, "")
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n")
}

// Remove splices the block out of the content along with any blank lines
// immediately following it. The rest of the file is left intact. The
// end-of-file newline is kept: the final empty element produced by a
// trailing newline is not treated as a blank line.
func Remove(content string, span Span) string {
	lines := strings.Split(content, "\n")
	if span.Start < 1 || span.End > len(lines) || span.Start > span.End {
		return content
	}

	rest := lines[span.End:]
	for len(rest) > 1 && strings.TrimSpace(rest[0]) == "" {
		rest = rest[1:]
	}
	if len(rest) == 1 && strings.TrimSpace(rest[0]) == "" && span.Start == 1 {
		// Block plus trailing blanks was the whole file
		rest = rest[:0]
	}

	out := make([]string, 0, span.Start-1+len(rest))
	out = append(out, lines[:span.Start-1]...)
	out = append(out, rest...)
	return strings.Join(out, "\n")
}
