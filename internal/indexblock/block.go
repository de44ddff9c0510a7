package indexblock

import (
	"strconv"
	"strings"

	"codemap/pkg/types"
)

// Marker is the canonical token identifying an embedded index block.
// The first line of every block is the comment leader followed by this
// token.
const Marker = "CODEMAP-INDEX v1"

// headerLabel is the first cell of the table header row. Parse rejects
// rows carrying it so the header never masquerades as a section.
const headerLabel = "Section"

// Span marks the 1-indexed inclusive line range a block occupies within
// its host file
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Block is a parsed embedded index block
type Block struct {
	Sections map[string]types.Section // Keyed by name, last duplicate wins
	Names    []string                 // Row order, first occurrence per name
	Span     Span
}

// Parse locates the first index block in the file content and decodes
// its table. The comment leader is inferred from the marker line's own
// prefix, so parsing needs no language profile. The boolean is false
// when the content carries no block.
func Parse(content string) (*Block, bool) {
	lines := strings.Split(content, "\n")

	start := -1
	leader := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		idx := strings.Index(trimmed, Marker)
		if idx < 0 {
			continue
		}
		prefix := strings.TrimSpace(trimmed[:idx])
		if prefix == "" {
			// The marker must sit inside a comment
			continue
		}
		start, leader = i, prefix
		break
	}
	if start == -1 {
		return nil, false
	}

	block := &Block{Sections: make(map[string]types.Section)}
	end := start
	for i := start + 1; i < len(lines); i++ {
		rest, ok := blockLine(lines[i], leader)
		if !ok {
			break
		}
		end = i

		if section, ok := parseRow(rest); ok {
			if _, seen := block.Sections[section.Name]; !seen {
				block.Names = append(block.Names, section.Name)
			}
			block.Sections[section.Name] = section
		}
	}

	block.Span = Span{Start: start + 1, End: end + 1}
	return block, true
}

// blockLine strips the comment leader and reports whether the line still
// belongs to the block. Only the block's own shapes qualify; a regular
// comment right after the block must not be absorbed into it.
func blockLine(line, leader string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, leader) {
		return "", false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, leader))
	switch {
	case rest == "":
		return rest, true
	case strings.HasPrefix(rest, "|"):
		return rest, true
	case strings.HasPrefix(rest, "Generated:"):
		return rest, true
	case strings.HasPrefix(rest, "Total lines:"):
		return rest, true
	}
	return "", false
}

// parseRow decodes one table row into a section. Header rows, separator
// rows, and rows with unusable line numbers are rejected.
func parseRow(rest string) (types.Section, bool) {
	if !strings.HasPrefix(rest, "|") {
		return types.Section{}, false
	}

	cells := splitCells(rest)
	if len(cells) < 3 {
		return types.Section{}, false
	}

	name := cells[0]
	if name == "" || name == headerLabel || isSeparator(name) {
		return types.Section{}, false
	}

	start, err := strconv.Atoi(cells[1])
	if err != nil {
		return types.Section{}, false
	}
	end, err := strconv.Atoi(cells[2])
	if err != nil {
		return types.Section{}, false
	}
	if start < 1 || end < start {
		return types.Section{}, false
	}

	section := types.Section{Name: name, Start: start, End: end}
	if len(cells) >= 5 {
		section.Description = cells[4]
	}
	return section, true
}

func splitCells(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.TrimSpace(part))
	}
	return cells
}

func isSeparator(cell string) bool {
	if cell == "" {
		return false
	}
	for _, r := range cell {
		if r != '-' && r != ':' {
			return false
		}
	}
	return true
}
