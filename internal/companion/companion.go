package companion

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"codemap/pkg/types"
)

// Document holds the parsed content of a companion metadata file
type Document struct {
	Description string
	Sections    []types.Section
	Notes       string
}

var (
	headingH1       = regexp.MustCompile(`^#\s+\S`)
	headingSections = regexp.MustCompile(`(?i)^##\s+sections?\b`)
	headingNotes    = regexp.MustCompile(`(?i)^##\s+notes?\b`)
	headingH2       = regexp.MustCompile(`^##\s`)
	lineRange       = regexp.MustCompile(`^(\d+)(?:\s*[–-]\s*(\d+))?$`)
)

// Locate returns the companion document path for a source file, checking
// candidates in fixed priority order:
//
//	<dir>/<base>.ai.md
//	<dir>/.ai/<base>.md
//	<dir>/.ai/<stem>.md
//
// where base is the file name with extension and stem without. The first
// existing, readable candidate wins.
func Locate(filePath string) (string, bool) {
	dir := filepath.Dir(filePath)
	base := filepath.Base(filePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	candidates := []string{
		filepath.Join(dir, base+".ai.md"),
		filepath.Join(dir, ".ai", base+".md"),
		filepath.Join(dir, ".ai", stem+".md"),
	}

	for _, candidate := range candidates {
		if readable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

// Parse reads a companion document and extracts its description, section
// table, and notes. The boolean is false when the file cannot be read or
// when no usable section rows are found. Malformed companions are not
// errors, the caller simply falls through to marker scanning.
func Parse(path string) (*Document, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	doc := parseContent(string(data))
	if len(doc.Sections) == 0 {
		return nil, false
	}
	return doc, true
}

type parseState int

const (
	stateProlog parseState = iota
	stateDescription
	stateSections
	stateNotes
	stateOther
)

func parseContent(content string) *Document {
	doc := &Document{}
	state := stateProlog

	var description, notes []string

	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimRight(raw, "\r")

		switch {
		case headingSections.MatchString(line):
			state = stateSections
			continue
		case headingNotes.MatchString(line):
			state = stateNotes
			continue
		case headingH2.MatchString(line):
			state = stateOther
			continue
		case headingH1.MatchString(line) && state == stateProlog:
			state = stateDescription
			continue
		}

		switch state {
		case stateDescription:
			description = append(description, line)
		case stateSections:
			if section, ok := parseRow(line); ok {
				doc.Sections = append(doc.Sections, section)
			}
		case stateNotes:
			notes = append(notes, line)
		}
	}

	doc.Description = strings.TrimSpace(strings.Join(description, "\n"))
	doc.Notes = strings.TrimSpace(strings.Join(notes, "\n"))
	return doc
}

// parseRow extracts one section from a Markdown table row of the form
// "| name | 10-20 | description |". Header rows, separator rows, and rows
// whose range cell does not parse are skipped.
func parseRow(line string) (types.Section, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return types.Section{}, false
	}

	cells := splitCells(trimmed)
	if len(cells) < 2 {
		return types.Section{}, false
	}

	name := cells[0]
	if name == "" || isSeparator(name) || isHeaderLabel(name) {
		return types.Section{}, false
	}

	start, end, ok := parseRange(cells[1])
	if !ok {
		return types.Section{}, false
	}

	section := types.Section{
		Name:   name,
		Start:  start,
		End:    end,
		Source: types.SourceCompanion,
	}
	if len(cells) >= 3 {
		section.Description = cells[2]
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

// isSeparator reports whether a cell is a Markdown alignment row fragment
// like "---" or ":---:"
func isSeparator(cell string) bool {
	for _, r := range cell {
		if r != '-' && r != ':' && r != ' ' {
			return false
		}
	}
	return true
}

func isHeaderLabel(cell string) bool {
	switch strings.ToLower(cell) {
	case "name", "section", "sections":
		return true
	}
	return false
}

// parseRange accepts "N" (start = end = N) or "N-M" with a hyphen or
// en-dash separator
func parseRange(cell string) (int, int, bool) {
	match := lineRange.FindStringSubmatch(cell)
	if match == nil {
		return 0, 0, false
	}

	start, err := strconv.Atoi(match[1])
	if err != nil || start < 1 {
		return 0, 0, false
	}

	end := start
	if match[2] != "" {
		end, err = strconv.Atoi(match[2])
		if err != nil || end < start {
			return 0, 0, false
		}
	}
	return start, end, true
}
