package scanner

import (
	"strings"

	"codemap/internal/language"
	"codemap/pkg/types"
)

// openRegion tracks the section currently being collected during a scan
type openRegion struct {
	name        string
	description string
	start       int
}

// Explicit walks the file once and emits a section for every author-placed
// region marker pair. A start marker seen while a region is already open
// closes the previous region at the line before it (last-start-wins, no
// nesting). An end marker closes the open region at the marker line
// itself. A region still open at end of input is closed at the last line.
// Returns nil when the file contains no markers at all, signaling the
// caller to fall through to auto-detection.
func Explicit(lines []string, profile *language.Profile) []types.Section {
	if profile == nil || !profile.HasExplicitMarkers() {
		return nil
	}

	var sections []types.Section
	var open *openRegion

	for i, line := range lines {
		lineNo := i + 1

		if match := profile.ExplicitStart.FindStringSubmatch(line); match != nil {
			if open != nil {
				sections = append(sections, closeRegion(open, lineNo-1))
			}
			open = &openRegion{
				name:        match[1],
				description: strings.TrimSpace(match[2]),
				start:       lineNo,
			}
			continue
		}

		if profile.ExplicitEnd.MatchString(line) {
			if open != nil {
				sections = append(sections, closeRegion(open, lineNo))
				open = nil
			}
			// A stray end marker with nothing open is ignored
		}
	}

	if open != nil {
		sections = append(sections, closeRegion(open, len(lines)))
	}

	return sections
}

func closeRegion(open *openRegion, end int) types.Section {
	return types.Section{
		Name:        open.name,
		Start:       open.start,
		End:         end,
		Description: open.description,
		Source:      types.SourceExplicit,
	}
}
