package resolver

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"codemap/internal/companion"
	"codemap/internal/language"
	"codemap/internal/scanner"
	"codemap/pkg/types"
)

// UnknownLanguage is the language recorded for files whose extension has
// no registered profile. Such files still resolve: the scanners are
// skipped and the companion or fallback strategies apply.
const UnknownLanguage = "unknown"

// FallbackSection is the name of the single whole-file section emitted
// when no other strategy yields sections
const FallbackSection = "main"

// Resolver computes section indexes from file content
type Resolver struct {
	registry *language.Registry
}

// New creates a resolver backed by the given profile registry
func New(registry *language.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve reads the file and computes its index from the current
// content. I/O failures propagate; everything else resolves.
func (r *Resolver) Resolve(filePath string) (*types.Index, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return r.ResolveContent(filePath, string(data)), nil
}

// ResolveContent computes the index for content that has already been
// loaded. Strategies are tried in strict precedence order: companion
// document, explicit markers, auto-detection, whole-file fallback. The
// first strategy that yields sections wins outright; results are never
// merged. A successfully read file always resolves to at least one
// section.
func (r *Resolver) ResolveContent(filePath, content string) *types.Index {
	lines, totalLines := SplitLines(content)

	profile, supported := r.registry.Resolve(filePath)
	languageName := UnknownLanguage
	if supported {
		languageName = profile.Name
	}

	index := &types.Index{
		FilePath:    filePath,
		Language:    languageName,
		TotalLines:  totalLines,
		GeneratedAt: time.Now().UTC(),
	}

	if path, ok := companion.Locate(filePath); ok {
		if doc, ok := companion.Parse(path); ok {
			index.Sections = doc.Sections
			index.CompanionPath = path
		}
	}

	if len(index.Sections) == 0 && supported {
		index.Sections = scanner.Explicit(lines, profile)
	}

	if len(index.Sections) == 0 && supported {
		index.Sections = scanner.Auto(lines, profile)
	}

	if len(index.Sections) == 0 {
		index.Sections = []types.Section{{
			Name:   FallbackSection,
			Start:  1,
			End:    totalLines,
			Source: types.SourceFallback,
		}}
	}

	sort.SliceStable(index.Sections, func(i, j int) bool {
		return index.Sections[i].Start < index.Sections[j].Start
	})

	return index
}

// SplitLines breaks content into lines for scanning and returns the
// line count. A trailing final newline does not create a phantom line;
// an empty file still counts as one line. Carriage returns stay attached
// so rejoining with "\n" reproduces the original bytes.
func SplitLines(content string) ([]string, int) {
	lines := strings.Split(content, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		return lines[:len(lines)-1], len(lines) - 1
	}
	return lines, len(lines)
}
