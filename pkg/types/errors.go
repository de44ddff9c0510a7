package types

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors shared across components
var (
	// ErrUnsupportedLanguage indicates the file's extension has no
	// registered language profile. Callers skip the file, not fail.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrNoIndex indicates a verify or remove target carries no embedded
	// index block. Reported, not fatal.
	ErrNoIndex = errors.New("no index block present")
)

// SectionNotFoundError is returned when a read request names a section
// that does not exist in the file's resolved index. It carries the names
// that do exist so the caller can render them.
type SectionNotFoundError struct {
	Name      string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("section %q not found", e.Name)
	}
	return fmt.Sprintf("section %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}
