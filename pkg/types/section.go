package types

import "errors"

// SectionSource records which resolution strategy produced a section
type SectionSource string

const (
	SourceCompanion SectionSource = "companion"
	SourceExplicit  SectionSource = "explicit"
	SourceAuto      SectionSource = "auto"
	SourceFallback  SectionSource = "fallback"
)

// Section represents one named, contiguous line range within a file.
// Line numbers are 1-indexed and inclusive on both ends.
type Section struct {
	// Identification
	Name string `json:"name"` // Hierarchical identifier, segments separated by "/"

	// Location
	Start int `json:"start"` // First line of the section
	End   int `json:"end"`   // Last line of the section, inclusive

	// Metadata
	Description string        `json:"description,omitempty"`
	Source      SectionSource `json:"source"` // Provenance, diagnostic only
}

// Size returns the number of lines the section spans
func (s *Section) Size() int {
	return s.End - s.Start + 1
}

// ValidateSource checks if the section source is valid
func (s *Section) ValidateSource() error {
	switch s.Source {
	case SourceCompanion, SourceExplicit, SourceAuto, SourceFallback:
		return nil
	default:
		return errors.New("invalid section source")
	}
}

// Validate performs comprehensive validation of the section
func (s *Section) Validate() error {
	if s.Name == "" {
		return errors.New("section name is required")
	}

	if s.Start <= 0 || s.End <= 0 {
		return errors.New("line numbers must be positive")
	}

	if s.Start > s.End {
		return errors.New("start line must be before or equal to end line")
	}

	if err := s.ValidateSource(); err != nil {
		return err
	}

	return nil
}

// Contains reports whether the given 1-indexed line falls inside the section
func (s *Section) Contains(line int) bool {
	return line >= s.Start && line <= s.End
}
