package types

import (
	"errors"
	"time"
)

// Index is the resolved section view of one file at a point in time.
// It is recomputed from file content on every request and never cached.
type Index struct {
	// Identification
	FilePath string `json:"file_path"`
	Language string `json:"language"` // Registry key, or "unknown" for unregistered extensions

	// Content
	TotalLines int       `json:"total_lines"`
	Sections   []Section `json:"sections"` // Ordered by Start ascending

	// Metadata
	GeneratedAt   time.Time `json:"generated_at"`
	CompanionPath string    `json:"companion_path,omitempty"` // Set when sections came from a companion document
}

// Section returns the section with the given name, if present
func (idx *Index) Section(name string) (*Section, bool) {
	for i := range idx.Sections {
		if idx.Sections[i].Name == name {
			return &idx.Sections[i], true
		}
	}
	return nil, false
}

// SectionNames returns all section names in document order
func (idx *Index) SectionNames() []string {
	names := make([]string, 0, len(idx.Sections))
	for i := range idx.Sections {
		names = append(names, idx.Sections[i].Name)
	}
	return names
}

// Source returns the provenance shared by the index's sections.
// Sources are never mixed within one index.
func (idx *Index) Source() SectionSource {
	if len(idx.Sections) == 0 {
		return ""
	}
	return idx.Sections[0].Source
}

// Validate performs comprehensive validation of the index
func (idx *Index) Validate() error {
	if idx.FilePath == "" {
		return errors.New("file path is required")
	}

	if idx.TotalLines <= 0 {
		return errors.New("total lines must be positive")
	}

	if len(idx.Sections) == 0 {
		return errors.New("index must contain at least one section")
	}

	for i := range idx.Sections {
		if err := idx.Sections[i].Validate(); err != nil {
			return err
		}

		if i > 0 && idx.Sections[i].Start < idx.Sections[i-1].Start {
			return errors.New("sections must be ordered by start line")
		}
	}

	return nil
}
