package language

import "regexp"

// Profile bundles the syntax rules for one language family: how explicit
// region markers look, which comment leader to use for the embedded index
// block, and which line patterns drive auto-detection.
type Profile struct {
	// Identification
	Name       string   // Registry key, e.g. "go"
	Extensions []string // Lowercase, leading dot included

	// Rendering
	LineComment string // Comment leader for embedded index blocks

	// Explicit region markers. Start captures the section name in group 1
	// and an optional description in group 2. Either may be nil for
	// profiles that carry no marker syntax.
	ExplicitStart *regexp.Regexp
	ExplicitEnd   *regexp.Regexp

	// Auto-detection rules, tested in list order
	AutoRules []AutoRule
}

// AutoRule maps a line pattern to a target section name.
// Priority is advisory metadata; list order is the effective tie-break.
type AutoRule struct {
	Pattern  *regexp.Regexp
	Section  string
	Priority int
}

// Matches reports whether the profile covers the given lowercase extension
func (p *Profile) Matches(ext string) bool {
	for _, e := range p.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// HasExplicitMarkers reports whether the profile defines a usable
// start/end marker pair
func (p *Profile) HasExplicitMarkers() bool {
	return p.ExplicitStart != nil && p.ExplicitEnd != nil
}
