package language

import (
	"path/filepath"
	"strings"
)

// Registry resolves file paths to language profiles
type Registry struct {
	profiles []*Profile
}

// NewRegistry returns a registry loaded with the built-in profile table
func NewRegistry() *Registry {
	profiles := make([]*Profile, len(builtinProfiles))
	copy(profiles, builtinProfiles)
	return &Registry{profiles: profiles}
}

// Resolve returns the first profile whose extension set covers the
// file's extension. Matching is case-insensitive. The boolean is false
// when no profile matches; callers must treat that as "unsupported",
// not as an error.
func (r *Registry) Resolve(filePath string) (*Profile, bool) {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == "" {
		return nil, false
	}

	for _, p := range r.profiles {
		if p.Matches(ext) {
			return p, true
		}
	}
	return nil, false
}

// Profiles returns the profile list in resolution order
func (r *Registry) Profiles() []*Profile {
	return r.profiles
}
