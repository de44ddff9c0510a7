package language

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// overlayFile mirrors the YAML profile overlay format:
//
//	profiles:
//	  - name: kotlin
//	    extensions: [".kt", ".kts"]
//	    line_comment: "//"
//	    explicit_start: '^\s*//#region\s+(\S+)(?:\s*-\s*(.*?))?\s*$'
//	    explicit_end: '^\s*//#endregion'
//	    auto_rules:
//	      - pattern: '^import\b'
//	        section: imports
//	        priority: 10
type overlayFile struct {
	Profiles []overlayProfile `yaml:"profiles"`
}

type overlayProfile struct {
	Name          string        `yaml:"name"`
	Extensions    []string      `yaml:"extensions"`
	LineComment   string        `yaml:"line_comment"`
	ExplicitStart string        `yaml:"explicit_start"`
	ExplicitEnd   string        `yaml:"explicit_end"`
	AutoRules     []overlayRule `yaml:"auto_rules"`
}

type overlayRule struct {
	Pattern  string `yaml:"pattern"`
	Section  string `yaml:"section"`
	Priority int    `yaml:"priority"`
}

// LoadOverlay reads a YAML profile file and prepends its profiles to the
// registry. Because resolution is first-match-wins, overlay profiles win
// extension conflicts against the built-in table, so users can both add
// languages and override built-in rules without touching code.
func (r *Registry) LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profile overlay: %w", err)
	}

	var file overlayFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse profile overlay: %w", err)
	}

	loaded := make([]*Profile, 0, len(file.Profiles))
	for _, op := range file.Profiles {
		profile, err := op.compile()
		if err != nil {
			return err
		}
		loaded = append(loaded, profile)
	}

	r.profiles = append(loaded, r.profiles...)
	return nil
}

func (op overlayProfile) compile() (*Profile, error) {
	if op.Name == "" {
		return nil, fmt.Errorf("profile overlay: profile name is required")
	}
	if len(op.Extensions) == 0 {
		return nil, fmt.Errorf("profile overlay %q: at least one extension is required", op.Name)
	}

	profile := &Profile{
		Name:        op.Name,
		LineComment: op.LineComment,
	}
	if profile.LineComment == "" {
		profile.LineComment = "//"
	}

	for _, ext := range op.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		profile.Extensions = append(profile.Extensions, ext)
	}

	var err error
	if op.ExplicitStart != "" {
		profile.ExplicitStart, err = regexp.Compile(op.ExplicitStart)
		if err != nil {
			return nil, fmt.Errorf("profile overlay %q: explicit_start: %w", op.Name, err)
		}
	}
	if op.ExplicitEnd != "" {
		profile.ExplicitEnd, err = regexp.Compile(op.ExplicitEnd)
		if err != nil {
			return nil, fmt.Errorf("profile overlay %q: explicit_end: %w", op.Name, err)
		}
	}

	for _, rule := range op.AutoRules {
		if rule.Section == "" {
			return nil, fmt.Errorf("profile overlay %q: auto rule %q: section name is required", op.Name, rule.Pattern)
		}
		pattern, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("profile overlay %q: auto rule %q: %w", op.Name, rule.Pattern, err)
		}
		profile.AutoRules = append(profile.AutoRules, AutoRule{
			Pattern:  pattern,
			Section:  rule.Section,
			Priority: rule.Priority,
		})
	}

	return profile, nil
}
