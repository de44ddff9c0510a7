package scanner

import (
	"codemap/internal/language"
	"codemap/pkg/types"
)

// Auto derives sections heuristically from the profile's pattern rules.
// It is used only when Explicit finds no markers.
//
// For each line, rules are tested in list order and only the first match
// counts; a rule's Priority field is advisory metadata and never reorders
// candidates. A match for the same target as the open section extends it,
// even across runs of non-matching lines, so one logical block is not
// fragmented just because only its declaration line matches a pattern. A
// match for a different target closes the open section at the previous
// line. Whatever remains open at end of input closes at the last line.
// Returns nil when no line matches any rule.
func Auto(lines []string, profile *language.Profile) []types.Section {
	if profile == nil || len(profile.AutoRules) == 0 {
		return nil
	}

	var sections []types.Section
	var openName string
	var openStart int

	for i, line := range lines {
		target, ok := matchLine(profile.AutoRules, line)
		if !ok {
			continue
		}

		lineNo := i + 1
		switch {
		case openStart == 0:
			openName, openStart = target, lineNo
		case target != openName:
			sections = append(sections, autoSection(openName, openStart, lineNo-1))
			openName, openStart = target, lineNo
		}
	}

	if openStart != 0 {
		sections = append(sections, autoSection(openName, openStart, len(lines)))
	}

	return sections
}

// matchLine returns the target section of the first rule matching the line
func matchLine(rules []language.AutoRule, line string) (string, bool) {
	for _, rule := range rules {
		if rule.Pattern.MatchString(line) {
			return rule.Section, true
		}
	}
	return "", false
}

func autoSection(name string, start, end int) types.Section {
	return types.Section{
		Name:   name,
		Start:  start,
		End:    end,
		Source: types.SourceAuto,
	}
}
