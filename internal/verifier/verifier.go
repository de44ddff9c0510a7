package verifier

import (
	"fmt"
	"os"

	"codemap/internal/indexblock"
	"codemap/internal/language"
	"codemap/internal/resolver"
	"codemap/internal/scanner"
	"codemap/pkg/types"
)

// DefaultDriftTolerance is how many lines a stored section's start may
// differ from its recomputed position before the drift is flagged.
// Small formatting churn is accepted; structural movement is not.
const DefaultDriftTolerance = 5

// Verifier checks stored index blocks against current file content
type Verifier struct {
	registry  *language.Registry
	tolerance int
}

// New creates a verifier. A non-positive tolerance falls back to
// DefaultDriftTolerance.
func New(registry *language.Registry, tolerance int) *Verifier {
	if tolerance <= 0 {
		tolerance = DefaultDriftTolerance
	}
	return &Verifier{registry: registry, tolerance: tolerance}
}

// Tolerance returns the configured drift tolerance in lines
func (v *Verifier) Tolerance() int {
	return v.tolerance
}

// Verify reads the file and compares its stored index block against the
// current content. Only reading the file can fail; every detectable
// problem is reported as an issue in the result, not as an error.
func (v *Verifier) Verify(filePath string) (*types.VerifyResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filePath, err)
	}
	return v.VerifyContent(filePath, string(data)), nil
}

// VerifyContent runs the verification steps on loaded content:
//
//  1. Parse the stored block; absent means a single no-index issue.
//  2. Flag stored sections whose range exceeds the current line count.
//  3. Re-scan explicit markers, and only those: when markers exist they
//     are the ground truth, so auto-detection is not re-run.
//  4. Flag marker regions missing from the stored block by name.
//  5. Flag stored sections whose start has drifted beyond the tolerance.
func (v *Verifier) VerifyContent(filePath, content string) *types.VerifyResult {
	result := &types.VerifyResult{FilePath: filePath}

	block, ok := indexblock.Parse(content)
	if !ok {
		result.Issues = append(result.Issues, types.Issue{
			Kind:   types.IssueNoIndex,
			Detail: "no index block found",
		})
		return result
	}

	lines, totalLines := resolver.SplitLines(content)

	for _, name := range block.Names {
		stored := block.Sections[name]
		if stored.Start > totalLines || stored.End > totalLines {
			result.Issues = append(result.Issues, types.Issue{
				Kind:    types.IssueOutOfRange,
				Section: name,
				Detail:  fmt.Sprintf("stored range %d-%d exceeds the current %d lines", stored.Start, stored.End, totalLines),
				Stored:  stored.End,
				Actual:  totalLines,
			})
		}
	}

	if profile, supported := v.registry.Resolve(filePath); supported {
		v.compareRegions(result, block, scanner.Explicit(lines, profile))
	}

	result.Valid = len(result.Issues) == 0
	return result
}

func (v *Verifier) compareRegions(result *types.VerifyResult, block *indexblock.Block, regions []types.Section) {
	for _, region := range regions {
		stored, present := block.Sections[region.Name]
		if !present {
			result.Issues = append(result.Issues, types.Issue{
				Kind:    types.IssueMissingFromIndex,
				Section: region.Name,
				Detail:  fmt.Sprintf("marker region at line %d is not in the stored index", region.Start),
				Actual:  region.Start,
			})
			continue
		}

		if drift := abs(stored.Start - region.Start); drift > v.tolerance {
			result.Issues = append(result.Issues, types.Issue{
				Kind:    types.IssueLineDrift,
				Section: region.Name,
				Detail:  fmt.Sprintf("start drifted from %d to %d (%d lines, tolerance %d)", stored.Start, region.Start, drift, v.tolerance),
				Stored:  stored.Start,
				Actual:  region.Start,
			})
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
