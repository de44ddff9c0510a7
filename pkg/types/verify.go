package types

import "fmt"

// IssueKind classifies a single verification finding
type IssueKind string

const (
	IssueNoIndex          IssueKind = "no-index"           // File has no embedded index block
	IssueOutOfRange       IssueKind = "out-of-range"       // Stored range exceeds the current line count
	IssueMissingFromIndex IssueKind = "missing-from-index" // Marker region exists in the file but not in the block
	IssueLineDrift        IssueKind = "line-drift"         // Stored start differs from the actual start beyond tolerance
)

// Issue describes one disagreement between a stored index block and the
// file's current content
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Section string    `json:"section,omitempty"` // Affected section name, empty for no-index
	Detail  string    `json:"detail"`
	Stored  int       `json:"stored,omitempty"` // Line value recorded in the block
	Actual  int       `json:"actual,omitempty"` // Line value recomputed from content
}

// String renders the issue for human-readable output
func (i Issue) String() string {
	if i.Section == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Detail)
	}
	return fmt.Sprintf("%s [%s]: %s", i.Kind, i.Section, i.Detail)
}

// VerifyResult is the outcome of checking a stored index block against
// the file's current content
type VerifyResult struct {
	FilePath string  `json:"file_path"`
	Valid    bool    `json:"valid"`
	Issues   []Issue `json:"issues"`
}

// HasIssue reports whether the result contains an issue of the given kind
func (vr *VerifyResult) HasIssue(kind IssueKind) bool {
	for _, issue := range vr.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}
