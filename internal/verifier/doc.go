// Package verifier checks whether a stored index block still describes
// the file it is embedded in.
//
// Verification never rewrites anything. It parses the embedded block,
// re-scans the file's explicit region markers, and reports disagreements
// as issues:
//
//   - no-index: the file has no index block at all
//   - out-of-range: a stored section points past the current end of file
//   - missing-from-index: a marker region has no entry in the block
//   - line-drift: a stored start moved further than the tolerance allows
//
// Explicit markers are the only ground truth consulted. Auto-detected
// and companion-sourced sections have no in-file anchor to re-scan, so
// for them only the range check applies.
//
// A few lines of drift is normal after light edits and is tolerated up
// to a configurable threshold (DefaultDriftTolerance). A result with no
// issues is valid; regenerating the index clears every issue kind except
// a missing file.
package verifier
