// Package types provides shared type definitions for the codemap engine.
//
// This package defines the domain types used across multiple components of
// codemap, including sections, resolved indexes, and verification results.
//
// # Core Types
//
// Section represents one named line range within a file. Line numbers are
// 1-indexed and inclusive on both ends:
//
//	section := types.Section{
//	    Name:   "imports",
//	    Start:  1,
//	    End:    12,
//	    Source: types.SourceExplicit,
//	}
//
// Index is the resolved view of one file: its language, total line count,
// and ordered sections. An Index is an immutable value computed from file
// content at a point in time and recomputed on every request:
//
//	idx := &types.Index{
//	    FilePath:   "pkg/server/handler.go",
//	    Language:   "go",
//	    TotalLines: 240,
//	    Sections:   sections,
//	}
//
// # Provenance
//
// Every section records which resolution strategy produced it:
//
//	types.SourceCompanion  // Companion document table
//	types.SourceExplicit   // Author-placed region markers
//	types.SourceAuto       // Pattern-based heuristic detection
//	types.SourceFallback   // Single whole-file section
//
// Sources are never mixed within one index; the strategies are tried in
// strict precedence order and the first that yields sections wins.
//
// # Verification
//
// VerifyResult captures the comparison between a stored index block and
// the file's current content:
//
//	result := verifier.Verify(path)
//	if !result.Valid {
//	    for _, issue := range result.Issues {
//	        fmt.Println(issue)
//	    }
//	}
//
// # Validation
//
// Domain types implement validation methods to ensure data integrity:
//
//	if err := section.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
