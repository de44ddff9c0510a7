// Package resolver orchestrates the section resolution strategies.
//
// Resolution turns one file's current content into an Index by trying
// strategies in strict precedence order:
//
//  1. Companion document: a human-authored section table next to the
//     file. When present, it wins outright; scanner output is never
//     merged in.
//  2. Explicit markers: author-placed region comments in the file.
//  3. Auto-detection: the language profile's heuristic line patterns.
//  4. Fallback: a single "main" section spanning the whole file.
//
// The fallback guarantees every readable file resolves to at least one
// section. Files with unregistered extensions resolve too: their
// language is recorded as "unknown" and the scanners are skipped, so
// only the companion and fallback strategies apply.
//
// An Index is a point-in-time value. It is recomputed from content on
// every request and never cached across calls.
//
//	r := resolver.New(language.NewRegistry())
//	idx, err := r.Resolve("cmd/server/main.go")
//	if err != nil {
//	    return err
//	}
//	for _, s := range idx.Sections {
//	    fmt.Printf("%s: %d-%d\n", s.Name, s.Start, s.End)
//	}
package resolver
