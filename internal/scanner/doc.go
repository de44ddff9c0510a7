// Package scanner turns raw file lines into sections using a language
// profile's syntax rules.
//
// Two scanning strategies are provided. Explicit honors author-placed
// region markers and is always preferred; Auto is the heuristic fallback
// driven by the profile's line-pattern rules.
//
// # Explicit Scanning
//
//	lines := strings.Split(content, "\n")
//	sections := scanner.Explicit(lines, profile)
//
// Markers delimit sections directly:
//
//	//#region api — request handlers     <- section "api" starts here
//	func handle() {}
//	//#endregion                          <- and ends here, marker included
//
// Nesting is not supported: a start marker inside an open region closes
// the previous region at the line before it. An unterminated region is
// tolerated and closed at the last line of the file.
//
// # Auto Detection
//
//	sections := scanner.Auto(lines, profile)
//
// Auto assigns each matching line a target section name via the profile's
// rule list and grows sections greedily: a section stays open across
// non-matching lines until some line matches a different target. This
// keeps a class body or function group together instead of fragmenting it
// into one-line sections.
//
// Both scanners return nil rather than an error when they find nothing;
// the resolver interprets that as "try the next strategy".
package scanner
