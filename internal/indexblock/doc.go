// Package indexblock serializes section indexes into embedded comment
// blocks and parses them back out of file content.
//
// # Block Format
//
// A block is a single run of comment lines: the marker token, a
// generation timestamp, the total line count, and a Markdown-style pipe
// table, all behind the host language's comment leader:
//
//	// CODEMAP-INDEX v1
//	// Generated: 2026-03-14T09:30:00Z
//	// Total lines: 240
//	//
//	// | Section              | Line | End | Size | Description          |
//	// | -------------------- | ---- | --- | ---- | -------------------- |
//	// | imports              | 1    | 12  | 12   | stdlib and deps      |
//	// | handlers             | 14   | 220 | 207  |                      |
//
// Columns are padded to the widest entry on every Render call, with a
// 20-character floor for the Section and Description columns. Nothing is
// cached between calls.
//
// # Round Trip
//
// Parse(Render(sections, n)) reproduces every section's name, start,
// end, derived size, and description. Parse infers the comment leader
// from the marker line itself, so decoding needs no language profile.
//
// # Editing
//
// Upsert replaces an existing block at its exact line offset, or inserts
// a fresh block at the top of the file (after a #! interpreter directive
// when present). Remove splices the block out together with the blank
// lines directly below it. In both cases every byte outside the block
// survives unchanged: the block is owned by the host file and replaced
// wholesale, never patched in place.
package indexblock
