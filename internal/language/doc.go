// Package language maps file extensions to per-language syntax profiles.
//
// A Profile bundles everything the scanners and the block codec need to
// know about one language family: the explicit region marker patterns,
// the comment leader for rendering embedded index blocks, and an ordered
// list of auto-detection rules.
//
// # Basic Usage
//
//	registry := language.NewRegistry()
//	profile, ok := registry.Resolve("cmd/server/main.go")
//	if !ok {
//	    // extension not registered: the file is unsupported, not broken
//	}
//
// # Marker Families
//
// Built-in profiles cover four region marker families:
//
//	//#region name — desc   //#endregion    (javascript, typescript, java, c, cpp)
//	# region: name          # endregion     (python, ruby, shell, yaml)
//	// region: name         // endregion    (go, rust)
//	#region name            #endregion      (csharp)
//
// # Resolution Policy
//
// Resolve performs a linear scan over the profile list and returns the
// first profile whose extension set contains the file's extension
// (compared case-insensitively). Unregistered extensions yield ok=false;
// callers treat those files as unsupported rather than failing.
//
// # Overlays
//
// The built-in table is data, not control flow. Users can extend or
// override it with a YAML overlay file:
//
//	registry := language.NewRegistry()
//	if err := registry.LoadOverlay(".codemap-profiles.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
// Overlay profiles are prepended, so they win extension conflicts against
// the built-ins. Tuning detection accuracy never requires touching the
// scanning algorithms.
package language
