// Package config loads codemap configuration from YAML files and the
// environment.
//
// Configuration is resolved in precedence order:
//
//  1. CODEMAP_* environment variables (CODEMAP_WORKERS,
//     CODEMAP_DRIFT_TOLERANCE, CODEMAP_HISTORY_PATH, ...)
//  2. An explicit --config file, or .codemap.yaml found in the working
//     directory or the home directory
//  3. Built-in defaults
//
// A minimal .codemap.yaml:
//
//	workers: 8
//	drift_tolerance: 5
//	history:
//	  enabled: true
//	  path: ~/.codemap/history.db
//	exclude:
//	  - node_modules
//	  - vendor
//	profiles_path: .codemap/profiles.yaml
//
// profiles_path points at an optional language profile overlay; see the
// language package for its format.
package config
