package language

import "regexp"

// Marker regexes shared across profiles. Group 1 captures the section
// name, group 2 the optional description after a dash separator.
var (
	// //#region name — description  (curly-brace family)
	curlyStart = regexp.MustCompile(`^\s*//#region\s+(\S+)(?:\s*[—–-]\s*(.*?))?\s*$`)
	curlyEnd   = regexp.MustCompile(`^\s*//#endregion(?:\s.*)?$`)

	// # region: name — description  (hash-comment family)
	hashStart = regexp.MustCompile(`^\s*#\s*region:\s*(\S+)(?:\s*[—–-]\s*(.*?))?\s*$`)
	hashEnd   = regexp.MustCompile(`^\s*#\s*endregion(?:\s.*)?$`)

	// // region: name — description  (go/rust family)
	slashStart = regexp.MustCompile(`^\s*//\s*region:\s*(\S+)(?:\s*[—–-]\s*(.*?))?\s*$`)
	slashEnd   = regexp.MustCompile(`^\s*//\s*endregion(?:\s.*)?$`)

	// #region name — description  (C# family)
	sharpStart = regexp.MustCompile(`^\s*#region\s+(\S+)(?:\s*[—–-]\s*(.*?))?\s*$`)
	sharpEnd   = regexp.MustCompile(`^\s*#endregion(?:\s.*)?$`)
)

// builtinProfiles is the static language table. Resolution scans it
// linearly and the first extension match wins, so adding a language is a
// data change, never a control-flow change.
var builtinProfiles = []*Profile{
	{
		Name:          "go",
		Extensions:    []string{".go"},
		LineComment:   "//",
		ExplicitStart: slashStart,
		ExplicitEnd:   slashEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^package\s+\w`), Section: "package", Priority: 10},
			{Pattern: regexp.MustCompile(`^import\b`), Section: "imports", Priority: 20},
			{Pattern: regexp.MustCompile(`^func\s+main\s*\(`), Section: "main", Priority: 30},
			{Pattern: regexp.MustCompile(`^func\b`), Section: "functions", Priority: 40},
			{Pattern: regexp.MustCompile(`^type\b`), Section: "types", Priority: 50},
			{Pattern: regexp.MustCompile(`^(?:var|const)\b`), Section: "declarations", Priority: 60},
		},
	},
	{
		Name:          "rust",
		Extensions:    []string{".rs"},
		LineComment:   "//",
		ExplicitStart: slashStart,
		ExplicitEnd:   slashEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^use\b`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^(?:pub\s+)?mod\b`), Section: "modules", Priority: 20},
			{Pattern: regexp.MustCompile(`^(?:pub\s+)?(?:struct|enum|trait)\b`), Section: "types", Priority: 30},
			{Pattern: regexp.MustCompile(`^(?:pub\s+)?(?:async\s+)?fn\s+main\b`), Section: "main", Priority: 40},
			{Pattern: regexp.MustCompile(`^(?:pub\s+)?(?:async\s+)?fn\b`), Section: "functions", Priority: 50},
			{Pattern: regexp.MustCompile(`^impl\b`), Section: "implementations", Priority: 60},
		},
	},
	{
		Name:          "javascript",
		Extensions:    []string{".js", ".jsx", ".mjs", ".cjs"},
		LineComment:   "//",
		ExplicitStart: curlyStart,
		ExplicitEnd:   curlyEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^\s*import\b|^\s*const\s+\w+\s*=\s*require\(`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?class\b`), Section: "classes", Priority: 20},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\b`), Section: "functions", Priority: 30},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\b`), Section: "declarations", Priority: 40},
			{Pattern: regexp.MustCompile(`^\s*module\.exports\b|^\s*export\b`), Section: "exports", Priority: 50},
		},
	},
	{
		Name:          "typescript",
		Extensions:    []string{".ts", ".tsx"},
		LineComment:   "//",
		ExplicitStart: curlyStart,
		ExplicitEnd:   curlyEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^\s*import\b`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?interface\b`), Section: "types", Priority: 20},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?type\s+\w+\s*=`), Section: "types", Priority: 25},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\b`), Section: "classes", Priority: 30},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\b`), Section: "functions", Priority: 40},
			{Pattern: regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\b`), Section: "declarations", Priority: 50},
		},
	},
	{
		Name:          "python",
		Extensions:    []string{".py", ".pyw"},
		LineComment:   "#",
		ExplicitStart: hashStart,
		ExplicitEnd:   hashEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^(?:import|from)\b`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^class\b`), Section: "classes", Priority: 20},
			{Pattern: regexp.MustCompile(`^(?:async\s+)?def\b`), Section: "functions", Priority: 30},
			{Pattern: regexp.MustCompile(`^if\s+__name__\s*==`), Section: "main", Priority: 40},
		},
	},
	{
		Name:          "ruby",
		Extensions:    []string{".rb", ".rake"},
		LineComment:   "#",
		ExplicitStart: hashStart,
		ExplicitEnd:   hashEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^require(?:_relative)?\b`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^\s*class\b`), Section: "classes", Priority: 20},
			{Pattern: regexp.MustCompile(`^\s*module\b`), Section: "modules", Priority: 30},
			{Pattern: regexp.MustCompile(`^\s*def\b`), Section: "functions", Priority: 40},
		},
	},
	{
		Name:          "shell",
		Extensions:    []string{".sh", ".bash", ".zsh"},
		LineComment:   "#",
		ExplicitStart: hashStart,
		ExplicitEnd:   hashEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^(?:source|\.)\s`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^\s*(?:function\s+)?[A-Za-z_]\w*\s*\(\)\s*\{`), Section: "functions", Priority: 20},
			{Pattern: regexp.MustCompile(`^[A-Za-z_]\w*=`), Section: "variables", Priority: 30},
		},
	},
	{
		// No auto rules: YAML structure is too position-dependent for
		// line patterns, so unmarked files fall back to a single section.
		Name:          "yaml",
		Extensions:    []string{".yaml", ".yml"},
		LineComment:   "#",
		ExplicitStart: hashStart,
		ExplicitEnd:   hashEnd,
	},
	{
		Name:          "csharp",
		Extensions:    []string{".cs"},
		LineComment:   "//",
		ExplicitStart: sharpStart,
		ExplicitEnd:   sharpEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^using\b`), Section: "imports", Priority: 10},
			{Pattern: regexp.MustCompile(`^\s*namespace\b`), Section: "namespace", Priority: 20},
			{Pattern: regexp.MustCompile(`^\s*(?:public\s+|internal\s+|private\s+|protected\s+|static\s+|sealed\s+|abstract\s+|partial\s+)*class\b`), Section: "classes", Priority: 30},
			{Pattern: regexp.MustCompile(`^\s*(?:public\s+|internal\s+)?interface\b`), Section: "types", Priority: 40},
		},
	},
	{
		Name:          "java",
		Extensions:    []string{".java"},
		LineComment:   "//",
		ExplicitStart: curlyStart,
		ExplicitEnd:   curlyEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^package\b`), Section: "package", Priority: 10},
			{Pattern: regexp.MustCompile(`^import\b`), Section: "imports", Priority: 20},
			{Pattern: regexp.MustCompile(`^(?:public\s+|final\s+|abstract\s+)*class\b`), Section: "classes", Priority: 30},
			{Pattern: regexp.MustCompile(`^(?:public\s+)?interface\b`), Section: "types", Priority: 40},
		},
	},
	{
		Name:          "c",
		Extensions:    []string{".c", ".h"},
		LineComment:   "//",
		ExplicitStart: curlyStart,
		ExplicitEnd:   curlyEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^#include\b`), Section: "includes", Priority: 10},
			{Pattern: regexp.MustCompile(`^#(?:define|ifndef|ifdef|endif|pragma)\b`), Section: "macros", Priority: 20},
			{Pattern: regexp.MustCompile(`^(?:typedef\b|struct\s+\w+|enum\s+\w+|union\s+\w+)`), Section: "types", Priority: 30},
			{Pattern: regexp.MustCompile(`^[A-Za-z_][\w\s\*]*\s\**[A-Za-z_]\w*\s*\(`), Section: "functions", Priority: 40},
		},
	},
	{
		Name:          "cpp",
		Extensions:    []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"},
		LineComment:   "//",
		ExplicitStart: curlyStart,
		ExplicitEnd:   curlyEnd,
		AutoRules: []AutoRule{
			{Pattern: regexp.MustCompile(`^#include\b`), Section: "includes", Priority: 10},
			{Pattern: regexp.MustCompile(`^#(?:define|ifndef|ifdef|endif|pragma)\b`), Section: "macros", Priority: 20},
			{Pattern: regexp.MustCompile(`^\s*(?:class|struct)\b`), Section: "types", Priority: 30},
			{Pattern: regexp.MustCompile(`^\s*namespace\b`), Section: "namespace", Priority: 40},
			{Pattern: regexp.MustCompile(`^template\b`), Section: "types", Priority: 50},
			{Pattern: regexp.MustCompile(`^[A-Za-z_][\w\s\*:<>]*\s\**[A-Za-z_]\w*\s*\(`), Section: "functions", Priority: 60},
		},
	},
}
