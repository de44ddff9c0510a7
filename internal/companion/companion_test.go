package companion

import (
	"os"
	"path/filepath"
	"testing"

	"codemap/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLocatePriority(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "server.go")

	adjacent := filepath.Join(dir, "server.go.ai.md")
	dotAIFull := filepath.Join(dir, ".ai", "server.go.md")
	dotAIStem := filepath.Join(dir, ".ai", "server.md")

	t.Run("no candidates", func(t *testing.T) {
		_, ok := Locate(source)
		assert.False(t, ok)
	})

	writeFile(t, dotAIStem, "# server")
	t.Run("stem candidate only", func(t *testing.T) {
		path, ok := Locate(source)
		require.True(t, ok)
		assert.Equal(t, dotAIStem, path)
	})

	writeFile(t, dotAIFull, "# server")
	t.Run("full basename beats stem", func(t *testing.T) {
		path, ok := Locate(source)
		require.True(t, ok)
		assert.Equal(t, dotAIFull, path)
	})

	writeFile(t, adjacent, "# server")
	t.Run("adjacent file wins over .ai dir", func(t *testing.T) {
		path, ok := Locate(source)
		require.True(t, ok)
		assert.Equal(t, adjacent, path)
	})
}

func TestParseFullDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.go.ai.md")
	writeFile(t, path, `# server.go

Request routing and lifecycle management
for the public API.

## Sections

| Name          | Lines | Description        |
|---------------|-------|--------------------|
| imports       | 1-12  | stdlib and deps    |
| handlers/auth | 14–80 | token verification |
| main          | 82    | entry point        |

## Notes

The auth block is due for a split.
`)

	doc, ok := Parse(path)
	require.True(t, ok)

	assert.Equal(t, "Request routing and lifecycle management\nfor the public API.", doc.Description)
	assert.Equal(t, "The auth block is due for a split.", doc.Notes)

	require.Len(t, doc.Sections, 3)
	assert.Equal(t, types.Section{
		Name:        "imports",
		Start:       1,
		End:         12,
		Description: "stdlib and deps",
		Source:      types.SourceCompanion,
	}, doc.Sections[0])

	assert.Equal(t, "handlers/auth", doc.Sections[1].Name)
	assert.Equal(t, 14, doc.Sections[1].Start)
	assert.Equal(t, 80, doc.Sections[1].End, "en-dash ranges are accepted")

	assert.Equal(t, "main", doc.Sections[2].Name)
	assert.Equal(t, 82, doc.Sections[2].Start)
	assert.Equal(t, 82, doc.Sections[2].End, "single line number means start = end")
}

func TestParseHeadingCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool.py.ai.md")
	writeFile(t, path, `# tool.py

## SECTION

| setup | 1-10 |
`)

	doc, ok := Parse(path)
	require.True(t, ok)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "setup", doc.Sections[0].Name)
}

func TestParseSkipsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go.ai.md")
	writeFile(t, path, `# a.go

## Sections

| Name | Lines |
|------|-------|
| good | 5-9 |
| reversed | 9-5 |
| zero | 0-4 |
| nonsense | abc |
| | 1-2 |
not a table row
| noRange |
`)

	doc, ok := Parse(path)
	require.True(t, ok)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "good", doc.Sections[0].Name)
	assert.Equal(t, 5, doc.Sections[0].Start)
	assert.Equal(t, 9, doc.Sections[0].End)
}

func TestParseNoSections(t *testing.T) {
	dir := t.TempDir()

	t.Run("document without table", func(t *testing.T) {
		path := filepath.Join(dir, "plain.go.ai.md")
		writeFile(t, path, "# plain.go\n\nJust prose, no section table.\n")
		_, ok := Parse(path)
		assert.False(t, ok)
	})

	t.Run("table with only header rows", func(t *testing.T) {
		path := filepath.Join(dir, "empty.go.ai.md")
		writeFile(t, path, "# empty.go\n\n## Sections\n\n| Name | Lines |\n|------|-------|\n")
		_, ok := Parse(path)
		assert.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		_, ok := Parse(filepath.Join(dir, "absent.md"))
		assert.False(t, ok)
	})
}

func TestParseDescriptionStopsAtOtherHeading(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.go.ai.md")
	writeFile(t, path, `# b.go

The real description.

## Usage

Not part of the description.

## Sections

| body | 1-3 |
`)

	doc, ok := Parse(path)
	require.True(t, ok)
	assert.Equal(t, "The real description.", doc.Description)
	require.Len(t, doc.Sections, 1)
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		cell      string
		wantStart int
		wantEnd   int
		wantOK    bool
	}{
		{cell: "7", wantStart: 7, wantEnd: 7, wantOK: true},
		{cell: "3-9", wantStart: 3, wantEnd: 9, wantOK: true},
		{cell: "3–9", wantStart: 3, wantEnd: 9, wantOK: true},
		{cell: "3 - 9", wantStart: 3, wantEnd: 9, wantOK: true},
		{cell: "9-3", wantOK: false},
		{cell: "0-4", wantOK: false},
		{cell: "abc", wantOK: false},
		{cell: "", wantOK: false},
		{cell: "1-2-3", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			start, end, ok := parseRange(tt.cell)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantStart, start)
				assert.Equal(t, tt.wantEnd, end)
			}
		})
	}
}
