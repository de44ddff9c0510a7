package scanner

import (
	"strings"
	"testing"

	"codemap/internal/language"
	"codemap/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileFor(t *testing.T, path string) *language.Profile {
	t.Helper()
	profile, ok := language.NewRegistry().Resolve(path)
	require.True(t, ok)
	return profile
}

func TestExplicitSingleRegion(t *testing.T) {
	content := `//#region imports
import { serve } from "./server";
//#endregion
const port = 8080;

function main() {
  serve(port);
}

main();`
	lines := strings.Split(content, "\n")
	require.Len(t, lines, 10)

	sections := Explicit(lines, profileFor(t, "app.js"))

	require.Len(t, sections, 1)
	assert.Equal(t, "imports", sections[0].Name)
	assert.Equal(t, 1, sections[0].Start)
	assert.Equal(t, 3, sections[0].End, "end marker line is part of the section")
	assert.Equal(t, types.SourceExplicit, sections[0].Source)
}

func TestExplicitMultipleRegions(t *testing.T) {
	lines := []string{
		"//#region imports",
		`import fs from "fs";`,
		"//#endregion",
		"",
		"//#region api — request handlers",
		"function handle() {}",
		"//#endregion",
	}

	sections := Explicit(lines, profileFor(t, "app.js"))

	require.Len(t, sections, 2)
	assert.Equal(t, types.Section{Name: "imports", Start: 1, End: 3, Source: types.SourceExplicit}, sections[0])
	assert.Equal(t, "api", sections[1].Name)
	assert.Equal(t, 5, sections[1].Start)
	assert.Equal(t, 7, sections[1].End)
	assert.Equal(t, "request handlers", sections[1].Description)
}

func TestExplicitLastStartWins(t *testing.T) {
	lines := []string{
		"// region: setup",
		"a := 1",
		"b := 2",
		"// region: teardown",
		"c := 3",
		"// endregion",
	}

	sections := Explicit(lines, profileFor(t, "main.go"))

	require.Len(t, sections, 2)
	assert.Equal(t, "setup", sections[0].Name)
	assert.Equal(t, 1, sections[0].Start)
	assert.Equal(t, 3, sections[0].End, "a new start marker closes the open region at the line before it")
	assert.Equal(t, "teardown", sections[1].Name)
	assert.Equal(t, 4, sections[1].Start)
	assert.Equal(t, 6, sections[1].End)
}

func TestExplicitUnterminatedRegion(t *testing.T) {
	lines := []string{
		"package main",
		"",
		"// region: helpers",
		"func helper() {}",
		"func another() {}",
	}

	sections := Explicit(lines, profileFor(t, "main.go"))

	require.Len(t, sections, 1)
	assert.Equal(t, "helpers", sections[0].Name)
	assert.Equal(t, 3, sections[0].Start)
	assert.Equal(t, 5, sections[0].End, "unterminated region closes at the last line")
}

func TestExplicitStrayEndIgnored(t *testing.T) {
	lines := []string{
		"package main",
		"// endregion",
		"",
		"// region: body",
		"func main() {}",
		"// endregion",
	}

	sections := Explicit(lines, profileFor(t, "main.go"))

	require.Len(t, sections, 1)
	assert.Equal(t, "body", sections[0].Name)
	assert.Equal(t, 4, sections[0].Start)
	assert.Equal(t, 6, sections[0].End)
}

func TestExplicitNoMarkers(t *testing.T) {
	lines := []string{
		"package main",
		"",
		"func main() {}",
	}

	assert.Empty(t, Explicit(lines, profileFor(t, "main.go")))
}

func TestExplicitNilProfile(t *testing.T) {
	assert.Nil(t, Explicit([]string{"// region: a"}, nil))

	bare := &language.Profile{Name: "bare", Extensions: []string{".bare"}}
	assert.Nil(t, Explicit([]string{"// region: a"}, bare))
}

func TestExplicitCarriageReturnTolerated(t *testing.T) {
	lines := []string{
		"// region: imports\r",
		"import \"fmt\"\r",
		"// endregion\r",
	}

	sections := Explicit(lines, profileFor(t, "main.go"))

	require.Len(t, sections, 1)
	assert.Equal(t, "imports", sections[0].Name)
	assert.Equal(t, 1, sections[0].Start)
	assert.Equal(t, 3, sections[0].End)
}
