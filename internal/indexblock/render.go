package indexblock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"codemap/pkg/types"
)

// minColumnWidth keeps the Section and Description columns from
// collapsing on short content, so consecutive regenerations of small
// files produce stable-looking tables
const minColumnWidth = 20

// Render serializes sections into an embedded comment block using the
// given comment leader. Column widths are recomputed on every call: each
// column is padded to its widest entry, with a floor of minColumnWidth
// for the name and description columns.
func Render(sections []types.Section, totalLines int, leader string, now time.Time) string {
	nameW, lineW, endW, sizeW, descW := columnWidths(sections)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", leader, Marker)
	fmt.Fprintf(&b, "%s Generated: %s\n", leader, now.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s Total lines: %d\n", leader, totalLines)
	fmt.Fprintf(&b, "%s\n", leader)

	fmt.Fprintf(&b, "%s | %-*s | %-*s | %-*s | %-*s | %-*s |\n",
		leader, nameW, headerLabel, lineW, "Line", endW, "End", sizeW, "Size", descW, "Description")
	fmt.Fprintf(&b, "%s | %s | %s | %s | %s | %s |\n",
		leader, dashes(nameW), dashes(lineW), dashes(endW), dashes(sizeW), dashes(descW))

	for _, s := range sections {
		fmt.Fprintf(&b, "%s | %-*s | %-*d | %-*d | %-*d | %-*s |\n",
			leader, nameW, s.Name, lineW, s.Start, endW, s.End, sizeW, s.Size(), descW, s.Description)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func columnWidths(sections []types.Section) (nameW, lineW, endW, sizeW, descW int) {
	nameW, descW = minColumnWidth, minColumnWidth
	lineW, endW, sizeW = len("Line"), len("End"), len("Size")

	for _, s := range sections {
		nameW = max(nameW, len(s.Name))
		descW = max(descW, len(s.Description))
		lineW = max(lineW, digits(s.Start))
		endW = max(endW, digits(s.End))
		sizeW = max(sizeW, digits(s.Size()))
	}
	return nameW, lineW, endW, sizeW, descW
}

func digits(n int) int {
	return len(strconv.Itoa(n))
}

func dashes(n int) string {
	return strings.Repeat("-", n)
}
