package libdiff

import (
	"fmt"
	"strings"
)

// Apply applies edits produced by Lines to text. It fails if the edits are
// out of order or text does not contain the lines they expect to replace.
func Apply(text string, edits []Edit) (string, error) {
	docLines := SplitLines(text)
	var buf strings.Builder
	buf.Grow(len(text))
	fi := 0
	for i := range edits {
		e := &edits[i]
		if e.Start < fi || e.End < e.Start || e.End > len(docLines) {
			return "", fmt.Errorf("edit %d: bad line range [%d, %d) at line %d of %d", i, e.Start, e.End, fi, len(docLines))
		}
		for _, line := range docLines[fi:e.Start] {
			buf.WriteString(line)
		}
		if got := strings.Join(docLines[e.Start:e.End], ""); got != e.Old {
			return "", fmt.Errorf("edit %d: cannot patch, unexpected text %q, expected %q", i, got, e.Old)
		}
		buf.WriteString(e.New)
		fi = e.End
	}
	for _, line := range docLines[fi:] {
		buf.WriteString(line)
	}
	return buf.String(), nil
}

// Reverse returns the edits that undo edits, in terms of the new text's
// lines.
func Reverse(edits []Edit) []Edit {
	res := make([]Edit, len(edits))
	shift := 0
	for i, e := range edits {
		start := e.Start + shift
		n := lineCount(e.New)
		res[i] = Edit{Start: start, End: start + n, Old: e.New, New: e.Old}
		shift += n - (e.End - e.Start)
	}
	return res
}
