package libdiff

import (
	"fmt"
	"strings"
)

const noNewline = "\\ No newline at end of file\n"

// Line prefixes of unified diff output.
const (
	FromHeaderPrefix = "--- "
	ToHeaderPrefix   = "+++ "
	HunkPrefix       = "@@"
	DeletePrefix     = "-"
	InsertPrefix     = "+"
)

// Unified renders the changes from one text to another as a unified diff
// with ctx lines of context. It returns "" when the texts are equal.
func Unified(fromName, toName, from, to string, ctx int) string {
	edits := Lines(from, to)
	if len(edits) == 0 {
		return ""
	}
	fromLines := SplitLines(from)
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s%s\n%s%s\n", FromHeaderPrefix, fromName, ToHeaderPrefix, toName)

	// shift is the line offset of the new text relative to the old one
	// before the current hunk.
	shift := 0
	for len(edits) > 0 {
		n := 1
		for n < len(edits) && edits[n].Start-edits[n-1].End <= 2*ctx {
			n++
		}
		group := edits[:n]
		edits = edits[n:]

		start := max(group[0].Start-ctx, 0)
		end := min(group[n-1].End+ctx, len(fromLines))
		var body strings.Builder
		oldN, newN := 0, 0
		pos := start
		for _, e := range group {
			for _, line := range fromLines[pos:e.Start] {
				writeLine(&body, " ", line)
			}
			oldN += e.Start - pos
			newN += e.Start - pos
			for _, line := range SplitLines(e.Old) {
				writeLine(&body, DeletePrefix, line)
				oldN++
			}
			for _, line := range SplitLines(e.New) {
				writeLine(&body, InsertPrefix, line)
				newN++
			}
			pos = e.End
		}
		for _, line := range fromLines[pos:end] {
			writeLine(&body, " ", line)
		}
		oldN += end - pos
		newN += end - pos

		fmt.Fprintf(&buf, "%s -%s +%s %s\n", HunkPrefix, hunkRange(start, oldN), hunkRange(start+shift, newN), HunkPrefix)
		buf.WriteString(body.String())
		for _, e := range group {
			shift += lineCount(e.New) - (e.End - e.Start)
		}
	}
	return buf.String()
}

func writeLine(buf *strings.Builder, prefix, line string) {
	buf.WriteString(prefix)
	buf.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		buf.WriteString("\n")
		buf.WriteString(noNewline)
	}
}

func hunkRange(start, n int) string {
	if n == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	if n == 1 {
		return fmt.Sprintf("%d", start+1)
	}
	return fmt.Sprintf("%d,%d", start+1, n)
}
