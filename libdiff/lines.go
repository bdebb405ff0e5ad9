package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Edit replaces lines [Start, End) of the old text, whose content is Old,
// with New. Start == End is a pure insertion before line Start.
type Edit struct {
	Start int
	End   int
	Old   string
	New   string
}

// SplitLines splits s into lines, each keeping its "\n". The last line has
// no "\n" if s does not end with one.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func lineCount(s string) int {
	n := strings.Count(s, "\n")
	if s != "" && s[len(s)-1] != '\n' {
		n++
	}
	return n
}

// Lines returns the line edits turning from into to, in increasing order of
// Start and never overlapping. Adjacent deletions and insertions are merged
// into one edit. A last line without a newline differs from the same line
// with one.
func Lines(from, to string) []Edit {
	if from == to {
		return nil
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var (
		res []Edit
		cur *Edit
	)
	flush := func() {
		if cur != nil {
			res = append(res, *cur)
			cur = nil
		}
	}
	li := 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			flush()
			li += lineCount(diff.Text)
		case diffpatch.DiffDelete:
			if cur == nil {
				cur = &Edit{Start: li, End: li}
			}
			n := lineCount(diff.Text)
			cur.Old += diff.Text
			cur.End += n
			li += n
		case diffpatch.DiffInsert:
			if cur == nil {
				cur = &Edit{Start: li, End: li}
			}
			cur.New += diff.Text
		}
	}
	flush()
	return res
}
