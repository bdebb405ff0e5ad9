package main

import (
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/clangfmt/libdiff"
)

type diffColors struct {
	Header func(string, ...any) string
	Hunk   func(string, ...any) string
	Delete func(string, ...any) string
	Insert func(string, ...any) string
}

func newDiffColors() *diffColors {
	sprintf := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &diffColors{
		Header: sprintf(color.Bold),
		Hunk:   sprintf(color.FgCyan),
		Delete: sprintf(color.FgRed),
		Insert: sprintf(color.FgGreen),
	}
}

// writeDiff writes a unified diff, colored by line kind when colors is not
// nil.
func writeDiff(w io.Writer, diff string, colors *diffColors) error {
	if colors == nil {
		_, err := io.WriteString(w, diff)
		return err
	}
	var buf strings.Builder
	for _, line := range libdiff.SplitLines(diff) {
		text := strings.TrimSuffix(line, "\n")
		var f func(string, ...any) string
		switch {
		case strings.HasPrefix(line, libdiff.FromHeaderPrefix), strings.HasPrefix(line, libdiff.ToHeaderPrefix):
			f = colors.Header
		case strings.HasPrefix(line, libdiff.HunkPrefix):
			f = colors.Hunk
		case strings.HasPrefix(line, libdiff.DeletePrefix):
			f = colors.Delete
		case strings.HasPrefix(line, libdiff.InsertPrefix):
			f = colors.Insert
		}
		if f == nil {
			buf.WriteString(line)
			continue
		}
		buf.WriteString(f("%s", text))
		buf.WriteString("\n")
	}
	_, err := io.WriteString(w, buf.String())
	return err
}
