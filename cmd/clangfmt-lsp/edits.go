package main

import (
	"strings"

	"go.lsp.dev/protocol"

	"github.com/signadot/clangfmt/libdiff"
)

// textEdits returns the minimal line edits turning from into to.
func textEdits(from, to string) []protocol.TextEdit {
	lines := libdiff.SplitLines(from)
	edits := libdiff.Lines(from, to)
	res := make([]protocol.TextEdit, len(edits))
	for i, e := range edits {
		res[i] = protocol.TextEdit{
			Range: protocol.Range{
				Start: linePosition(lines, e.Start),
				End:   linePosition(lines, e.End),
			},
			NewText: e.New,
		}
	}
	return res
}

// linePosition is the position of the start of line, or the end of the
// document when line is past an unterminated last line.
func linePosition(lines []string, line int) protocol.Position {
	n := len(lines)
	if line < n || n == 0 || strings.HasSuffix(lines[n-1], "\n") {
		return protocol.Position{Line: uint32(line)}
	}
	return protocol.Position{Line: uint32(n - 1), Character: utf16Len(lines[n-1])}
}

func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// offset converts a position, with UTF-16 columns, into a byte offset of
// text. Positions past the end of a line or the text are clamped.
func offset(text string, pos protocol.Position) int {
	off := 0
	for line := uint32(0); line < pos.Line; line++ {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			return len(text)
		}
		off += i + 1
	}
	var col uint32
	for i, r := range text[off:] {
		if r == '\n' || col >= pos.Character {
			return off + i
		}
		col += utf16Len(string(r))
	}
	return len(text)
}
