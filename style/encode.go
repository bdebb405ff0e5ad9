package style

import (
	"strconv"
	"strings"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/debug"
	"github.com/signadot/clangfmt/ir"
)

const (
	FlagPrefix = "--style="
	// UseCRLF is the fragment prepended when output must use CRLF.
	UseCRLF = "UseCRLF: true"
)

// Flag returns the single --style={...} argument describing cfg for a
// document with the given text. The text only matters for the new line
// kinds that depend on it.
func Flag(cfg *config.Configuration, text string, opts ...Option) string {
	res := FlagPrefix + "{" + strings.Join(Fragments(cfg, text, opts...), ", ") + "}"
	if debug.Style() {
		debug.Logf("style flag %s\n", res)
	}
	return res
}

// Fragments returns the "key: value" parts of the style flag in order.
func Fragments(cfg *config.Configuration, text string, opts ...Option) []string {
	es := newEncState(opts)
	res := make([]string, 0, cfg.Len()+1)
	if cfg.NewLineKind.Resolve(text) == "\r\n" {
		res = append(res, UseCRLF)
	}
	buf := &strings.Builder{}
	for key, v := range cfg.All() {
		buf.Reset()
		buf.WriteString(key)
		buf.WriteString(": ")
		es.encode(buf, v)
		res = append(res, buf.String())
	}
	return res
}

// Encode serializes a single value in clang-format's flow style syntax.
func Encode(node *ir.Node, opts ...Option) string {
	buf := &strings.Builder{}
	newEncState(opts).encode(buf, node)
	return buf.String()
}

func (es *encState) encode(buf *strings.Builder, node *ir.Node) {
	switch node.Type {
	case ir.NullType:
		buf.WriteString("null")
	case ir.StringType:
		if es.rawStrings {
			buf.WriteByte('"')
			buf.WriteString(node.String)
			buf.WriteByte('"')
			return
		}
		buf.WriteString(quote(node.String))
	case ir.NumberType:
		buf.WriteString(node.NumberText())
	case ir.BoolType:
		buf.WriteString(strconv.FormatBool(node.Bool))
	case ir.ArrayType:
		buf.WriteByte('[')
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteString(", ")
			}
			es.encode(buf, v)
		}
		buf.WriteByte(']')
	case ir.ObjectType:
		buf.WriteByte('{')
		for i, f := range node.Fields {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(f.String)
			buf.WriteString(": ")
			es.encode(buf, node.Values[i])
		}
		buf.WriteByte('}')
	}
}

// quote writes s as a YAML double-quoted scalar. Go's escapes for quotes,
// backslashes and control characters are all valid YAML escapes.
func quote(s string) string {
	if !needsEscape(s) {
		return `"` + s + `"`
	}
	return strconv.Quote(s)
}

func needsEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' || c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}
