package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/signadot/clangfmt/format"
	"github.com/signadot/clangfmt/ir"
)

var ErrConfigFile = errors.New("config file")

// Host level keys that form the GlobalConfig.
const (
	GlobalLineWidthKey   = "lineWidth"
	GlobalIndentWidthKey = "indentWidth"
	GlobalUseTabsKey     = "useTabs"
	GlobalNewLineKindKey = "newLineKind"
)

// File is a host configuration document: global defaults at top level
// and the plugin's raw configuration under ConfigKey.
type File struct {
	Global GlobalConfig
	// Plugin is the raw plugin configuration, nil when absent.
	Plugin      *ir.Node
	Diagnostics []Diagnostic
}

// Resolve resolves the plugin configuration of f. Diagnostics from
// reading the file come first.
func (f *File) Resolve(overrides GlobalConfig) *Result {
	res := Resolve(f.Plugin, overrides.Merge(f.Global))
	res.Diagnostics = append(append([]Diagnostic{}, f.Diagnostics...), res.Diagnostics...)
	return res
}

// Merge returns a File whose globals and plugin configuration come from f,
// falling back to weaker where f leaves them unset. Either may be nil.
func (f *File) Merge(weaker *File) *File {
	switch {
	case f == nil && weaker == nil:
		return &File{}
	case f == nil:
		return weaker
	case weaker == nil:
		return f
	}
	res := &File{
		Global: f.Global.Merge(weaker.Global),
		Plugin: f.Plugin,
	}
	if res.Plugin == nil {
		res.Plugin = weaker.Plugin
	}
	res.Diagnostics = append(append([]Diagnostic{}, weaker.Diagnostics...), f.Diagnostics...)
	return res
}

func LoadFile(path string) (*File, error) {
	fmat, err := format.FromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigFile, path, err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigFile, err)
	}
	f, err := Load(d, fmat)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrConfigFile, path, err)
	}
	return f, nil
}

func Load(d []byte, fmat format.Format) (*File, error) {
	var (
		root *ir.Node
		err  error
	)
	switch fmat {
	case format.JSONFormat:
		root, err = ir.FromJSON(d)
	case format.YAMLFormat:
		root, err = parseYAML(d)
	default:
		err = fmt.Errorf("%w: %s", format.ErrBadFormat, fmat)
	}
	if err != nil {
		return nil, err
	}
	if root.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: expected an object at top level, got %s", ir.ErrParse, root.Type)
	}
	return FromNode(root), nil
}

// FromNode splits a host configuration object into its global defaults and
// the plugin configuration. Malformed global values are reported and
// skipped.
func FromNode(root *ir.Node) *File {
	f := &File{Plugin: ir.Get(root, ConfigKey)}
	for i, field := range root.Fields {
		v := root.Values[i]
		switch field.String {
		case GlobalLineWidthKey:
			if n, ok := f.uintValue(field.String, v, math.MaxUint32); ok {
				w := uint32(n)
				f.Global.LineWidth = &w
			}
		case GlobalIndentWidthKey:
			if n, ok := f.uintValue(field.String, v, math.MaxUint8); ok {
				w := uint8(n)
				f.Global.IndentWidth = &w
			}
		case GlobalUseTabsKey:
			if v.Type != ir.BoolType {
				f.addDiag(field.String, "expected a boolean, got %s", v.Type)
				continue
			}
			b := v.Bool
			f.Global.UseTabs = &b
		case GlobalNewLineKindKey:
			if v.Type != ir.StringType {
				f.addDiag(field.String, "expected a string, got %s", v.Type)
				continue
			}
			k, err := ParseNewLineKind(v.String)
			if err != nil {
				f.addDiag(field.String, "%s", err)
				continue
			}
			f.Global.NewLineKind = &k
		}
	}
	return f
}

func (f *File) uintValue(key string, v *ir.Node, limit int64) (int64, bool) {
	if v.Type != ir.NumberType || v.Int64 == nil {
		f.addDiag(key, "expected an integer, got %s", v.Type)
		return 0, false
	}
	n := *v.Int64
	if n < 0 || n > limit {
		f.addDiag(key, "value %d out of range [0, %d]", n, limit)
		return 0, false
	}
	return n, true
}

func (f *File) addDiag(key, msg string, args ...any) {
	f.Diagnostics = append(f.Diagnostics, Diagnostic{
		PropertyName: key,
		Message:      fmt.Sprintf(msg, args...),
	})
}

func parseYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ir.ErrParse, err)
	}
	return fromYAML(v)
}

func fromYAML(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := ir.FromKeyVals(nil)
		for _, item := range x {
			n, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			res.Set(fmt.Sprint(item.Key), n)
		}
		return res, nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i := range x {
			n, err := fromYAML(x[i])
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	}
	return ir.FromAny(v)
}
