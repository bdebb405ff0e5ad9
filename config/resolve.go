package config

import (
	"fmt"

	"github.com/signadot/clangfmt/debug"
	"github.com/signadot/clangfmt/ir"
)

// ConfigKey is the key under which hosts nest this plugin's configuration.
const ConfigKey = "clang"

const (
	NewLineKindKey  = "newLineKind"
	ColumnLimitKey  = "ColumnLimit"
	UseTabKey       = "UseTab"
	IndentWidthKey  = "IndentWidth"
	BasedOnStyleKey = "BasedOnStyle"

	// InheritParentConfig makes clang-format start from the nearest
	// .clang-format file it discovers above the formatted file.
	InheritParentConfig = "InheritParentConfig"
	// UseTabAlways is the UseTab value synthesized from UseTabs.
	UseTabAlways = "Always"
)

// Result is the outcome of Resolve. Config is always usable.
type Result struct {
	Config      *Configuration
	Diagnostics []Diagnostic
}

// Resolve turns raw plugin configuration and host defaults into a
// Configuration. It never fails; problems are reported as diagnostics.
//
// Every key of raw other than newLineKind is kept. ColumnLimit, UseTab and
// IndentWidth are derived from global only when raw does not set them, and
// BasedOnStyle defaults to InheritParentConfig.
func Resolve(raw *ir.Node, global GlobalConfig) *Result {
	res := &Result{}
	raw = rawObject(raw, res)

	kind := resolveNewLineKind(raw, global, res)

	settings := ir.FromKeyVals(nil)
	if !ir.Has(raw, ColumnLimitKey) && global.LineWidth != nil {
		settings.Set(ColumnLimitKey, ir.FromInt(int64(*global.LineWidth)))
	}
	if !ir.Has(raw, UseTabKey) && global.UseTabs != nil && *global.UseTabs {
		settings.Set(UseTabKey, ir.FromString(UseTabAlways))
	}
	if !ir.Has(raw, IndentWidthKey) && global.IndentWidth != nil {
		settings.Set(IndentWidthKey, ir.FromInt(int64(*global.IndentWidth)))
	}

	if style := raw.Remove(BasedOnStyleKey); style != nil {
		settings.Set(BasedOnStyleKey, style)
	} else {
		settings.Set(BasedOnStyleKey, ir.FromString(InheritParentConfig))
	}

	// explicit keys overwrite synthesized ones
	for i, f := range raw.Fields {
		settings.Set(f.String, raw.Values[i])
	}

	res.Config = &Configuration{NewLineKind: kind, settings: settings}
	if debug.Resolve() {
		debug.Logf("resolved newLineKind=%s settings %v diagnostics %d\n", kind, settings, len(res.Diagnostics))
	}
	return res
}

// rawObject returns a detached copy of raw so that resolution never
// mutates host owned data.
func rawObject(raw *ir.Node, res *Result) *ir.Node {
	if raw == nil || raw.Type == ir.NullType {
		return ir.FromKeyVals(nil)
	}
	if raw.Type != ir.ObjectType {
		d := Diagnostic{
			Message: fmt.Sprintf("expected an object for the plugin configuration, got %s; ignoring it", raw.Type),
		}
		if raw.Parent != nil {
			d.PropertyName = raw.Path()
		}
		res.Diagnostics = append(res.Diagnostics, d)
		return ir.FromKeyVals(nil)
	}
	cp := raw.Clone()
	cp.Parent = nil
	return cp
}

func resolveNewLineKind(raw *ir.Node, global GlobalConfig, res *Result) NewLineKind {
	kind := LF
	if global.NewLineKind != nil {
		kind = *global.NewLineKind
	}
	v := raw.Remove(NewLineKindKey)
	if v == nil {
		return kind
	}
	if v.Type != ir.StringType {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			PropertyName: NewLineKindKey,
			Message:      fmt.Sprintf("expected a string, got %s", v.Type),
		})
		return kind
	}
	parsed, err := ParseNewLineKind(v.String)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			PropertyName: NewLineKindKey,
			Message:      err.Error(),
		})
		return kind
	}
	return parsed
}
