package config

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/signadot/clangfmt/ir"
)

// Configuration is a resolved plugin configuration. It is immutable once
// built and may be shared by concurrent format requests.
type Configuration struct {
	NewLineKind NewLineKind
	settings    *ir.Node
}

// New builds a Configuration from an ordered settings object, which is
// copied. A nil settings yields an empty configuration.
func New(kind NewLineKind, settings *ir.Node) *Configuration {
	if settings == nil {
		settings = ir.FromKeyVals(nil)
	} else {
		settings = settings.Clone()
		settings.Parent = nil
	}
	return &Configuration{NewLineKind: kind, settings: settings}
}

// All yields the clang-format settings in serialization order. Yielded
// values must not be modified.
func (c *Configuration) All() iter.Seq2[string, *ir.Node] {
	return func(yield func(string, *ir.Node) bool) {
		for i, f := range c.settings.Fields {
			if !yield(f.String, c.settings.Values[i]) {
				return
			}
		}
	}
}

// Get returns the setting for key, or nil.
func (c *Configuration) Get(key string) *ir.Node {
	return ir.Get(c.settings, key)
}

func (c *Configuration) Keys() []string {
	return c.settings.Keys()
}

func (c *Configuration) Len() int {
	return len(c.settings.Fields)
}

// Settings returns a copy of the settings object.
func (c *Configuration) Settings() *ir.Node {
	return c.settings.Clone()
}

// MarshalJSON encodes the configuration as one flat record: newLineKind
// followed by the settings in order.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteString(`{"` + NewLineKindKey + `":`)
	kind, err := json.Marshal(c.NewLineKind)
	if err != nil {
		return nil, err
	}
	buf.Write(kind)
	d, err := c.settings.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if len(c.settings.Fields) > 0 {
		buf.WriteByte(',')
		buf.Write(d[1 : len(d)-1])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
