// Package config resolves host supplied configuration for clang-format.
//
// Hosts provide two inputs: a raw, loosely typed configuration object for
// this plugin (an *ir.Node, usually found under the "clang" key) and a
// GlobalConfig of defaults shared by all plugins. Resolve combines them into
// an immutable Configuration plus a list of Diagnostics:
//
//   - newLineKind is consumed into Configuration.NewLineKind.
//   - ColumnLimit, UseTab and IndentWidth are derived from lineWidth,
//     useTabs and indentWidth only when the raw configuration lacks them.
//   - BasedOnStyle is always present, InheritParentConfig by default.
//   - Every other key is passed through to clang-format unchanged.
//
// LoadFile and Load read host configuration documents in JSON or YAML.
package config
