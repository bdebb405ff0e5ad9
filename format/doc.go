// Package format names the syntaxes accepted for plugin configuration files.
//
// # Usage
//
//	f, err := format.FromPath("clangfmt.yaml") // format.YAMLFormat
//	f, err = format.ParseFormat("json")        // format.JSONFormat
package format
