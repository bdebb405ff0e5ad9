// Package style serializes a resolved configuration into clang-format's
// single argument style override, for example
//
//	--style={ColumnLimit: 80, BasedOnStyle: "InheritParentConfig"}
//
// Values map as follows: null to null, strings to double-quoted scalars,
// numbers to their decimal text, booleans to true/false, arrays to
// [a, b] and objects to {key: value}. Settings keep their configured order.
// When the effective line ending of the document is CRLF the fragment
// "UseCRLF: true" comes first; LF is clang-format's default and is never
// stated.
//
// Strings containing quotes, backslashes or control characters are escaped
// the way YAML double-quoted scalars expect. RawStrings turns escaping off.
//
// The flag is meant to be passed as one argv element; nothing here guards
// it for a shell.
package style
