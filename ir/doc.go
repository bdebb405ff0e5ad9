// Package ir provides the value tree used for plugin configuration.
//
// # Overview
//
// Hosts hand configuration to the plugin as loosely typed trees: JSON from an
// editor, YAML or JSON from a config file. All of them are represented as
// ir.Node trees, a recursive tagged union whose variant is given by the Type
// field:
//
//   - NullType: null value
//   - BoolType: boolean, under Bool
//   - NumberType: under Int64, Float64, or the Number text fallback
//   - StringType: under String
//   - ArrayType: ordered list under Values
//   - ObjectType: key-value pairs, Fields[i] is the key of Values[i]
//
// # Order
//
// Object field order is significant. It is preserved by FromJSON, by
// Set/Remove and by MarshalJSON, and it is the order in which settings are
// later handed to clang-format. FromMap and FromAny on Go maps sort keys,
// since the order is already lost.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("BasedOnStyle"), Val: ir.FromString("LLVM")},
//	    {Key: ir.FromString("ColumnLimit"), Val: ir.FromInt(100)},
//	})
//	obj.Set("UseTab", ir.FromString("Never"))
//
// # Thread Safety
//
// Nodes are not safe for concurrent mutation. Values that are shared across
// goroutines, such as a resolved configuration, must not be modified after
// they are published.
package ir
