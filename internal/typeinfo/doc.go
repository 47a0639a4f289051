// Package typeinfo holds the metadata of one reflected type: its overload
// sets, fields, parent ids and traits.
//
// A Type is populated during a registration phase, either directly or by a
// registry loader, and read afterwards. The Builder offers a chained API for
// that phase and ReflectStruct derives the common plumbing (constructors,
// allocator, fields, methods) from a Go struct.
//
// Constructors are overloads named after the type id. Allocators returning a
// pointer are overloads named "new".
package typeinfo
