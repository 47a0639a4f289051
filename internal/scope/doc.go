/*
Package scope indexes declared type identifiers by namespace.

Identifiers are dot-separated paths, e.g. `geo.shapes.Point`: every segment
but the last names a nested scope and the last one names the type. Dots
inside brackets belong to the segment, so `map[string]geo.Point` is a single
type name at the root.

The tree only records that an id was declared. It knows nothing about
whether the id has been loaded into a concrete type.
*/
package scope
