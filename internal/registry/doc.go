// Package registry maps type ids to reflected type metadata.
//
// A Registry is an explicit object, created once by the application and
// handed to whatever needs type lookups. It holds three maps: concrete types,
// aliases (one hop, alias to canonical id) and loaders, deferred builders
// that populate a type the first time it is looked up. It also owns the
// scope tree indexing every declared id, loaded or not.
//
// An id has either a concrete type or a pending loader, never both. Loading
// consumes the loader and registers an empty placeholder type before the
// loader body runs, so loaders that look up their own id, or ids that
// reference each other, observe the placeholder instead of recursing.
//
// The registry lock is held for each complete lookup or mutation sequence
// and is released only while a loader body runs: loaders are arbitrary code
// that is expected to call back into the registry.
package registry
