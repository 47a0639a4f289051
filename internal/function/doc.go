// Package function describes a named callable with a fixed signature.
//
// A Function is built either from a native Go func, whose parameter and
// result types are introspected with reflect, or from a bare signature when
// only the shape matters (ambiguity probing, manifests checked before their
// handlers are bound). Once constructed a Function never changes: its traits
// are copied in at construction time.
//
// Two comparisons drive overload resolution:
//
//   - Test compares two Functions and yields Exact when their signatures
//     collide, which is how overload sets reject ambiguous insertions.
//   - TestCall compares the Function against a call shape, a requested
//     return Argument plus the Arguments of the values being passed.
//
// Call is the boxed invocation boundary: it re-checks every value against
// its parameter before unboxing it for reflect.Value.Call.
package function
