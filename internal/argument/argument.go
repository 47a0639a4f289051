// Package argument describes a single type slot of a reflected signature,
// either a parameter or a return value, and how two slots compare.
package argument

import "reflect"

// Match is the outcome of comparing two Arguments. Higher is better.
type Match int

const (
	None Match = iota
	Convertible
	Exact
)

// String returns the lowercase name of the match.
func (m Match) String() string {
	switch m {
	case Exact:
		return "exact"
	case Convertible:
		return "convertible"
	default:
		return "none"
	}
}

// Combine folds two matches into the match of the pair: the weakest wins.
func Combine(a, b Match) Match {
	if a < b {
		return a
	}
	return b
}

// Argument is a value descriptor for one type slot. The zero value is void.
type Argument struct {
	typ reflect.Type
}

// Void is the argument of a function that returns nothing.
func Void() Argument {
	return Argument{}
}

// Of describes the slot for t. A nil t yields Void.
func Of(t reflect.Type) Argument {
	return Argument{typ: t}
}

// For describes the slot for the static type T.
func For[T any]() Argument {
	return Argument{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// OfValue describes the runtime type of v. A nil v is described as void,
// which only matches parameters that accept nil (see IsConvertibleTo).
func OfValue(v any) Argument {
	if v == nil {
		return Void()
	}
	return Argument{typ: reflect.TypeOf(v)}
}

// OfValues describes each value in order.
func OfValues(values ...any) []Argument {
	args := make([]Argument, len(values))
	for i, v := range values {
		args[i] = OfValue(v)
	}
	return args
}

// Type returns the underlying Go type, nil for void.
func (a Argument) Type() reflect.Type {
	return a.typ
}

// IsVoid reports whether the argument carries no type.
func (a Argument) IsVoid() bool {
	return a.typ == nil
}

// String renders the argument for signatures and diagnostics.
func (a Argument) String() string {
	if a.typ == nil {
		return "void"
	}
	return a.typ.String()
}

// IsConvertibleTo reports how a value described by a can be bound to a slot
// described by target.
//
// Identical types are Exact. A pointer converts to its element type, a type
// converts to any interface it implements, and a composite converts to a
// named type with the same underlying type; those are Convertible. Numeric
// kinds never convert implicitly. A void source binds to nilable targets
// (pointers, interfaces, maps, slices, funcs, chans) as Convertible, so a nil
// call argument can still pick an overload.
func (a Argument) IsConvertibleTo(target Argument) Match {
	switch {
	case a.typ == nil && target.typ == nil:
		return Exact
	case target.typ == nil:
		return None
	case a.typ == nil:
		if nilable(target.typ) {
			return Convertible
		}
		return None
	case a.typ == target.typ:
		return Exact
	}

	if a.typ.Kind() == reflect.Pointer && a.typ.Elem() == target.typ {
		return Convertible
	}
	if target.typ.Kind() == reflect.Interface {
		if a.typ.Implements(target.typ) {
			return Convertible
		}
		return None
	}
	if isNumeric(a.typ) || isNumeric(target.typ) {
		return None
	}
	if a.typ.AssignableTo(target.typ) {
		return Convertible
	}
	return None
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func isNumeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}
