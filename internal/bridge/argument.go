package bridge

import (
	"math/big"
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/zclconf/go-cty/cty"
)

var (
	stringType  = reflect.TypeOf("")
	boolType    = reflect.TypeOf(false)
	intType     = reflect.TypeOf(0)
	int64Type   = reflect.TypeOf(int64(0))
	float64Type = reflect.TypeOf(float64(0))
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
)

// ArgumentOf describes the Go type v decodes to. Whole numbers are ints,
// other numbers are float64, capsules are pointers to their Go type and
// null is void.
func ArgumentOf(v cty.Value) (argument.Argument, error) {
	if v.IsNull() {
		return argument.Void(), nil
	}
	t, err := goType(v)
	if err != nil {
		return argument.Void(), err
	}
	return argument.Of(t), nil
}

// Arguments describes every value of a call.
func Arguments(values []cty.Value) ([]argument.Argument, error) {
	out := make([]argument.Argument, len(values))
	for i, v := range values {
		a, err := ArgumentOf(v)
		if err != nil {
			return nil, reflecterr.New(reflecterr.ErrInvalidCall, "argument %d: %v", i, err)
		}
		out[i] = a
	}
	return out, nil
}

func goType(v cty.Value) (reflect.Type, error) {
	if !v.IsKnown() {
		return nil, reflecterr.New(reflecterr.ErrInvalidCall, "value of type %s is not known", v.Type().FriendlyName())
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return stringType, nil
	case ty == cty.Bool:
		return boolType, nil
	case ty == cty.Number:
		if isWhole(v) {
			return intType, nil
		}
		return float64Type, nil
	case ty.IsCapsuleType():
		return reflect.PointerTo(ty.EncapsulatedType()), nil
	case ty.IsListType(), ty.IsSetType():
		elem, err := elementType(v, func() (reflect.Type, error) { return staticGoType(ty.ElementType()) })
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case ty.IsTupleType():
		elem, err := elementType(v, func() (reflect.Type, error) { return anyType, nil })
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case ty.IsMapType():
		elem, err := elementType(v, func() (reflect.Type, error) { return staticGoType(ty.ElementType()) })
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(stringType, elem), nil
	case ty.IsObjectType():
		elem, err := elementType(v, func() (reflect.Type, error) { return anyType, nil })
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(stringType, elem), nil
	}
	return nil, reflecterr.New(reflecterr.ErrInvalidCall, "no Go type for %s", ty.FriendlyName())
}

// elementType unifies the element types of a collection. Ints mixed with
// floats become float64, anything else mixed becomes any.
func elementType(v cty.Value, empty func() (reflect.Type, error)) (reflect.Type, error) {
	if v.LengthInt() == 0 {
		return empty()
	}

	var unified reflect.Type
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() {
			return anyType, nil
		}
		t, err := goType(ev)
		if err != nil {
			return nil, err
		}
		switch {
		case unified == nil, unified == t:
			unified = t
		case isNumber(unified) && isNumber(t):
			unified = float64Type
		default:
			return anyType, nil
		}
	}
	return unified, nil
}

// staticGoType maps a cty type with no value to inspect.
func staticGoType(ty cty.Type) (reflect.Type, error) {
	switch {
	case ty == cty.String:
		return stringType, nil
	case ty == cty.Bool:
		return boolType, nil
	case ty == cty.Number:
		return float64Type, nil
	case ty == cty.DynamicPseudoType:
		return anyType, nil
	case ty.IsCapsuleType():
		return reflect.PointerTo(ty.EncapsulatedType()), nil
	case ty.IsListType(), ty.IsSetType():
		elem, err := staticGoType(ty.ElementType())
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case ty.IsMapType():
		elem, err := staticGoType(ty.ElementType())
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(stringType, elem), nil
	case ty.IsObjectType(), ty.IsTupleType():
		return anyType, nil
	}
	return nil, reflecterr.New(reflecterr.ErrInvalidCall, "no Go type for %s", ty.FriendlyName())
}

func isWhole(v cty.Value) bool {
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return false
	}
	_, acc := bf.Int64()
	return acc == big.Exact
}

func isNumber(t reflect.Type) bool {
	return t == intType || t == float64Type
}

// widen rewrites every int in the shape, including slice and map elements,
// to the given numeric type. It reports false when nothing changed.
func widen(args []argument.Argument, to reflect.Type) ([]argument.Argument, bool) {
	out := make([]argument.Argument, len(args))
	changed := false
	for i, a := range args {
		t, ok := widenType(a.Type(), to)
		if ok {
			changed = true
			out[i] = argument.Of(t)
			continue
		}
		out[i] = a
	}
	return out, changed
}

func widenType(t reflect.Type, to reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	switch {
	case t == intType:
		return to, true
	case t.Kind() == reflect.Slice:
		if elem, ok := widenType(t.Elem(), to); ok {
			return reflect.SliceOf(elem), true
		}
	case t.Kind() == reflect.Map && t.Key() == stringType:
		if elem, ok := widenType(t.Elem(), to); ok {
			return reflect.MapOf(stringType, elem), true
		}
	}
	return t, false
}
