package bridge

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Capsule types compare by identity, so there is exactly one per Go type.
var capsules sync.Map // reflect.Type -> cty.Type

// CapsuleType returns the capsule type that carries values of t.
func CapsuleType(t reflect.Type) cty.Type {
	if ty, ok := capsules.Load(t); ok {
		return ty.(cty.Type)
	}
	ty, _ := capsules.LoadOrStore(t, cty.Capsule(t.String(), t))
	return ty.(cty.Type)
}

// FromValue decodes v into a Go value of type target.
func FromValue(v cty.Value, target reflect.Type) (any, error) {
	if v.IsNull() {
		return reflect.Zero(target).Interface(), nil
	}
	if v.Type().IsCapsuleType() {
		// The pointer is kept; function binding dereferences it when the
		// parameter wants the element.
		return v.EncapsulatedValue(), nil
	}
	if target.Kind() == reflect.Interface {
		return native(v)
	}

	ptr := reflect.New(target)
	implied, err := gocty.ImpliedType(ptr.Elem().Interface())
	if err != nil {
		if err := gocty.FromCtyValue(v, ptr.Interface()); err != nil {
			return nil, reflecterr.New(reflecterr.ErrInvalidCall, "can't decode %s into %s: %v", v.Type().FriendlyName(), target, err)
		}
		return ptr.Elem().Interface(), nil
	}

	converted, err := convert.Convert(v, implied)
	if err != nil {
		return nil, reflecterr.New(reflecterr.ErrInvalidCall,
			"cannot convert %s to required type %s: %v", v.Type().FriendlyName(), implied.FriendlyName(), err)
	}
	if err := gocty.FromCtyValue(converted, ptr.Interface()); err != nil {
		return nil, reflecterr.New(reflecterr.ErrInvalidCall, "can't decode %s into %s: %v", v.Type().FriendlyName(), target, err)
	}
	return ptr.Elem().Interface(), nil
}

// native decodes v into the Go value ArgumentOf describes for it.
func native(v cty.Value) (any, error) {
	t, err := goType(v)
	if err != nil {
		return nil, err
	}
	if t == anyType || (t.Kind() == reflect.Slice && t.Elem() == anyType) || (t.Kind() == reflect.Map && t.Elem() == anyType) {
		return nativeDynamic(v)
	}
	return FromValue(v, t)
}

func nativeDynamic(v cty.Value) (any, error) {
	ty := v.Type()
	switch {
	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			gv, err := FromValue(ev, anyType)
			if err != nil {
				return nil, err
			}
			out = append(out, gv)
		}
		return out, nil
	case ty.IsMapType(), ty.IsObjectType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			gv, err := FromValue(ev, anyType)
			if err != nil {
				return nil, err
			}
			out[k.AsString()] = gv
		}
		return out, nil
	}
	return nil, reflecterr.New(reflecterr.ErrInvalidCall, "no Go value for %s", ty.FriendlyName())
}

// ToValue encodes a Go value. Values cty has no implied type for, structs
// without cty tags among them, become capsules. A pointer to such a value is
// wrapped as is, so the caller keeps its identity.
func ToValue(out any) (cty.Value, error) {
	if out == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	rv := reflect.ValueOf(out)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return cty.NullVal(CapsuleType(rv.Type().Elem())), nil
		}
		if _, err := gocty.ImpliedType(out); err != nil {
			return cty.CapsuleVal(CapsuleType(rv.Type().Elem()), out), nil
		}
	}

	ty, err := gocty.ImpliedType(out)
	if err != nil {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return cty.CapsuleVal(CapsuleType(rv.Type()), ptr.Interface()), nil
	}
	v, err := gocty.ToCtyValue(out, ty)
	if err != nil {
		return cty.NilVal, reflecterr.New(reflecterr.ErrInvalidCall, "can't encode %T: %v", out, err)
	}
	return v, nil
}

// Display renders v for people. Capsules show the Go value they carry and
// everything else is JSON.
func Display(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "(unknown)"
	case v.Type().IsCapsuleType():
		return fmt.Sprintf("%+v", reflect.ValueOf(v.EncapsulatedValue()).Elem().Interface())
	}

	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(raw)
}
