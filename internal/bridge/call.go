package bridge

import (
	"errors"
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/function"
	"github.com/specialistvlad/reflectgo/internal/overloads"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/zclconf/go-cty/cty"
)

// Whole numbers are retried as these types, in order, when no overload takes
// them as int.
var widenings = []reflect.Type{float64Type, int64Type}

// Resolve picks the overload of ov that accepts values.
func Resolve(ov *overloads.Overloads, values []cty.Value) (*function.Function, error) {
	shape, err := Arguments(values)
	if err != nil {
		return nil, err
	}

	fn, err := ov.Get(argument.Void(), shape)
	if err == nil || !errors.Is(err, reflecterr.ErrNoMatchingOverload) {
		return fn, err
	}
	for _, to := range widenings {
		widened, changed := widen(shape, to)
		if !changed {
			break
		}
		if fn, werr := ov.Get(argument.Void(), widened); werr == nil {
			return fn, nil
		}
	}
	return nil, err
}

// Call resolves an overload for values, decodes them into its parameter
// types, invokes it and encodes the result. A void function yields null.
func Call(ov *overloads.Overloads, values ...cty.Value) (cty.Value, error) {
	fn, err := Resolve(ov, values)
	if err != nil {
		return cty.NilVal, err
	}

	params := fn.Arguments()
	args := make([]any, len(values))
	for i, v := range values {
		args[i], err = FromValue(v, params[i].Type())
		if err != nil {
			return cty.NilVal, reflecterr.New(reflecterr.ErrInvalidCall, "<%s> argument %d: %v", fn.Name(), i, err)
		}
	}

	out, err := fn.Call(args...)
	if err != nil {
		return cty.NilVal, err
	}
	if fn.Return().IsVoid() {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	return ToValue(out)
}
