package function

import (
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
)

// Call invokes the backing Go func with args. Every value must bind to its
// parameter the way TestCall would accept it; pointers are dereferenced when
// the parameter wants the element. A func with a trailing error result
// reports it as Call's error. The result is the native one; use CallFor to
// shape it for the return a call was resolved with.
func (f *Function) Call(args ...any) (any, error) {
	if !f.fn.IsValid() {
		return nil, reflecterr.New(reflecterr.ErrInvalidCall, "<%s, %s> has no implementation", f.name, Signature(f))
	}
	if len(args) != len(f.args) {
		return nil, reflecterr.New(reflecterr.ErrInvalidCall,
			"<%s, %s> takes %d arguments, got %d", f.name, Signature(f), len(f.args), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		v, err := f.bind(i, arg)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}

	var out []reflect.Value
	if f.fn.Type().IsVariadic() {
		out = f.fn.CallSlice(in)
	} else {
		out = f.fn.Call(in)
	}
	return f.unpack(out)
}

func (f *Function) bind(i int, arg any) (reflect.Value, error) {
	param := f.args[i]
	from := argument.OfValue(arg)

	switch from.IsConvertibleTo(param) {
	case argument.Exact:
		return reflect.ValueOf(arg), nil
	case argument.Convertible:
		if arg == nil {
			return reflect.Zero(param.Type()), nil
		}
		v := reflect.ValueOf(arg)
		if v.Kind() == reflect.Pointer && v.Type().Elem() == param.Type() {
			if v.IsNil() {
				return reflect.Value{}, reflecterr.New(reflecterr.ErrInvalidCall,
					"<%s> argument %d: nil %s can't be dereferenced", f.name, i, from)
			}
			return v.Elem(), nil
		}
		return v.Convert(param.Type()), nil
	}
	return reflect.Value{}, reflecterr.New(reflecterr.ErrInvalidCall,
		"<%s> argument %d: %s is not convertible to %s", f.name, i, from, param)
}

func (f *Function) unpack(out []reflect.Value) (any, error) {
	var err error
	if f.returnErr {
		last := out[len(out)-1]
		if !last.IsNil() {
			err = last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil, err
	}
	return out[0].Interface(), err
}

// CallFor calls f for a caller that resolved it expecting ret. TestCall
// accepts a *T result for a T request, so such a result is dereferenced.
func (f *Function) CallFor(ret argument.Argument, args ...any) (any, error) {
	out, err := f.Call(args...)
	if err != nil || out == nil || ret.IsVoid() {
		return out, err
	}

	v := reflect.ValueOf(out)
	if v.Kind() == reflect.Pointer && v.Type().Elem() == ret.Type() {
		if v.IsNil() {
			return nil, reflecterr.New(reflecterr.ErrInvalidCall,
				"<%s> returned a nil %s where %s was expected", f.name, v.Type(), ret)
		}
		return v.Elem().Interface(), nil
	}
	return out, nil
}
