package typeinfo

import (
	"fmt"
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/function"
)

// ReflectStruct derives the plumbing of the Go struct T: a default and a copy
// constructor, an allocator, an assignment (dst, src) returning dst, every
// exported field and every exported method.
// Methods take their receiver as first parameter; value-receiver methods get
// a T receiver and pointer-only methods a *T receiver.
func ReflectStruct[T any](b *Builder) *Builder {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if typ.Kind() != reflect.Struct {
		return b.do(func() error { return fmt.Errorf("reflect %s: %s is not a struct", b.t.ID(), typ) })
	}

	b.Cons(func() T {
		var zero T
		return zero
	})
	b.Cons(func(other T) T { return other })
	b.Alloc(func() *T { return new(T) })
	b.Fn(AssignName, func(dst *T, src T) *T {
		*dst = src
		return dst
	}, function.WithTrait("mutating"))

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}
		b.do(func() error { return b.t.AddField(StructField(typ, sf)) })
	}

	valueMethods := make(map[string]struct{})
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		valueMethods[m.Name] = struct{}{}
		b.do(func() error { return b.t.AddFunction(m.Name, m.Func.Interface(), methodTrait(false)) })
	}

	ptr := reflect.PointerTo(typ)
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		if _, ok := valueMethods[m.Name]; ok {
			continue
		}
		b.do(func() error { return b.t.AddFunction(m.Name, m.Func.Interface(), methodTrait(true)) })
	}
	return b
}

func methodTrait(pointer bool) function.Option {
	if pointer {
		return function.WithTrait("mutating")
	}
	return function.WithTrait("const")
}
