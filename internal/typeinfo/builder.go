package typeinfo

import (
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/function"
	"github.com/zclconf/go-cty/cty"
)

// Builder chains registrations on a Type and keeps the first failure.
// Once a step fails the remaining steps are skipped.
type Builder struct {
	t   *Type
	err error
}

// Build starts a chain on t.
func Build(t *Type) *Builder {
	return &Builder{t: t}
}

// Type returns the type being built.
func (b *Builder) Type() *Type {
	return b.t
}

// Err returns the first failure of the chain.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) do(step func() error) *Builder {
	if b.err == nil {
		b.err = step()
	}
	return b
}

// Cons adds a constructor overload.
func (b *Builder) Cons(fn any) *Builder {
	return b.do(func() error { return b.t.AddFunction(b.t.ID(), fn) })
}

// Alloc adds an allocator overload.
func (b *Builder) Alloc(fn any) *Builder {
	return b.do(func() error { return b.t.AddFunction(AllocatorName, fn) })
}

// Fn adds a function overload.
func (b *Builder) Fn(name string, fn any, opts ...function.Option) *Builder {
	return b.do(func() error { return b.t.AddFunction(name, fn, opts...) })
}

// Func adds an already built function.
func (b *Builder) Func(fn *function.Function) *Builder {
	return b.do(func() error { return b.t.Add(fn) })
}

// Field declares a field without Go backing.
func (b *Builder) Field(name string, typ reflect.Type) *Builder {
	return b.do(func() error { return b.t.AddField(NewField(name, typ)) })
}

// Parent appends a parent id.
func (b *Builder) Parent(id string) *Builder {
	return b.do(func() error { return b.t.AddParent(id) })
}

// Trait marks a type trait.
func (b *Builder) Trait(name string) *Builder {
	return b.do(func() error {
		b.t.AddTrait(name)
		return nil
	})
}

// TraitValue sets a type trait with a value.
func (b *Builder) TraitValue(name string, v cty.Value) *Builder {
	return b.do(func() error {
		b.t.SetTrait(name, v)
		return nil
	})
}

// FnTrait marks a trait on the overload set called fn.
func (b *Builder) FnTrait(fn, trait string) *Builder {
	return b.FnTraitValue(fn, trait, cty.True)
}

// FnTraitValue sets a trait with a value on the overload set called fn.
func (b *Builder) FnTraitValue(fn, trait string, v cty.Value) *Builder {
	return b.do(func() error {
		b.t.SetFunctionTrait(fn, trait, v)
		return nil
	})
}
