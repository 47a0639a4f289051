package manifest

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/function"
	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/scope"
	"github.com/specialistvlad/reflectgo/internal/traits"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"github.com/zclconf/go-cty/cty"
)

// Declaration is a translated `type` block.
type Declaration struct {
	ID           string
	Aliases      []string
	Parents      []string
	Traits       traits.Traits
	Fields       []FieldDecl
	Constructors []FuncDecl
	Functions    []FuncDecl
	Range        hcl.Range
}

// FieldDecl is a translated `field` block.
type FieldDecl struct {
	Name   string
	Type   reflect.Type
	Traits traits.Traits
}

// FuncDecl is a translated `constructor` or `function` block. Constructors
// are named after their type.
type FuncDecl struct {
	Name    string
	Handler string
	Params  []argument.Argument
	Return  argument.Argument
	Traits  traits.Traits
	Range   hcl.Range
}

// Signature renders the declared shape, e.g. `float64(geometry.Circle)`.
func (d FuncDecl) Signature() string {
	return function.SignatureOf(d.Return, d.Params)
}

func translateType(ctx context.Context, h *handlers.Handlers, b *typeBlock) (*Declaration, error) {
	if _, err := scope.Split(b.ID); err != nil {
		return nil, fmt.Errorf("%s: invalid type id %q: %w", b.DeclRange, b.ID, err)
	}

	d := &Declaration{
		ID:      b.ID,
		Aliases: b.Aliases,
		Parents: b.Parents,
		Range:   b.DeclRange,
	}
	if err := translateTraits(&d.Traits, b.Traits); err != nil {
		return nil, fmt.Errorf("%s: type '%s': %w", b.DeclRange, b.ID, err)
	}

	for _, f := range b.Fields {
		t, err := typeExprToGoType(ctx, h, f.Type, false)
		if err != nil {
			return nil, fmt.Errorf("%s: field '%s': %w", f.Type.Range(), f.Name, err)
		}
		fd := FieldDecl{Name: f.Name, Type: t}
		if err := translateTraits(&fd.Traits, f.Traits); err != nil {
			return nil, fmt.Errorf("%s: field '%s': %w", f.Type.Range(), f.Name, err)
		}
		d.Fields = append(d.Fields, fd)
	}

	for _, c := range b.Constructors {
		fd, err := translateFunc(ctx, h, b.ID, c.Handler, c.Params, nil, c.Traits, c.DeclRange)
		if err != nil {
			return nil, err
		}
		// Constructors return the type they build.
		fd.Return = argument.Void()
		d.Constructors = append(d.Constructors, fd)
	}

	for _, f := range b.Functions {
		fd, err := translateFunc(ctx, h, f.Name, f.Handler, f.Params, f.Return, f.Traits, f.DeclRange)
		if err != nil {
			return nil, err
		}
		d.Functions = append(d.Functions, fd)
	}
	return d, nil
}

func translateFunc(ctx context.Context, h *handlers.Handlers, name, handler string, params, ret hcl.Expression, tr cty.Value, rng hcl.Range) (FuncDecl, error) {
	fd := FuncDecl{Name: name, Handler: handler, Range: rng}

	paramTypes, err := typeListToGoTypes(ctx, h, params)
	if err != nil {
		return fd, fmt.Errorf("%s: function '%s': %w", rng, name, err)
	}
	for _, t := range paramTypes {
		fd.Params = append(fd.Params, argument.Of(t))
	}

	retType, err := typeExprToGoType(ctx, h, ret, true)
	if err != nil {
		return fd, fmt.Errorf("%s: function '%s' return: %w", rng, name, err)
	}
	fd.Return = argument.Of(retType)

	if err := translateTraits(&fd.Traits, tr); err != nil {
		return fd, fmt.Errorf("%s: function '%s': %w", rng, name, err)
	}
	return fd, nil
}

// translateTraits accepts either an object (`{ doc = "x", const = true }`)
// or a list of flag names (`["const"]`).
func translateTraits(dst *traits.Traits, v cty.Value) error {
	if v == cty.NilVal || v.IsNull() {
		return nil
	}
	if !v.IsWhollyKnown() {
		return fmt.Errorf("traits must be known values")
	}

	ty := v.Type()
	switch {
	case ty.IsObjectType() || ty.IsMapType():
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			dst.Set(k.AsString(), ev)
		}
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.IsNull() || ev.Type() != cty.String {
				return fmt.Errorf("trait flags must be strings")
			}
			dst.Add(ev.AsString())
		}
	default:
		return fmt.Errorf("traits must be an object or a list of names, got %s", ty.FriendlyName())
	}
	return nil
}

// Loader returns the registry loader that builds the declared type, binding
// every constructor and function to its handler. A handler whose Go
// signature differs from the declared one fails the load.
func (d *Declaration) Loader(h *handlers.Handlers) func(t *typeinfo.Type) error {
	return func(t *typeinfo.Type) error {
		t.MergeTraits(&d.Traits)
		for _, p := range d.Parents {
			if err := t.AddParent(p); err != nil {
				return err
			}
		}
		for _, fd := range d.Fields {
			f := typeinfo.NewField(fd.Name, fd.Type)
			f.Traits().Merge(&fd.Traits)
			if err := t.AddField(f); err != nil {
				return err
			}
		}
		for _, fd := range d.Constructors {
			if err := d.bind(t, h, fd, true); err != nil {
				return err
			}
		}
		for _, fd := range d.Functions {
			if err := d.bind(t, h, fd, false); err != nil {
				return err
			}
		}
		return nil
	}
}

func (d *Declaration) bind(t *typeinfo.Type, h *handlers.Handlers, fd FuncDecl, constructor bool) error {
	impl, ok := h.Handler(fd.Handler)
	if !ok {
		return reflecterr.New(reflecterr.ErrInvalidFunction,
			"%s: type '%s' function '%s': handler '%s' is not registered", fd.Range, d.ID, fd.Name, fd.Handler)
	}
	fn, err := function.New(fd.Name, impl, function.WithTraits(&fd.Traits))
	if err != nil {
		return err
	}

	declared := function.NewSignature(fd.Name, fd.Return, fd.Params)
	if constructor {
		// The declared shape of a constructor has no return; its handler
		// returns whatever it builds.
		declared = function.NewSignature(fd.Name, fn.Return(), fd.Params)
	}
	if declared.Test(fn) != argument.Exact {
		return reflecterr.New(reflecterr.ErrInvalidFunction,
			"%s: type '%s' function '%s' is declared as %s but handler '%s' is %s",
			fd.Range, d.ID, fd.Name, function.Signature(declared), fd.Handler, function.Signature(fn))
	}
	return t.Add(fn)
}
