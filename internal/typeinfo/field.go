package typeinfo

import (
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/traits"
)

// Field describes a named slot of a type. Fields derived from a Go struct
// also know where they live and can read and write values.
type Field struct {
	name   string
	typ    argument.Argument
	traits traits.Traits
	owner  reflect.Type
	index  []int
}

// NewField declares a field with no Go backing.
func NewField(name string, typ reflect.Type) *Field {
	return &Field{name: name, typ: argument.Of(typ)}
}

// StructField declares a field backed by a struct field of owner.
func StructField(owner reflect.Type, sf reflect.StructField) *Field {
	return &Field{
		name:  sf.Name,
		typ:   argument.Of(sf.Type),
		owner: owner,
		index: sf.Index,
	}
}

func (f *Field) Name() string { return f.name }

func (f *Field) Type() argument.Argument { return f.typ }

func (f *Field) Traits() *traits.Traits { return &f.traits }

// Accessible reports whether Get and Set can reach a Go value.
func (f *Field) Accessible() bool { return f.owner != nil }

// Get reads the field from obj, a struct value or a pointer to one.
func (f *Field) Get(obj any) (any, error) {
	v, err := f.locate(obj, false)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// Set writes value into the field of obj, which must be a pointer.
func (f *Field) Set(obj any, value any) error {
	v, err := f.locate(obj, true)
	if err != nil {
		return err
	}

	if argument.OfValue(value).IsConvertibleTo(f.typ) == argument.None {
		return reflecterr.New(reflecterr.ErrInvalidCall,
			"field <%s>: %s is not convertible to %s", f.name, argument.OfValue(value), f.typ)
	}
	if value == nil {
		v.Set(reflect.Zero(f.typ.Type()))
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == f.typ.Type() {
		rv = rv.Elem()
	}
	v.Set(rv.Convert(f.typ.Type()))
	return nil
}

func (f *Field) locate(obj any, settable bool) (reflect.Value, error) {
	if f.owner == nil {
		return reflect.Value{}, reflecterr.New(reflecterr.ErrInvalidCall, "field <%s> has no Go backing", f.name)
	}

	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer && !v.IsNil() {
		v = v.Elem()
	} else if settable {
		return reflect.Value{}, reflecterr.New(reflecterr.ErrInvalidCall,
			"field <%s>: setting requires a non-nil *%s, got %T", f.name, f.owner, obj)
	}
	if !v.IsValid() || v.Type() != f.owner {
		return reflect.Value{}, reflecterr.New(reflecterr.ErrInvalidCall,
			"field <%s> belongs to %s, got %T", f.name, f.owner, obj)
	}
	return v.FieldByIndex(f.index), nil
}
