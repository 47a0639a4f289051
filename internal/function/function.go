package function

import (
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/traits"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Function is an immutable named signature, optionally backed by a Go func.
type Function struct {
	name      string
	ret       argument.Argument
	args      []argument.Argument
	traits    traits.Traits
	fn        reflect.Value
	returnErr bool
}

// Option customizes a Function at construction time.
type Option func(*Function)

// WithTraits copies tr into the Function.
func WithTraits(tr *traits.Traits) Option {
	return func(f *Function) {
		if tr != nil {
			f.traits.Merge(tr)
		}
	}
}

// WithTrait marks a single trait on the Function.
func WithTrait(name string) Option {
	return func(f *Function) {
		f.traits.Add(name)
	}
}

// New introspects fn, which must be a non-nil Go func returning nothing, a
// value, an error, or a value and an error.
func New(name string, fn any, opts ...Option) (*Function, error) {
	if name == "" {
		return nil, reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't reflect a function without a name")
	}
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, reflecterr.New(reflecterr.ErrInvalidFunction, "<%s> is not a function: %T", name, fn)
	}
	t := v.Type()

	f := &Function{name: name, fn: v}
	for i := 0; i < t.NumIn(); i++ {
		f.args = append(f.args, argument.Of(t.In(i)))
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) == errorType {
			f.returnErr = true
		} else {
			f.ret = argument.Of(t.Out(0))
		}
	case 2:
		if t.Out(1) != errorType {
			return nil, reflecterr.New(reflecterr.ErrInvalidFunction,
				"<%s>: second result must be error, got %s", name, t.Out(1))
		}
		f.ret = argument.Of(t.Out(0))
		f.returnErr = true
	default:
		return nil, reflecterr.New(reflecterr.ErrInvalidFunction,
			"<%s>: too many results (%d)", name, t.NumOut())
	}

	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Must is New that panics, for registrations that can only fail through a
// programming error.
func Must(name string, fn any, opts ...Option) *Function {
	f, err := New(name, fn, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// NewSignature builds a Function that has a shape but no implementation.
func NewSignature(name string, ret argument.Argument, args []argument.Argument, opts ...Option) *Function {
	f := &Function{
		name: name,
		ret:  ret,
		args: append([]argument.Argument(nil), args...),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the function name.
func (f *Function) Name() string { return f.name }

// Return returns the return slot, void when the function returns nothing.
func (f *Function) Return() argument.Argument { return f.ret }

// Arguments returns a copy of the parameter slots.
func (f *Function) Arguments() []argument.Argument {
	return append([]argument.Argument(nil), f.args...)
}

// Arity returns the number of parameters.
func (f *Function) Arity() int { return len(f.args) }

// Traits returns the function's traits. Callers must not modify them.
func (f *Function) Traits() *traits.Traits { return &f.traits }

// Callable reports whether the Function is backed by a Go func.
func (f *Function) Callable() bool { return f.fn.IsValid() }

// ReturnsError reports whether the backing func reports failures through a
// trailing error result.
func (f *Function) ReturnsError() bool { return f.returnErr }

// Test compares the signatures of f and other. Exact means that neither
// could be told apart at a call site.
func (f *Function) Test(other *Function) argument.Match {
	if len(f.args) != len(other.args) || f.ret.IsVoid() != other.ret.IsVoid() {
		return argument.None
	}

	match := f.ret.IsConvertibleTo(other.ret)
	for i := range f.args {
		if match == argument.None {
			break
		}
		match = argument.Combine(match, f.args[i].IsConvertibleTo(other.args[i]))
	}
	return match
}

// TestCall reports how well f accepts a call passing args and expecting ret.
// A void ret means the caller discards the result.
func (f *Function) TestCall(ret argument.Argument, args []argument.Argument) argument.Match {
	if len(f.args) != len(args) {
		return argument.None
	}

	var match argument.Match
	switch {
	case ret.IsVoid() && f.ret.IsVoid():
		match = argument.Exact
	case ret.IsVoid():
		match = argument.Convertible
	case f.ret.IsVoid():
		// Nothing comes back, whatever the caller wants.
		match = argument.None
	default:
		match = f.ret.IsConvertibleTo(ret)
	}

	for i := range args {
		if match == argument.None {
			break
		}
		match = argument.Combine(match, args[i].IsConvertibleTo(f.args[i]))
	}
	return match
}

// String renders the signature.
func (f *Function) String() string {
	return Signature(f)
}
