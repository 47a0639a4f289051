// Package overloads implements a named, insertion-ordered set of function
// signatures sharing one name.
//
// Resolution is first-match in insertion order: the set never ranks
// Convertible candidates against each other, it only refuses to hold two
// entries that collide exactly. An earlier overload therefore always wins
// over a later one that accepts the same call shape.
package overloads

import (
	"strings"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/function"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/traits"
)

// Overloads is the set of functions registered under one name. It is not
// safe for concurrent mutation; the owning type serializes access.
type Overloads struct {
	traits    traits.Traits
	overloads []*function.Function
}

// New returns an empty set.
func New() *Overloads {
	return &Overloads{}
}

// Add appends fn unless it collides exactly with an existing entry, in which
// case the set is left untouched.
func (o *Overloads) Add(fn *function.Function) error {
	for _, other := range o.overloads {
		if fn.Test(other) != argument.Exact {
			continue
		}
		return reflecterr.New(reflecterr.ErrAmbiguousOverload,
			"<%s, %s> is ambiguous with <%s, %s>",
			fn.Name(), function.Signature(fn),
			other.Name(), function.Signature(other))
	}

	o.overloads = append(o.overloads, fn)
	return nil
}

// Test reports whether any entry matches fn at all.
func (o *Overloads) Test(fn *function.Function) bool {
	for _, other := range o.overloads {
		if fn.Test(other) != argument.None {
			return true
		}
	}
	return false
}

// TestCall reports whether any entry accepts the call shape.
func (o *Overloads) TestCall(ret argument.Argument, args []argument.Argument) bool {
	for _, fn := range o.overloads {
		if fn.TestCall(ret, args) != argument.None {
			return true
		}
	}
	return false
}

// Get returns the first entry, in insertion order, that accepts the call
// shape.
func (o *Overloads) Get(ret argument.Argument, args []argument.Argument) (*function.Function, error) {
	for _, fn := range o.overloads {
		if fn.TestCall(ret, args) != argument.None {
			return fn, nil
		}
	}

	return nil, reflecterr.New(reflecterr.ErrNoMatchingOverload,
		"no overload <%s> available for function <%s>",
		function.SignatureOf(ret, args), o.Name())
}

// Name returns the name shared by the entries, or "?" for an empty set.
func (o *Overloads) Name() string {
	if len(o.overloads) == 0 {
		return "?"
	}
	return o.overloads[0].Name()
}

// Len returns the number of entries.
func (o *Overloads) Len() int {
	return len(o.overloads)
}

// Functions returns the entries in insertion order.
func (o *Overloads) Functions() []*function.Function {
	return append([]*function.Function(nil), o.overloads...)
}

// Traits returns the traits attached to the name rather than to a single
// entry.
func (o *Overloads) Traits() *traits.Traits {
	return &o.traits
}

// Print renders the traits, if any, then one signature per line, every line
// padded by indent spaces.
func (o *Overloads) Print(indent int) string {
	var sb strings.Builder
	pad := strings.Repeat(" ", indent)

	if !o.traits.Empty() {
		sb.WriteString(pad + o.traits.Print() + "\n")
	}
	for _, fn := range o.overloads {
		sb.WriteString(pad + function.Signature(fn) + "\n")
	}
	return sb.String()
}
