// Package traits holds key/value annotations ("const", "virtual", doc
// strings, ...) attached to reflected types, fields and functions.
package traits

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"github.com/zclconf/go-cty/cty/gocty"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Traits is a set of named annotations. A trait added without a value holds
// cty.True. The zero value is ready to use.
type Traits struct {
	values map[string]cty.Value
}

// Add marks the trait as present.
func (t *Traits) Add(name string) {
	t.Set(name, cty.True)
}

// Set records a trait with an explicit value.
func (t *Traits) Set(name string, value cty.Value) {
	if t.values == nil {
		t.values = make(map[string]cty.Value)
	}
	t.values[name] = value
}

// SetGo records a trait from a native Go value.
func (t *Traits) SetGo(name string, value any) error {
	ty, err := gocty.ImpliedType(value)
	if err != nil {
		return fmt.Errorf("trait %q: %w", name, err)
	}
	v, err := gocty.ToCtyValue(value, ty)
	if err != nil {
		return fmt.Errorf("trait %q: %w", name, err)
	}
	t.Set(name, v)
	return nil
}

// Is reports whether the trait is present.
func (t *Traits) Is(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Value returns the trait's value.
func (t *Traits) Value(name string) (cty.Value, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Names returns the trait names in sorted order.
func (t *Traits) Names() []string {
	names := maps.Keys(t.values)
	slices.Sort(names)
	return names
}

// Empty reports whether no trait was recorded.
func (t *Traits) Empty() bool {
	return len(t.values) == 0
}

// Merge copies every trait of other into t, overwriting duplicates.
func (t *Traits) Merge(other *Traits) {
	for name, v := range other.values {
		t.Set(name, v)
	}
}

// Print renders the traits as `traits: [const, doc="..."]`.
func (t *Traits) Print() string {
	parts := make([]string, 0, len(t.values))
	for _, name := range t.Names() {
		v := t.values[name]
		if v.RawEquals(cty.True) {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+"="+Format(v))
	}
	return "traits: [" + strings.Join(parts, ", ") + "]"
}

// Format renders a single trait value.
func Format(v cty.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case !v.IsKnown():
		return "(unknown)"
	case v.Type() == cty.String:
		return fmt.Sprintf("%q", v.AsString())
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('g', -1)
	case v.Type() == cty.Bool:
		return fmt.Sprintf("%t", v.True())
	}

	raw, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(raw)
}
