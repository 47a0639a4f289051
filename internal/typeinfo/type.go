package typeinfo

import (
	"strings"
	"sync"

	"github.com/specialistvlad/reflectgo/internal/argument"
	"github.com/specialistvlad/reflectgo/internal/function"
	"github.com/specialistvlad/reflectgo/internal/overloads"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/traits"
	"github.com/zclconf/go-cty/cty"
)

const (
	// AllocatorName is the overload set holding pointer allocators.
	AllocatorName = "new"
	// AssignName is the overload set copying a value into an existing one.
	AssignName = "assign"
)

// Type is the reflected metadata of a single type id.
type Type struct {
	id string

	mu         sync.RWMutex
	traits     traits.Traits
	parents    []string
	fields     map[string]*Field
	fieldOrder []string
	functions  map[string]*overloads.Overloads
	fnOrder    []string
}

// New creates an empty Type.
func New(id string) *Type {
	return &Type{
		id:        id,
		fields:    make(map[string]*Field),
		functions: make(map[string]*overloads.Overloads),
	}
}

// ID returns the type id.
func (t *Type) ID() string {
	return t.id
}

// Traits returns the type-level traits.
func (t *Type) Traits() *traits.Traits {
	return &t.traits
}

// AddTrait marks a type trait.
func (t *Type) AddTrait(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traits.Add(name)
}

// SetTrait sets a type trait with a value.
func (t *Type) SetTrait(name string, v cty.Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traits.Set(name, v)
}

// MergeTraits copies every trait of other onto the type.
func (t *Type) MergeTraits(other *traits.Traits) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traits.Merge(other)
}

// SetFunctionTrait sets a trait on the overload set called fn, creating the
// set when needed.
func (t *Type) SetFunctionTrait(fn, name string, v cty.Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.function(fn).Traits().Set(name, v)
}

// AddFunction introspects fn and adds it to the overload set called name.
func (t *Type) AddFunction(name string, fn any, opts ...function.Option) error {
	f, err := function.New(name, fn, opts...)
	if err != nil {
		return err
	}
	return t.Add(f)
}

// Add inserts fn into the overload set named after it.
func (t *Type) Add(fn *function.Function) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.function(fn.Name()).Add(fn)
}

// Function returns the overload set called name, creating it empty.
func (t *Type) Function(name string) *overloads.Overloads {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.function(name)
}

func (t *Type) function(name string) *overloads.Overloads {
	ov, ok := t.functions[name]
	if !ok {
		ov = overloads.New()
		t.functions[name] = ov
		t.fnOrder = append(t.fnOrder, name)
	}
	return ov
}

// Overloads returns the overload set called name without creating it.
func (t *Type) Overloads(name string) (*overloads.Overloads, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ov, ok := t.functions[name]
	return ov, ok
}

// HasFunction reports whether at least one overload is registered as name.
func (t *Type) HasFunction(name string) bool {
	ov, ok := t.Overloads(name)
	return ok && ov.Len() > 0
}

// Functions returns the overload set names in the order they were created.
func (t *Type) Functions() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.fnOrder...)
}

// Resolve picks the overload of name that accepts the call shape.
func (t *Type) Resolve(name string, ret argument.Argument, args []argument.Argument) (*function.Function, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ov, ok := t.functions[name]
	if !ok {
		return nil, reflecterr.New(reflecterr.ErrNoMatchingOverload,
			"no overload <%s> available for function <%s> of <%s>",
			function.SignatureOf(ret, args), name, t.id)
	}
	return ov.Get(ret, args)
}

// Call resolves name against the runtime types of args and invokes it.
func (t *Type) Call(name string, args ...any) (any, error) {
	fn, err := t.Resolve(name, argument.Void(), argument.OfValues(args...))
	if err != nil {
		return nil, err
	}
	return fn.Call(args...)
}

// Construct calls the constructor overload that accepts args.
func (t *Type) Construct(args ...any) (any, error) {
	return t.Call(t.id, args...)
}

// AddField registers a field. Field names are unique per type.
func (t *Type) AddField(f *Field) error {
	if f == nil || f.name == "" {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't add an unnamed field to <%s>", t.id)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.fields[f.name]; exists {
		return reflecterr.New(reflecterr.ErrDuplicateRegistration, "<%s> already has a field <%s>", t.id, f.name)
	}
	t.fields[f.name] = f
	t.fieldOrder = append(t.fieldOrder, f.name)
	return nil
}

// Field looks up a field by name.
func (t *Type) Field(name string) (*Field, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.fields[name]
	return f, ok
}

// Fields returns the fields in declaration order.
func (t *Type) Fields() []*Field {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fields := make([]*Field, 0, len(t.fieldOrder))
	for _, name := range t.fieldOrder {
		fields = append(fields, t.fields[name])
	}
	return fields
}

// AddParent appends a parent type id. Order is significant for lookups.
func (t *Type) AddParent(id string) error {
	if id == "" {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't add an empty parent to <%s>", t.id)
	}
	if id == t.id {
		return reflecterr.New(reflecterr.ErrCyclicHierarchy, "<%s> can't be its own parent", t.id)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, parent := range t.parents {
		if parent == id {
			return reflecterr.New(reflecterr.ErrDuplicateRegistration, "<%s> already has parent <%s>", t.id, id)
		}
	}
	t.parents = append(t.parents, id)
	return nil
}

// Parents returns the parent ids in declaration order.
func (t *Type) Parents() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.parents...)
}

// IsChildOf reports whether id is a direct parent.
func (t *Type) IsChildOf(id string) bool {
	for _, parent := range t.Parents() {
		if parent == id {
			return true
		}
	}
	return false
}

// Print renders the type for diagnostics.
func (t *Type) Print() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString("type " + t.id + "\n")
	if len(t.parents) > 0 {
		sb.WriteString("  parents: [" + strings.Join(t.parents, ", ") + "]\n")
	}
	if !t.traits.Empty() {
		sb.WriteString("  " + t.traits.Print() + "\n")
	}
	for _, name := range t.fieldOrder {
		f := t.fields[name]
		sb.WriteString("  field " + f.name + " " + f.typ.String() + "\n")
	}
	for _, name := range t.fnOrder {
		sb.WriteString("  function " + name + "\n")
		sb.WriteString(t.functions[name].Print(4))
	}
	return sb.String()
}
