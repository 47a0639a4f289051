// Package handlers is the named table of Go code that manifests bind to:
// plain functions referenced by `handler = "..."` and Go types referenced by
// name in type expressions.
package handlers

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Handlers holds all the registered handlers and types.
type Handlers struct {
	mu    sync.RWMutex
	funcs map[string]any
	types map[string]reflect.Type
}

// New creates and initializes an empty table.
func New() *Handlers {
	return &Handlers{
		funcs: make(map[string]any),
		types: make(map[string]reflect.Type),
	}
}

// RegisterHandler registers a Go function under name. Registering a name
// twice, or anything that is not a func, is a programming error and panics.
func (h *Handlers) RegisterHandler(name string, fn any) {
	if fn == nil || reflect.TypeOf(fn).Kind() != reflect.Func {
		panic(fmt.Sprintf("handler '%s' must be a function, got %T", name, fn))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.funcs[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	h.funcs[name] = fn
}

// RegisterType makes t available to type expressions as name. Duplicate
// names panic.
func (h *Handlers) RegisterType(name string, t reflect.Type) {
	if t == nil {
		panic(fmt.Sprintf("type '%s' must not be nil", name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.types[name]; exists {
		panic(fmt.Sprintf("type with name '%s' already registered", name))
	}
	slog.Debug("Registering handler type.", "name", name, "go_type", t.String())
	h.types[name] = t
}

// RegisterTypeOf registers the Go type T under name.
func RegisterTypeOf[T any](h *Handlers, name string) {
	h.RegisterType(name, reflect.TypeOf((*T)(nil)).Elem())
}

// Handler returns the function registered as name.
func (h *Handlers) Handler(name string) (any, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn, ok := h.funcs[name]
	return fn, ok
}

// Type returns the Go type registered as name.
func (h *Handlers) Type(name string) (reflect.Type, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	t, ok := h.types[name]
	return t, ok
}

// Names returns the sorted handler names.
func (h *Handlers) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := maps.Keys(h.funcs)
	slices.Sort(names)
	return names
}

// TypeNames returns the sorted type names.
func (h *Handlers) TypeNames() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := maps.Keys(h.types)
	slices.Sort(names)
	return names
}
