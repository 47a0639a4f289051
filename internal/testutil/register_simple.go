package testutil

import (
	"context"
	"reflect"

	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/registry"
)

// SimpleModule is a test helper for easily creating a module that registers
// a few handlers, handler types and type loaders.
type SimpleModule struct {
	Handlers map[string]any
	Types    map[string]any // name -> zero value of the Go type
	Loaders  map[string]registry.Loader
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(_ context.Context, r *registry.Registry, h *handlers.Handlers) error {
	for name, zero := range m.Types {
		h.RegisterType(name, reflect.TypeOf(zero))
	}
	for name, fn := range m.Handlers {
		h.RegisterHandler(name, fn)
	}
	for id, load := range m.Loaders {
		if err := r.AddLoader(id, load); err != nil {
			return err
		}
	}
	return nil
}
