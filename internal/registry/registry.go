package registry

import (
	"context"
	"log/slog"
	"sync"

	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/scope"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Loader populates a freshly created type in place. It runs at most once.
type Loader func(t *typeinfo.Type) error

// Registry holds the types, aliases and loaders of a single application.
type Registry struct {
	mu      sync.Mutex
	logger  *slog.Logger
	types   map[string]*typeinfo.Type
	aliases map[string]string
	loaders map[string]Loader
	scope   *scope.Scope
}

// New creates an empty registry. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger:  logger,
		types:   make(map[string]*typeinfo.Type),
		aliases: make(map[string]string),
		loaders: make(map[string]Loader),
		scope:   scope.New(),
	}
}

// Scope returns the namespace tree of every declared id.
func (r *Registry) Scope() *scope.Scope {
	return r.scope
}

// Get resolves id through at most one alias and returns its type, loading it
// on first use.
func (r *Registry) Get(id string) (*typeinfo.Type, error) {
	r.mu.Lock()

	if canonical, ok := r.aliases[id]; ok {
		id = canonical
	}
	if t, ok := r.types[id]; ok {
		r.mu.Unlock()
		return t, nil
	}
	return r.loadLocked(id)
}

// Load runs the loader of id. An id that is already loaded is returned as
// is and its (consumed) loader is never invoked again.
func (r *Registry) Load(id string) (*typeinfo.Type, error) {
	r.mu.Lock()

	if t, ok := r.types[id]; ok {
		r.mu.Unlock()
		return t, nil
	}
	return r.loadLocked(id)
}

// loadLocked must be called with r.mu held. It releases the lock before the
// loader body runs.
func (r *Registry) loadLocked(id string) (*typeinfo.Type, error) {
	if id == "" {
		r.mu.Unlock()
		return nil, reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't load type for <%s>", id)
	}

	loader, ok := r.loaders[id]
	if !ok {
		r.mu.Unlock()
		return nil, reflecterr.New(reflecterr.ErrUnknownLoader, "no loader found for <%s>", id)
	}
	delete(r.loaders, id)

	t := typeinfo.New(id)
	r.types[id] = t
	r.mu.Unlock()

	r.logger.Debug("Loading type.", "id", id)
	if err := loader(t); err != nil {
		r.mu.Lock()
		if r.types[id] == t {
			delete(r.types, id)
		}
		r.mu.Unlock()

		r.logger.Debug("Type loader failed.", "id", id, "error", err)
		return nil, err
	}
	return t, nil
}

// Add registers a fully built type. Registration is one-shot.
func (r *Registry) Add(id string, t *typeinfo.Type) error {
	if id == "" || t == nil {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't add type for <%s>", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[id]; exists {
		return reflecterr.New(reflecterr.ErrDuplicateRegistration, "<%s> already has a type", id)
	}
	if _, pending := r.loaders[id]; pending {
		return reflecterr.New(reflecterr.ErrDuplicateRegistration, "<%s> already has a loader", id)
	}
	if err := r.scope.AddType(id); err != nil {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't add type for <%s>: %v", id, err)
	}

	r.types[id] = t
	r.logger.Debug("Registered type.", "id", id)
	return nil
}

// AddLoader registers a deferred builder for id. A second loader for the
// same id, or a loader for an id that already has a type, is rejected; use
// ReplaceLoader to swap a pending loader on purpose.
func (r *Registry) AddLoader(id string, loader Loader) error {
	if id == "" || loader == nil {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't add loader for <%s>", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[id]; exists {
		return reflecterr.New(reflecterr.ErrDuplicateRegistration, "<%s> already has a loader", id)
	}
	if _, exists := r.types[id]; exists {
		return reflecterr.New(reflecterr.ErrDuplicateRegistration, "<%s> already has a type", id)
	}
	if err := r.scope.AddType(id); err != nil {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't add loader for <%s>: %v", id, err)
	}

	r.loaders[id] = loader
	r.logger.Debug("Registered type loader.", "id", id)
	return nil
}

// ReplaceLoader swaps the pending loader of id. It fails when id has no
// pending loader, including when the type was already loaded.
func (r *Registry) ReplaceLoader(id string, loader Loader) error {
	if id == "" || loader == nil {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "can't replace loader for <%s>", id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.loaders[id]; !exists {
		return reflecterr.New(reflecterr.ErrUnknownLoader, "no loader found for <%s>", id)
	}
	r.loaders[id] = loader
	r.logger.Debug("Replaced type loader.", "id", id)
	return nil
}

// Alias makes alias resolve to id. An alias is bound to one id for its whole
// lifetime; binding it again to the same id is a no-op.
func (r *Registry) Alias(id, alias string) error {
	if id == "" || alias == "" {
		return reflecterr.New(reflecterr.ErrInvalidIdentifier, "<%s> can't be aliased to <%s>", alias, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.aliases[alias]; ok {
		if existing == id {
			return nil
		}
		return reflecterr.New(reflecterr.ErrConflictingAlias,
			"<%s> can't be aliased to <%s> because it's already aliased to <%s>",
			alias, id, existing)
	}

	r.aliases[alias] = id
	r.logger.Debug("Registered type alias.", "alias", alias, "id", id)
	return nil
}

// Canonical returns the id that alias resolves to, or alias itself.
func (r *Registry) Canonical(alias string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.aliases[alias]; ok {
		return id
	}
	return alias
}

// Has reports whether id (or the id it aliases) is declared, loaded or not.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if canonical, ok := r.aliases[id]; ok {
		id = canonical
	}
	_, loaded := r.types[id]
	_, pending := r.loaders[id]
	return loaded || pending
}

// IsLoaded reports whether id already has a concrete type.
func (r *Registry) IsLoaded(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, loaded := r.types[id]
	return loaded
}

// IDs returns every declared id in sorted order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := maps.Keys(r.types)
	ids = append(ids, maps.Keys(r.loaders)...)
	slices.Sort(ids)
	return ids
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return maps.Clone(r.aliases)
}

// LoadAll runs every pending loader and returns the first failure.
func (r *Registry) LoadAll() error {
	r.mu.Lock()
	pending := maps.Keys(r.loaders)
	r.mu.Unlock()
	slices.Sort(pending)

	for _, id := range pending {
		if _, err := r.Load(id); err != nil {
			return err
		}
	}
	return nil
}

// Module is implemented by packages that contribute types and handlers.
type Module interface {
	Register(ctx context.Context, r *Registry, h *handlers.Handlers) error
}
