package scope

import (
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Scope is one namespace level. All scopes of a tree share the root's lock.
type Scope struct {
	name     string
	parent   *Scope
	mu       *sync.RWMutex
	children map[string]*Scope
	types    map[string]struct{}
}

// New creates an empty root scope.
func New() *Scope {
	return newScope("", nil, &sync.RWMutex{})
}

func newScope(name string, parent *Scope, mu *sync.RWMutex) *Scope {
	return &Scope{
		name:     name,
		parent:   parent,
		mu:       mu,
		children: make(map[string]*Scope),
		types:    make(map[string]struct{}),
	}
}

// AddType declares id relative to s, creating intermediate scopes.
func (s *Scope) AddType(id string) error {
	segments, err := Split(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current.children[segment]
		if !ok {
			child = newScope(segment, current, s.mu)
			current.children[segment] = child
		}
		current = child
	}
	current.types[segments[len(segments)-1]] = struct{}{}
	return nil
}

// Scope finds a nested scope by dotted path. The empty path returns s and a
// missing path returns nil.
func (s *Scope) Scope(name string) *Scope {
	if name == "" {
		return s
	}
	segments, err := Split(name)
	if err != nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s
	for _, segment := range segments {
		child, ok := current.children[segment]
		if !ok {
			return nil
		}
		current = child
	}
	return current
}

// HasType reports whether id was declared relative to s.
func (s *Scope) HasType(id string) bool {
	segments, err := Split(id)
	if err != nil {
		return false
	}
	owner := s.Scope(Join(segments[:len(segments)-1]...))
	if owner == nil {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := owner.types[segments[len(segments)-1]]
	return ok
}

// Name returns the last segment of the scope's path, empty for the root.
func (s *Scope) Name() string {
	return s.name
}

// FullName returns the dotted path from the root.
func (s *Scope) FullName() string {
	var segments []string
	for current := s; current.parent != nil; current = current.parent {
		segments = append([]string{current.name}, segments...)
	}
	return Join(segments...)
}

// Types returns the local names of the types declared directly in s.
func (s *Scope) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := maps.Keys(s.types)
	slices.Sort(names)
	return names
}

// Scopes returns the names of the direct sub-scopes.
func (s *Scope) Scopes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := maps.Keys(s.children)
	slices.Sort(names)
	return names
}

// Print renders the subtree, one entry per line. Scopes end with a dot.
func (s *Scope) Print(indent int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sb strings.Builder
	s.print(&sb, indent, 0)
	return sb.String()
}

func (s *Scope) print(sb *strings.Builder, indent, depth int) {
	pad := strings.Repeat(" ", indent+depth*2)

	names := maps.Keys(s.types)
	slices.Sort(names)
	for _, name := range names {
		sb.WriteString(pad + name + "\n")
	}

	children := maps.Keys(s.children)
	slices.Sort(children)
	for _, name := range children {
		sb.WriteString(pad + name + ".\n")
		s.children[name].print(sb, indent, depth+1)
	}
}
