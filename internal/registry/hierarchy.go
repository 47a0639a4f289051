package registry

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/reflectgo/internal/hierarchy"
	"github.com/specialistvlad/reflectgo/internal/overloads"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
)

// Ancestors returns the ancestors of id, nearest first.
func (r *Registry) Ancestors(id string) ([]string, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	return hierarchy.Linearize(t.ID(), r.parentsOf)
}

// IsChildOf reports whether parent is an ancestor of id.
func (r *Registry) IsChildOf(id, parent string) (bool, error) {
	ancestors, err := r.Ancestors(id)
	if err != nil {
		return false, err
	}
	parent = r.Canonical(parent)
	for _, a := range ancestors {
		if a == parent {
			return true, nil
		}
	}
	return false, nil
}

// FindFunction returns the overload set called name on id or, failing that,
// on the nearest ancestor that has one.
func (r *Registry) FindFunction(id, name string) (*overloads.Overloads, *typeinfo.Type, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, nil, err
	}
	if t.HasFunction(name) {
		ov, _ := t.Overloads(name)
		return ov, t, nil
	}

	ancestors, err := hierarchy.Linearize(t.ID(), r.parentsOf)
	if err != nil {
		return nil, nil, err
	}
	for _, a := range ancestors {
		parent, err := r.Get(a)
		if err != nil {
			return nil, nil, err
		}
		if parent.HasFunction(name) {
			ov, _ := parent.Overloads(name)
			return ov, parent, nil
		}
	}
	return nil, nil, reflecterr.New(reflecterr.ErrNoMatchingOverload,
		"no function <%s> available on <%s> or its parents", name, t.ID())
}

func (r *Registry) parentsOf(id string) ([]string, error) {
	t, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	parents := t.Parents()
	for i, p := range parents {
		parents[i] = r.Canonical(p)
	}
	return parents, nil
}

// Validate loads every pending type and checks the hierarchy: every parent
// must be declared and parent links must not form a cycle. All problems are
// reported together.
func (r *Registry) Validate() error {
	if err := r.LoadAll(); err != nil {
		return err
	}

	var errs []string
	graph := make(map[string][]string)
	for _, id := range r.IDs() {
		t, err := r.Get(id)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		for _, p := range t.Parents() {
			canonical := r.Canonical(p)
			if !r.Has(canonical) {
				errs = append(errs, fmt.Sprintf("type '%s': parent '%s' is not declared", id, p))
				continue
			}
			graph[id] = append(graph[id], canonical)
		}
	}

	_, orderErr := hierarchy.Order(graph)
	if orderErr != nil {
		errs = append(errs, orderErr.Error())
	}
	if len(errs) > 0 {
		return &ValidationError{Problems: errs, cause: orderErr}
	}
	return nil
}

// ValidationError lists every problem found by Validate.
type ValidationError struct {
	Problems []string
	cause    error
}

func (e *ValidationError) Error() string {
	return "registry validation failed:\n- " + strings.Join(e.Problems, "\n- ")
}

// Unwrap exposes the hierarchy failure, if any, to errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.cause
}
