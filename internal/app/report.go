package app

import (
	"github.com/specialistvlad/reflectgo/internal/function"
	"github.com/specialistvlad/reflectgo/internal/registry"
	"github.com/specialistvlad/reflectgo/internal/traits"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"golang.org/x/exp/slices"
)

// TypeReport is the structured description of one type used by `dump`.
type TypeReport struct {
	ID        string            `yaml:"id"`
	Aliases   []string          `yaml:"aliases,omitempty"`
	Parents   []string          `yaml:"parents,omitempty"`
	Traits    map[string]string `yaml:"traits,omitempty"`
	Fields    []FieldReport     `yaml:"fields,omitempty"`
	Functions []FunctionReport  `yaml:"functions,omitempty"`
}

// FieldReport describes a field.
type FieldReport struct {
	Name   string            `yaml:"name"`
	Type   string            `yaml:"type"`
	Traits map[string]string `yaml:"traits,omitempty"`
}

// FunctionReport lists the overload signatures of one name.
type FunctionReport struct {
	Name      string   `yaml:"name"`
	Overloads []string `yaml:"overloads"`
}

// BuildReport loads and describes the given ids, or every declared id when
// none are given.
func BuildReport(reg *registry.Registry, ids ...string) ([]TypeReport, error) {
	if len(ids) == 0 {
		ids = reg.IDs()
	}

	aliases := make(map[string][]string)
	for alias, id := range reg.Aliases() {
		aliases[id] = append(aliases[id], alias)
	}

	reports := make([]TypeReport, 0, len(ids))
	for _, id := range ids {
		t, err := reg.Get(id)
		if err != nil {
			return nil, err
		}
		r := describe(t)
		r.Aliases = aliases[t.ID()]
		slices.Sort(r.Aliases)
		reports = append(reports, r)
	}
	return reports, nil
}

func describe(t *typeinfo.Type) TypeReport {
	r := TypeReport{
		ID:      t.ID(),
		Parents: t.Parents(),
		Traits:  traitMap(t.Traits()),
	}
	for _, f := range t.Fields() {
		r.Fields = append(r.Fields, FieldReport{
			Name:   f.Name(),
			Type:   f.Type().String(),
			Traits: traitMap(f.Traits()),
		})
	}
	for _, name := range t.Functions() {
		ov, ok := t.Overloads(name)
		if !ok || ov.Len() == 0 {
			continue
		}
		fr := FunctionReport{Name: name}
		for _, fn := range ov.Functions() {
			fr.Overloads = append(fr.Overloads, function.Signature(fn))
		}
		r.Functions = append(r.Functions, fr)
	}
	return r
}

func traitMap(tr *traits.Traits) map[string]string {
	if tr.Empty() {
		return nil
	}
	out := make(map[string]string)
	for _, name := range tr.Names() {
		v, _ := tr.Value(name)
		out[name] = traits.Format(v)
	}
	return out
}
