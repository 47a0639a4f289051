package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is used to decode all top-level blocks of a manifest file.
type fileRoot struct {
	Types []*typeBlock `hcl:"type,block"`
}

type typeBlock struct {
	ID           string              `hcl:"id,label"`
	Aliases      []string            `hcl:"aliases,optional"`
	Parents      []string            `hcl:"parents,optional"`
	Traits       cty.Value           `hcl:"traits,optional"`
	Fields       []*fieldBlock       `hcl:"field,block"`
	Constructors []*constructorBlock `hcl:"constructor,block"`
	Functions    []*functionBlock    `hcl:"function,block"`
	DeclRange    hcl.Range           `hcl:",def_range"`
}

type fieldBlock struct {
	Name   string         `hcl:"name,label"`
	Type   hcl.Expression `hcl:"type"`
	Traits cty.Value      `hcl:"traits,optional"`
}

type constructorBlock struct {
	Handler   string         `hcl:"handler"`
	Params    hcl.Expression `hcl:"params,optional"`
	Traits    cty.Value      `hcl:"traits,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}

type functionBlock struct {
	Name      string         `hcl:"name,label"`
	Handler   string         `hcl:"handler"`
	Params    hcl.Expression `hcl:"params,optional"`
	Return    hcl.Expression `hcl:"return,optional"`
	Traits    cty.Value      `hcl:"traits,optional"`
	DeclRange hcl.Range      `hcl:",def_range"`
}
