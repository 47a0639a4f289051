package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/reflectgo/internal/ctxlog"
	"github.com/specialistvlad/reflectgo/internal/overloads"
	"github.com/specialistvlad/reflectgo/internal/registry"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// FunctionName is the HCL name of the overload set fn of type id. Scope
// separators become "::"; the constructor set is the type name itself.
//
//	FunctionName("geometry.Point", "geometry.Point") == "geometry::Point"
//	FunctionName("geometry.Point", "dist")           == "geometry::Point::dist"
func FunctionName(id, fn string) string {
	name := strings.ReplaceAll(id, ".", "::")
	if fn == id {
		return name
	}
	return name + "::" + fn
}

// Function wraps an overload set as a variadic cty function.
func Function(ov *overloads.Overloads) function.Function {
	return function.New(&function.Spec{
		Description: ov.Name(),
		VarParam: &function.Parameter{
			Name:             "args",
			Type:             cty.DynamicPseudoType,
			AllowNull:        true,
			AllowDynamicType: true,
		},
		Type: function.StaticReturnType(cty.DynamicPseudoType),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return Call(ov, args...)
		},
	})
}

// Functions exposes every overload set of t, keyed by FunctionName.
func Functions(t *typeinfo.Type) map[string]function.Function {
	out := make(map[string]function.Function)
	for _, name := range t.Functions() {
		ov, ok := t.Overloads(name)
		if !ok || ov.Len() == 0 {
			continue
		}
		out[FunctionName(t.ID(), name)] = Function(ov)
	}
	return out
}

// EvalContext loads the given types, or every declared type when ids is
// empty, and exposes their functions to HCL expressions.
func EvalContext(ctx context.Context, reg *registry.Registry, ids ...string) (*hcl.EvalContext, error) {
	logger := ctxlog.FromContext(ctx)
	if len(ids) == 0 {
		ids = reg.IDs()
	}

	ectx := &hcl.EvalContext{
		Variables: make(map[string]cty.Value),
		Functions: make(map[string]function.Function),
	}
	for _, id := range ids {
		t, err := reg.Get(id)
		if err != nil {
			return nil, err
		}
		fns := Functions(t)
		for name, fn := range fns {
			ectx.Functions[name] = fn
		}
		logger.Debug("Exposed type to expressions.", "id", t.ID(), "functions", len(fns))
	}
	return ectx, nil
}

// Eval parses and evaluates a single HCL expression. A failure inside a
// reflected function is returned wrapped, so errors.Is still sees its kind.
func Eval(ctx context.Context, ectx *hcl.EvalContext, src string) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Evaluating expression.", "expr", src)

	expr, diags := hclsyntax.ParseExpression([]byte(src), "<expr>", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse expression: %w", diags)
	}

	val, diags := expr.Value(ectx)
	if diags.HasErrors() {
		for _, d := range diags {
			if extra, ok := hcl.DiagnosticExtra[hclsyntax.FunctionCallDiagExtra](d); ok {
				if err := extra.FunctionCallError(); err != nil {
					return cty.NilVal, fmt.Errorf("%s: %w", d.Summary, err)
				}
			}
		}
		return cty.NilVal, fmt.Errorf("failed to evaluate expression: %w", diags)
	}
	return val, nil
}
