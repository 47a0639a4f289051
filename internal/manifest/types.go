// This file contains the logic for parsing HCL type expressions (e.g. `int`,
// `list(geometry.Point)`) into their corresponding Go types.

package manifest

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/reflectgo/internal/ctxlog"
	"github.com/specialistvlad/reflectgo/internal/handlers"
)

var keywordTypes = map[string]reflect.Type{
	"int":     reflect.TypeOf(0),
	"int64":   reflect.TypeOf(int64(0)),
	"float64": reflect.TypeOf(float64(0)),
	"string":  reflect.TypeOf(""),
	"bool":    reflect.TypeOf(false),
	"any":     reflect.TypeOf((*any)(nil)).Elem(),
}

// typeExprToGoType converts an HCL type expression into a Go type. A nil
// type means void, which is only allowed where allowVoid is set.
func typeExprToGoType(ctx context.Context, h *handlers.Handlers, expr hcl.Expression, allowVoid bool) (reflect.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil || isNullExpr(expr) {
		if !allowVoid {
			return nil, fmt.Errorf("a type is required")
		}
		return nil, nil
	}

	if call, diags := hcl.ExprCall(expr); !diags.HasErrors() {
		logger.Debug("Parsing type expression as a function call.", "call", call.Name)
		if len(call.Arguments) != 1 {
			return nil, fmt.Errorf("type constructors (list, map, ptr) require exactly one argument, got %d", len(call.Arguments))
		}
		elem, err := typeExprToGoType(ctx, h, call.Arguments[0], false)
		if err != nil {
			return nil, fmt.Errorf("in %s(): %w", call.Name, err)
		}
		switch call.Name {
		case "list":
			return reflect.SliceOf(elem), nil
		case "map":
			return reflect.MapOf(keywordTypes["string"], elem), nil
		case "ptr":
			return reflect.PointerTo(elem), nil
		default:
			return nil, fmt.Errorf("unknown type constructor function %q", call.Name)
		}
	}

	name, err := typeName(expr)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsing type expression as a name.", "name", name)

	if name == "void" {
		if !allowVoid {
			return nil, fmt.Errorf("void is only allowed as a return type")
		}
		return nil, nil
	}
	if t, ok := keywordTypes[name]; ok {
		return t, nil
	}
	if t, ok := h.Type(name); ok {
		return t, nil
	}
	return nil, fmt.Errorf("unknown type %q", name)
}

// typeName reads a bare keyword (`int`) or a dotted type name
// (`geometry.Point`).
func typeName(expr hcl.Expression) (string, error) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, nil
	}
	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return "", fmt.Errorf("unsupported expression for type definition: %s", diags.Error())
	}

	parts := []string{traversal.RootName()}
	for _, step := range traversal[1:] {
		attr, ok := step.(hcl.TraverseAttr)
		if !ok {
			return "", fmt.Errorf("invalid type name: only dotted identifiers are allowed")
		}
		parts = append(parts, attr.Name)
	}
	return strings.Join(parts, "."), nil
}

// typeListToGoTypes converts a tuple of type expressions, as used by
// `params`, into Go types. An absent list means no parameters.
func typeListToGoTypes(ctx context.Context, h *handlers.Handlers, expr hcl.Expression) ([]reflect.Type, error) {
	if expr == nil || isNullExpr(expr) {
		return nil, nil
	}
	items, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("params must be a list of types: %s", diags.Error())
	}

	out := make([]reflect.Type, len(items))
	for i, item := range items {
		t, err := typeExprToGoType(ctx, h, item, false)
		if err != nil {
			return nil, fmt.Errorf("param %d: %w", i, err)
		}
		out[i] = t
	}
	return out, nil
}

// isNullExpr recognizes the placeholder gohcl assigns to absent optional
// expression attributes, as well as a literal null.
func isNullExpr(expr hcl.Expression) bool {
	if len(expr.Variables()) > 0 {
		return false
	}
	if _, diags := hcl.ExprCall(expr); !diags.HasErrors() {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}
