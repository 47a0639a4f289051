package app

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/reflectgo/internal/bridge"
	"gopkg.in/yaml.v3"
)

// Dump describes the given types, or every declared type, in the configured
// output format.
func (a *App) Dump(ids ...string) error {
	a.logger.Debug("Dumping types.", "ids", ids, "format", a.config.OutputFormat)

	if a.config.OutputFormat == "yaml" {
		reports, err := BuildReport(a.registry, ids...)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(a.outW)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	}

	if len(ids) == 0 {
		fmt.Fprint(a.outW, "scopes:\n"+a.registry.Scope().Print(2))
		ids = a.registry.IDs()
	}
	for _, id := range ids {
		t, err := a.registry.Get(id)
		if err != nil {
			return err
		}
		fmt.Fprint(a.outW, t.Print())
	}
	return nil
}

// Check loads every declared type and validates the hierarchy.
func (a *App) Check() error {
	if err := a.registry.Validate(); err != nil {
		return err
	}
	ids := a.registry.IDs()
	a.logger.Info("Registry is valid.", "types", len(ids))
	fmt.Fprintf(a.outW, "ok: %d types\n", len(ids))
	return nil
}

// Eval evaluates an HCL expression against the functions of every declared
// type and prints the result.
func (a *App) Eval(expr string) error {
	ectx, err := bridge.EvalContext(a.ctx, a.registry)
	if err != nil {
		return err
	}
	v, err := bridge.Eval(a.ctx, ectx, expr)
	if err != nil {
		return err
	}

	out := bridge.Display(v)
	if a.config.OutputFormat == "yaml" {
		raw, err := yaml.Marshal(map[string]string{"expr": expr, "result": out})
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		out = strings.TrimSuffix(string(raw), "\n")
	}
	fmt.Fprintln(a.outW, out)
	return nil
}
