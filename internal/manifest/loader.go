package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/reflectgo/internal/ctxlog"
	"github.com/specialistvlad/reflectgo/internal/fsutil"
	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/reflecterr"
	"github.com/specialistvlad/reflectgo/internal/registry"
)

// Extension is the file extension of manifest files.
const Extension = ".hcl"

// Load finds every manifest under paths, translates it and registers a
// loader plus the aliases of each declared type. It returns the declared
// ids in file order. Paths that do not exist are skipped.
func Load(ctx context.Context, reg *registry.Registry, h *handlers.Handlers, paths ...string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extension)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	var decls []*Declaration
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		fileDecls, err := decode(ctx, h, file, hclFile)
		if err != nil {
			return nil, err
		}
		decls = append(decls, fileDecls...)
	}

	if err := Register(ctx, reg, h, decls...); err != nil {
		return nil, err
	}

	ids := make([]string, len(decls))
	for i, d := range decls {
		ids[i] = d.ID
	}
	logger.Debug("Manifest loading complete.", "types", len(ids))
	return ids, nil
}

// Parse translates the manifest source src. filename is used in messages.
func Parse(ctx context.Context, h *handlers.Handlers, filename string, src []byte) ([]*Declaration, error) {
	hclFile, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(ctx, h, filename, hclFile)
}

func decode(ctx context.Context, h *handlers.Handlers, filename string, file *hcl.File) ([]*Declaration, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	decls := make([]*Declaration, 0, len(root.Types))
	for _, b := range root.Types {
		d, err := translateType(ctx, h, b)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// Register adds a loader and the aliases of every declaration to reg. The
// aliases of a declaration are checked before its loader is added, so a
// conflicting alias leaves that declaration unregistered. Declarations
// before it in decls stay registered.
func Register(ctx context.Context, reg *registry.Registry, h *handlers.Handlers, decls ...*Declaration) error {
	logger := ctxlog.FromContext(ctx)
	for _, d := range decls {
		bound := reg.Aliases()
		for _, alias := range d.Aliases {
			if existing, ok := bound[alias]; ok && existing != d.ID {
				return fmt.Errorf("%s: %w", d.Range, reflecterr.New(reflecterr.ErrConflictingAlias,
					"<%s> can't be aliased to <%s> because it's already aliased to <%s>", alias, d.ID, existing))
			}
		}
		if err := reg.AddLoader(d.ID, d.Loader(h)); err != nil {
			return fmt.Errorf("%s: %w", d.Range, err)
		}
		for _, alias := range d.Aliases {
			if err := reg.Alias(d.ID, alias); err != nil {
				return fmt.Errorf("%s: %w", d.Range, err)
			}
		}
		logger.Debug("Registered manifest type.", "id", d.ID, "aliases", len(d.Aliases),
			"constructors", len(d.Constructors), "functions", len(d.Functions))
	}
	return nil
}
