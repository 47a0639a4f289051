package text

import (
	"context"
	_ "embed"

	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/manifest"
	"github.com/specialistvlad/reflectgo/internal/registry"
)

//go:embed text.hcl
var textManifest []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register binds the handlers and declares the manifest types.
func (m *Module) Register(ctx context.Context, r *registry.Registry, h *handlers.Handlers) error {
	handlers.RegisterTypeOf[Builder](h, "text.Builder")
	h.RegisterHandler("text.NewBuilder", NewBuilder)
	h.RegisterHandler("text.Write", Write)
	h.RegisterHandler("text.String", String)
	h.RegisterHandler("text.Len", Len)
	h.RegisterHandler("text.Upper", Upper)
	h.RegisterHandler("text.Lower", Lower)
	h.RegisterHandler("text.Repeat", Repeat)
	h.RegisterHandler("text.Join", Join)
	h.RegisterHandler("text.Split", Split)
	h.RegisterHandler("text.WordCount", WordCount)
	h.RegisterHandler("text.Vocabulary", Vocabulary)

	decls, err := manifest.Parse(ctx, h, "text.hcl", textManifest)
	if err != nil {
		return err
	}
	return manifest.Register(ctx, r, h, decls...)
}
