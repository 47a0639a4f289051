package geometry

import (
	"context"

	"github.com/specialistvlad/reflectgo/internal/handlers"
	"github.com/specialistvlad/reflectgo/internal/registry"
	"github.com/specialistvlad/reflectgo/internal/typeinfo"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register adds loaders for every geometry type and exposes the Go types and
// constructors to manifests.
func (m *Module) Register(_ context.Context, r *registry.Registry, h *handlers.Handlers) error {
	handlers.RegisterTypeOf[Point](h, "geometry.Point")
	handlers.RegisterTypeOf[Circle](h, "geometry.Circle")
	handlers.RegisterTypeOf[Rect](h, "geometry.Rect")
	handlers.RegisterTypeOf[Shape](h, "geometry.Shape")
	h.RegisterHandler("geometry.NewPoint", NewPoint)
	h.RegisterHandler("geometry.NewCircle", NewCircle)
	h.RegisterHandler("geometry.NewRect", NewRect)
	h.RegisterHandler("geometry.Midpoint", Midpoint)

	loaders := map[string]registry.Loader{
		"geometry.Shape":  loadShape,
		"geometry.Point":  loadPoint,
		"geometry.Circle": loadCircle,
		"geometry.Rect":   loadRect,
	}
	for id, load := range loaders {
		if err := r.AddLoader(id, load); err != nil {
			return err
		}
	}
	for alias, id := range map[string]string{
		"Point":  "geometry.Point",
		"Circle": "geometry.Circle",
		"Rect":   "geometry.Rect",
	} {
		if err := r.Alias(id, alias); err != nil {
			return err
		}
	}
	return nil
}

func loadShape(t *typeinfo.Type) error {
	return typeinfo.Build(t).
		Trait("abstract").
		Fn("Area", Shape.Area).
		Fn("Perimeter", Shape.Perimeter).
		Err()
}

func loadPoint(t *typeinfo.Type) error {
	b := typeinfo.ReflectStruct[Point](typeinfo.Build(t))
	return b.
		Cons(NewPoint).
		Fn("Dist", func(p Point, x, y float64) float64 { return p.Dist(Point{X: x, Y: y}) }).
		Fn("Midpoint", Midpoint).
		TraitValue("doc", cty.StringVal("A position in the plane")).
		Err()
}

func loadCircle(t *typeinfo.Type) error {
	b := typeinfo.ReflectStruct[Circle](typeinfo.Build(t))
	return b.
		Cons(NewCircle).
		Parent("geometry.Shape").
		Err()
}

func loadRect(t *typeinfo.Type) error {
	b := typeinfo.ReflectStruct[Rect](typeinfo.Build(t))
	return b.
		Cons(NewRect).
		Parent("geometry.Shape").
		Err()
}
