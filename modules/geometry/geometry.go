// Package geometry contributes a few plane geometry types, reflected from Go
// structs, to the registry.
package geometry

import (
	"fmt"
	"math"
)

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

// NewPoint builds a point from its coordinates.
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale multiplies both coordinates in place.
func (p *Point) Scale(f float64) {
	p.X *= f
	p.Y *= f
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Shape is anything with an area and a perimeter.
type Shape interface {
	Area() float64
	Perimeter() float64
}

// Circle is a disc around Center.
type Circle struct {
	Center Point
	Radius float64
}

// NewCircle validates the radius.
func NewCircle(center Point, radius float64) (Circle, error) {
	if radius < 0 {
		return Circle{}, fmt.Errorf("circle radius must not be negative, got %g", radius)
	}
	return Circle{Center: center, Radius: radius}, nil
}

func (c Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

func (c Circle) Perimeter() float64 { return 2 * math.Pi * c.Radius }

// Rect is an axis aligned rectangle.
type Rect struct {
	Min, Max Point
}

// NewRect normalizes the corners so that Min is the lower left one.
func NewRect(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Area() float64 { return (r.Max.X - r.Min.X) * (r.Max.Y - r.Min.Y) }

func (r Rect) Perimeter() float64 { return 2 * ((r.Max.X - r.Min.X) + (r.Max.Y - r.Min.Y)) }

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
