package project

import (
	"fmt"
	"math"
)

// Vec2 is a 2D point or size in level (model) coordinates.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Angle stores a rotation in degrees, clockwise on screen.
type Angle struct {
	Degrees float64
}

func Degrees(d float64) Angle { return Angle{Degrees: d} }

func (a Angle) Radians() float64 { return a.Degrees * math.Pi / 180 }

// Color is an 8-bit RGBA color attached to hitbox vertices.
type Color struct {
	R, G, B, A uint8
}

// PrimitiveType says how the vertices of a polyline are connected.
type PrimitiveType int

const (
	Points PrimitiveType = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

var primitiveNames = [...]string{
	Points:        "Points",
	Lines:         "Lines",
	LineStrip:     "LineStrip",
	Triangles:     "Triangles",
	TriangleStrip: "TriangleStrip",
	TriangleFan:   "TriangleFan",
}

func (p PrimitiveType) String() string {
	if p < 0 || int(p) >= len(primitiveNames) {
		return "Unknown"
	}
	return primitiveNames[p]
}

// ParsePrimitiveType maps a primitive name back to its PrimitiveType.
func ParsePrimitiveType(s string) (PrimitiveType, error) {
	for i, name := range primitiveNames {
		if name == s {
			return PrimitiveType(i), nil
		}
	}
	return 0, fmt.Errorf("invalid primitive type %q", s)
}
