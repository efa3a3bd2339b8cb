package sample

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Lerper is implemented by values that know how to interpolate towards
// another value of the same type. amount 0 must return the receiver and
// amount 1 must return towards.
type Lerper[V any] interface {
	Lerp(towards V, amount float64) V
}

// Interpolate returns a value between from and towards at a uniformly random
// fraction drawn with Unit.
func Interpolate[V Lerper[V]](src Source, from, towards V) V {
	return from.Lerp(towards, Unit(src))
}

// InterpolateScalar is Interpolate for plain floating-point values.
func InterpolateScalar[T constraints.Float](src Source, from, towards T) T {
	return T(Lerp(float64(from), float64(towards), Unit(src)))
}

// Lerp blends from towards towards as from*(1-amount) + towards*amount.
// Amounts 0 and 1 return the endpoints exactly.
func Lerp(from, towards, amount float64) float64 {
	switch amount {
	case 0:
		return from
	case 1:
		return towards
	}
	return from*(1-amount) + towards*amount
}

// Point is a location in the plane.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) Lerp(towards Point, amount float64) Point {
	return Point{Lerp(p.X, towards.X, amount), Lerp(p.Y, towards.Y, amount)}
}

// Size is a two-dimensional extent.
type Size struct {
	Width, Height float64
}

func (s Size) Lerp(towards Size, amount float64) Size {
	return Size{Lerp(s.Width, towards.Width, amount), Lerp(s.Height, towards.Height, amount)}
}

// Color is an RGBA colour with components in [0, 1]. Interpolation is
// componentwise in the stored space; no gamma conversion is applied.
type Color struct {
	R, G, B, A float64
}

func (c Color) Lerp(towards Color, amount float64) Color {
	return Color{
		R: Lerp(c.R, towards.R, amount),
		G: Lerp(c.G, towards.G, amount),
		B: Lerp(c.B, towards.B, amount),
		A: Lerp(c.A, towards.A, amount),
	}
}

// Vector is an arbitrary-dimension vector. Both ends of an interpolation must
// have the same length or Lerp panics with ErrLengthMismatch.
type Vector []float64

func (v Vector) Lerp(towards Vector, amount float64) Vector {
	if len(v) != len(towards) {
		precondition(ErrLengthMismatch, "%d != %d", len(v), len(towards))
	}
	out := make(Vector, len(v))
	for i := range v {
		out[i] = Lerp(v[i], towards[i], amount)
	}
	return out
}

// Transform is a composite of translation, scale and rotation. It
// interpolates through those decomposed components rather than through a
// matrix, so a half-way rotation stays a rotation.
type Transform struct {
	Translate Point
	Scale     Size
	Rotation  float64 // radians
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{Scale: Size{1, 1}}

func (t Transform) Lerp(towards Transform, amount float64) Transform {
	return Transform{
		Translate: t.Translate.Lerp(towards.Translate, amount),
		Scale:     t.Scale.Lerp(towards.Scale, amount),
		Rotation:  Lerp(t.Rotation, towards.Rotation, amount),
	}
}

// Apply maps p through t: scale, then rotate, then translate.
func (t Transform) Apply(p Point) Point {
	x, y := p.X*t.Scale.Width, p.Y*t.Scale.Height
	sin, cos := math.Sincos(t.Rotation)
	return Point{x*cos - y*sin, x*sin + y*cos}.Add(t.Translate)
}
