package sample

import "math"

// Rect is an axis-aligned rectangle given by its origin and size. A negative
// width or height extends the rectangle the other way from the origin.
type Rect struct {
	Origin Point
	Size   Size
}

// NewRect returns the rectangle spanning the two corners.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Origin: Point{minX, minY}, Size: Size{maxX - minX, maxY - minY}}
}

func (r Rect) MinX() float64 { return math.Min(r.Origin.X, r.Origin.X+r.Size.Width) }
func (r Rect) MaxX() float64 { return math.Max(r.Origin.X, r.Origin.X+r.Size.Width) }
func (r Rect) MinY() float64 { return math.Min(r.Origin.Y, r.Origin.Y+r.Size.Height) }
func (r Rect) MaxY() float64 { return math.Max(r.Origin.Y, r.Origin.Y+r.Size.Height) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X <= r.MaxX() && p.Y >= r.MinY() && p.Y <= r.MaxY()
}

// RadiusRange bounds the distance of a sample from its center.
type RadiusRange struct {
	Min, Max float64
}

// PointInRectangle returns a point uniformly distributed over r. X is drawn
// before Y.
func PointInRectangle(src Source, r Rect) Point {
	x := UniformReal(src, r.MinX(), r.MaxX())
	y := UniformReal(src, r.MinY(), r.MaxY())
	return Point{x, y}
}

// PointAtDistance returns a point whose distance from center lies in radius,
// uniformly distributed over the area of the annulus. The angle is drawn
// first, then the radius through the inverse CDF r = lo + (hi-lo)*sqrt(u).
func PointAtDistance(src Source, center Point, radius RadiusRange) Point {
	theta := UniformReal(src, 0, 2*math.Pi)
	u := UniformReal(src, 0, 1)
	r := radius.Min + (radius.Max-radius.Min)*math.Sqrt(u)
	sin, cos := math.Sincos(theta)
	return Point{center.X + r*cos, center.Y + r*sin}
}

// PointInAnnulus returns a point uniformly distributed over the area of the
// annulus, using the exact inverse CDF r = sqrt(lo² + (hi²-lo²)*u). Unlike
// PointAtDistance it stays area-uniform when radius.Min > 0. Words are
// consumed in the same order as PointAtDistance.
func PointInAnnulus(src Source, center Point, radius RadiusRange) Point {
	theta := UniformReal(src, 0, 2*math.Pi)
	u := UniformReal(src, 0, 1)
	lo2, hi2 := radius.Min*radius.Min, radius.Max*radius.Max
	r := math.Sqrt(lo2 + (hi2-lo2)*u)
	sin, cos := math.Sincos(theta)
	return Point{center.X + r*cos, center.Y + r*sin}
}

// PointInDisc returns a point uniformly distributed over the disc of the given
// radius.
func PointInDisc(src Source, center Point, radius float64) Point {
	return PointAtDistance(src, center, RadiusRange{0, radius})
}

// PointOnCircle returns a uniformly distributed point on the circle of the
// given radius.
func PointOnCircle(src Source, center Point, radius float64) Point {
	return PointAtDistance(src, center, RadiusRange{radius, radius})
}

// SizeInRange draws width and height independently between min and max.
func SizeInRange(src Source, min, max Size) Size {
	w := UniformReal(src, min.Width, max.Width)
	h := UniformReal(src, min.Height, max.Height)
	return Size{w, h}
}
