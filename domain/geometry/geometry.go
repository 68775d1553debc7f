// Package geometry provides the segment and polygon measurements used to
// render annotations.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/polygon-annotator-go/domain/annotation"
)

func vec(p annotation.Point) r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Length returns the Euclidean distance between the segment end points.
func Length(s annotation.Segment) float64 {
	return r2.Norm(r2.Sub(vec(s.End), vec(s.Start)))
}

// Angle returns the segment direction in radians, atan2(dy, dx).
func Angle(s annotation.Segment) float64 {
	d := r2.Sub(vec(s.End), vec(s.Start))
	return math.Atan2(d.Y, d.X)
}

// Bar returns the four corners of a bar of the given thickness that starts at
// s.Start, runs along the segment and extends to the left-hand normal side.
// This mirrors a unit-height box rotated about its top-left corner.
func Bar(s annotation.Segment, thickness float64) [4]annotation.Point {
	length := Length(s)
	theta := Angle(s)
	dir := r2.Vec{X: math.Cos(theta), Y: math.Sin(theta)}
	normal := r2.Vec{X: -dir.Y, Y: dir.X}
	o := vec(s.Start)
	a := o
	b := r2.Add(o, r2.Scale(length, dir))
	c := r2.Add(b, r2.Scale(thickness, normal))
	d := r2.Add(o, r2.Scale(thickness, normal))
	return [4]annotation.Point{
		annotation.Pt(a.X, a.Y),
		annotation.Pt(b.X, b.Y),
		annotation.Pt(c.X, c.Y),
		annotation.Pt(d.X, d.Y),
	}
}

// Area returns the absolute shoelace area of the closed vertex loop.
func Area(vs []annotation.Point) float64 {
	if len(vs) < 3 {
		return 0
	}
	var sum float64
	for i := range vs {
		sum += r2.Cross(vec(vs[i]), vec(vs[(i+1)%len(vs)]))
	}
	return math.Abs(sum) / 2
}

// Perimeter sums the segment lengths of a polygon.
func Perimeter(poly annotation.Polygon) float64 {
	var total float64
	for _, s := range poly {
		total += Length(s)
	}
	return total
}

// Bounds returns the min and max corners of the points. ok is false for an
// empty input.
func Bounds(vs []annotation.Point) (min, max annotation.Point, ok bool) {
	if len(vs) == 0 {
		return annotation.Point{}, annotation.Point{}, false
	}
	min, max = vs[0], vs[0]
	for _, p := range vs[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max, true
}

// Scale multiplies every coordinate by f.
func Scale(p annotation.Point, f float64) annotation.Point {
	return annotation.Pt(p.X*f, p.Y*f)
}
