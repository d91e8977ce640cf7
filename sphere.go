package bloch

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
Point is a location on (or, before Normalize, near) the unit sphere. It
shares its layout with r3.Vec so the gonum vector functions apply directly.
*/
type Point r3.Vec

var (
	NorthPole = Point{Z: 1}
	SouthPole = Point{Z: -1}
)

func (p Point) Vec() r3.Vec {
	return r3.Vec(p)
}

func (p Point) Norm() float64 {
	return r3.Norm(p.Vec())
}

func (p Point) Dot(o Point) float64 {
	return r3.Dot(p.Vec(), o.Vec())
}

func (p Point) Neg() Point {
	return Point(r3.Scale(-1, p.Vec()))
}

// Normalize projects p onto the unit sphere. A zero vector is divided by 1
// and so stays zero instead of turning into NaN.
func (p Point) Normalize() Point {
	n := p.Norm()
	if n == 0 {
		n = 1
	}
	return Point(r3.Scale(1/n, p.Vec()))
}

// Distance is the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return r3.Norm(r3.Sub(p.Vec(), o.Vec()))
}

// MaxAxisDelta is the largest per-axis difference between p and o.
func (p Point) MaxAxisDelta(o Point) float64 {
	return math.Max(
		math.Abs(p.X-o.X),
		math.Max(math.Abs(p.Y-o.Y), math.Abs(p.Z-o.Z)),
	)
}

// PointFromAngles places a point by polar angle theta and azimuth phi,
// both in degrees.
func PointFromAngles(thetaDeg, phiDeg float64) Point {
	theta := Radians(thetaDeg)
	phi := Radians(phiDeg)
	return Point{
		X: math.Sin(theta) * math.Cos(phi),
		Y: math.Sin(theta) * math.Sin(phi),
		Z: math.Cos(theta),
	}
}
