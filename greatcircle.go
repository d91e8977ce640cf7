package bloch

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// coincidentDot and antipodalDot bound the slerp branch. Outside them
	// sin(omega) is too small to divide by.
	coincidentDot = 0.9995
	antipodalDot  = -0.9995

	// alignedWithX picks the Y reference axis when start is close to X.
	alignedWithX = 0.9
)

/*
SampleGreatCircle returns points along the shorter geodesic from start to
end. The result has steps+1 unit points, or exactly the two endpoints when
start and end coincide. Antipodal inputs have no unique geodesic; the arc is
then built by rotating start by [0,π] around an axis perpendicular to it.
*/
func SampleGreatCircle(start, end Point, steps int) []Point {
	if steps < 1 {
		steps = 1
	}

	start = start.Normalize()
	end = end.Normalize()
	dot := clamp(start.Dot(end), -1, 1)

	switch {
	case dot > coincidentDot:
		return []Point{start, end}
	case dot < antipodalDot:
		return rotateHalfTurn(start, end, steps)
	}

	omega := math.Acos(dot)
	sinOmega := math.Sin(omega)

	ts := floats.Span(make([]float64, steps+1), 0, 1)
	out := make([]Point, len(ts))

	for i, t := range ts {
		v := r3.Add(
			r3.Scale(math.Sin((1-t)*omega)/sinOmega, start.Vec()),
			r3.Scale(math.Sin(t*omega)/sinOmega, end.Vec()),
		)
		out[i] = Point(v).Normalize()
	}

	return out
}

// rotateHalfTurn resolves the antipodal case with Rodrigues' formula:
// v' = v cosθ + (k×v) sinθ + k(k·v)(1-cosθ).
func rotateHalfTurn(start, end Point, steps int) []Point {
	ref := r3.Vec{X: 1}
	if math.Abs(start.X) > alignedWithX {
		ref = r3.Vec{Y: 1}
	}

	v := start.Vec()
	k := Point(r3.Cross(v, ref)).Normalize().Vec()
	kxv := r3.Cross(k, v)
	kdv := r3.Dot(k, v)

	angles := floats.Span(make([]float64, steps+1), 0, math.Pi)
	out := make([]Point, len(angles))

	for i, theta := range angles {
		cos, sin := math.Cos(theta), math.Sin(theta)
		rotated := r3.Add(
			r3.Add(r3.Scale(cos, v), r3.Scale(sin, kxv)),
			r3.Scale(kdv*(1-cos), k),
		)
		out[i] = Point(rotated).Normalize()
	}

	out[0] = start
	out[len(out)-1] = end

	return out
}
