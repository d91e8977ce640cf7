package bloch

import "math"

// EaseInOutCubic maps linear progress in [0,1] onto a cubic ease curve.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpSeries blends every coordinate of from toward to. Series of different
// lengths cannot be blended and yield to directly.
func LerpSeries(from, to Series, t float64) Series {
	if from.Len() != to.Len() {
		return to.Clone()
	}

	out := Series{
		Name:   to.Name,
		X:      make([]float64, to.Len()),
		Y:      make([]float64, to.Len()),
		Z:      make([]float64, to.Len()),
		Colors: append([]string(nil), to.Colors...),
	}
	for i := range to.X {
		out.X[i] = lerp(from.X[i], to.X[i], t)
		out.Y[i] = lerp(from.Y[i], to.Y[i], t)
		out.Z[i] = lerp(from.Z[i], to.Z[i], t)
	}
	return out
}

// alongPath returns the point at fraction t of a sampled path, blending the
// two nearest samples and projecting back onto the sphere.
func alongPath(path []Point, t float64) Point {
	switch len(path) {
	case 0:
		return Point{}
	case 1:
		return path[0]
	}

	pos := clamp(t, 0, 1) * float64(len(path)-1)
	i := int(math.Floor(pos))
	if i >= len(path)-1 {
		return path[len(path)-1]
	}

	frac := pos - float64(i)
	a, b := path[i], path[i+1]
	return Point{
		X: lerp(a.X, b.X, frac),
		Y: lerp(a.Y, b.Y, frac),
		Z: lerp(a.Z, b.Z, frac),
	}.Normalize()
}
