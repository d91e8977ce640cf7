package bloch

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GridBlueprint is the fixed lattice of slider angles drawn as reference
// markers: theta 10..170 and phi 0..340, both in 20 degree steps.
func GridBlueprint() []AnglePair {
	var out []AnglePair
	for theta := 10; theta <= 170; theta += 20 {
		for phi := 0; phi < 360; phi += 20 {
			out = append(out, AnglePair{Theta: float64(theta), Phi: float64(phi)})
		}
	}
	return out
}

// hslHex formats an HSL colour (hue in degrees, s and l in percent) as #rrggbb.
func hslHex(h, s, l float64) string {
	return colorful.Hsl(WrapDegrees(h), s/100, l/100).Hex()
}

// StateColor is the marker colour for slider azimuth phi.
func StateColor(phi float64, mode ConversionMode) string {
	l := 60.0
	if mode == FullAngle {
		l = 68
	}
	return hslHex(phi, 70, l)
}

// GridColor is the colour of a grid node at azimuth phi.
func GridColor(phi float64, mode ConversionMode) string {
	l := 42.0
	if mode == FullAngle {
		l = 52
	}
	return hslHex(phi, 55, l)
}

// MapGrid places every blueprint node through the state engine under mode.
func MapGrid(blueprint []AnglePair, mode ConversionMode) Series {
	points := make([]Point, len(blueprint))
	colors := make([]string, len(blueprint))
	for i, node := range blueprint {
		points[i] = FromAngles(node.Theta, node.Phi, mode).Point()
		colors[i] = GridColor(node.Phi, mode)
	}

	s := SeriesFromPoints(SeriesGrid, points)
	s.Colors = colors
	return s
}

// Guides returns the three axes, the equator and the prime meridian as one
// broken polyline.
func Guides() Series {
	breakPoint := Point{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

	points := []Point{
		{X: -1}, {X: 1}, breakPoint,
		{Y: -1}, {Y: 1}, breakPoint,
		{Z: -1}, {Z: 1}, breakPoint,
	}
	for phi := 0; phi <= 360; phi += 5 {
		points = append(points, PointFromAngles(90, float64(phi)))
	}
	points = append(points, breakPoint)
	for theta := 0; theta <= 180; theta += 5 {
		points = append(points, PointFromAngles(float64(theta), 0))
	}

	return SeriesFromPoints(SeriesGuides, points)
}

// Mesh is a parametric surface grid.
type Mesh struct {
	X [][]float64 `json:"x"`
	Y [][]float64 `json:"y"`
	Z [][]float64 `json:"z"`
}

// SphereSurface samples the unit sphere on a (rows+1)x(cols+1) grid.
func SphereSurface(rows, cols int) Mesh {
	m := Mesh{
		X: make([][]float64, rows+1),
		Y: make([][]float64, rows+1),
		Z: make([][]float64, rows+1),
	}
	for i := 0; i <= rows; i++ {
		theta := math.Pi * float64(i) / float64(rows)
		m.X[i] = make([]float64, cols+1)
		m.Y[i] = make([]float64, cols+1)
		m.Z[i] = make([]float64, cols+1)
		for j := 0; j <= cols; j++ {
			phi := 2 * math.Pi * float64(j) / float64(cols)
			m.X[i][j] = math.Sin(theta) * math.Cos(phi)
			m.Y[i][j] = math.Sin(theta) * math.Sin(phi)
			m.Z[i][j] = math.Cos(theta)
		}
	}
	return m
}
