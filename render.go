package bloch

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Series names drawn by a Session.
const (
	SeriesGrid       = "grid"
	SeriesGuides     = "guides"
	SeriesState      = "state"
	SeriesTrajectory = "trajectory"
)

/*
Series is a named, ordered list of coordinate triples with optional colours.
A NaN in all three coordinates is a break marker; it is encoded as null so a
plotting surface lifts the pen there.
*/
type Series struct {
	Name   string
	X      []float64
	Y      []float64
	Z      []float64
	Colors []string
}

// Renderer is the plotting surface. Redraw replaces the named series with
// s immediately; it is called once per animation frame during transitions.
type Renderer interface {
	Redraw(name string, s Series) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(name string, s Series) error

func (f RendererFunc) Redraw(name string, s Series) error {
	return f(name, s)
}

// SeriesFromPoints builds a series from sphere points.
func SeriesFromPoints(name string, points []Point) Series {
	s := Series{
		Name: name,
		X:    make([]float64, len(points)),
		Y:    make([]float64, len(points)),
		Z:    make([]float64, len(points)),
	}
	for i, p := range points {
		s.X[i], s.Y[i], s.Z[i] = p.X, p.Y, p.Z
	}
	return s
}

// SeriesFromPath builds a series from a path, turning breaks into NaN.
func SeriesFromPath(name string, path Path) Series {
	points := make([]Point, len(path))
	for i, v := range path {
		if v.Break {
			points[i] = Point{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}
			continue
		}
		points[i] = v.Point
	}
	return SeriesFromPoints(name, points)
}

func (s Series) Len() int {
	return len(s.X)
}

// At returns the i-th coordinate triple.
func (s Series) At(i int) Point {
	return Point{X: s.X[i], Y: s.Y[i], Z: s.Z[i]}
}

// IsBreak reports whether the i-th entry is a break marker.
func (s Series) IsBreak(i int) bool {
	return math.IsNaN(s.X[i]) && math.IsNaN(s.Y[i]) && math.IsNaN(s.Z[i])
}

// Clone deep-copies the coordinate and colour slices.
func (s Series) Clone() Series {
	return Series{
		Name:   s.Name,
		X:      append([]float64(nil), s.X...),
		Y:      append([]float64(nil), s.Y...),
		Z:      append([]float64(nil), s.Z...),
		Colors: append([]string(nil), s.Colors...),
	}
}

func (s Series) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"series":`)
	name, err := json.Marshal(s.Name)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	for _, axis := range []struct {
		key  string
		vals []float64
	}{{"x", s.X}, {"y", s.Y}, {"z", s.Z}} {
		buf.WriteString(`,"` + axis.key + `":[`)
		for i, v := range axis.vals {
			if i > 0 {
				buf.WriteByte(',')
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				buf.WriteString("null")
				continue
			}
			buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		buf.WriteByte(']')
	}

	if len(s.Colors) > 0 {
		colors, err := json.Marshal(s.Colors)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"colors":`)
		buf.Write(colors)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
