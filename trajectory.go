package bloch

// DefaultTrajectoryEpsilon is the per-axis distance a committed point must
// move before it is recorded.
const DefaultTrajectoryEpsilon = 1e-4

/*
Trajectory is the ordered history of committed sphere points. It only grows,
except through Reset. Consecutive points closer than epsilon on every axis
are collapsed so slider jitter cannot produce zero-length segments.
*/
type Trajectory struct {
	points  []Point
	epsilon float64
	steps   int
}

// NewTrajectory starts a history at origin. steps is the sample count per
// segment used by Path.
func NewTrajectory(origin Point, epsilon float64, steps int) *Trajectory {
	if epsilon <= 0 {
		epsilon = DefaultTrajectoryEpsilon
	}
	if steps < 1 {
		steps = DefaultPathSteps
	}
	t := &Trajectory{epsilon: epsilon, steps: steps}
	t.Reset(origin)
	return t
}

// Reset truncates the history to p.
func (t *Trajectory) Reset(p Point) {
	t.points = append(t.points[:0], p)
}

// Append records p unless it is within epsilon of the last point on every
// axis. It reports whether p was recorded.
func (t *Trajectory) Append(p Point) bool {
	if n := len(t.points); n > 0 && t.points[n-1].MaxAxisDelta(p) <= t.epsilon {
		return false
	}
	t.points = append(t.points, p)
	return true
}

func (t *Trajectory) Len() int {
	return len(t.points)
}

// Last returns the most recent point, or false on an empty history.
func (t *Trajectory) Last() (Point, bool) {
	if len(t.points) == 0 {
		return Point{}, false
	}
	return t.points[len(t.points)-1], true
}

// Points returns a copy of the history.
func (t *Trajectory) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// Vertex is one entry of a materialized path. A Break vertex carries no
// position and tells the renderer to lift the pen.
type Vertex struct {
	Point
	Break bool
}

// Path is a polyline made of geodesic segments separated by breaks.
type Path []Vertex

// Segments splits the path at its breaks.
func (p Path) Segments() [][]Point {
	var (
		out [][]Point
		cur []Point
	)
	for _, v := range p {
		if v.Break {
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, v.Point)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Path samples every consecutive pair of the history along its great circle.
// A history with fewer than two points yields an empty path.
func (t *Trajectory) Path() Path {
	if len(t.points) < 2 {
		return Path{}
	}

	var out Path
	for i := 1; i < len(t.points); i++ {
		for _, p := range SampleGreatCircle(t.points[i-1], t.points[i], t.steps) {
			out = append(out, Vertex{Point: p})
		}
		out = append(out, Vertex{Break: true})
	}

	return trimBreaks(out)
}

func trimBreaks(p Path) Path {
	for len(p) > 0 && p[0].Break {
		p = p[1:]
	}
	for len(p) > 0 && p[len(p)-1].Break {
		p = p[:len(p)-1]
	}
	return p
}
