package bloch

import (
	"math"
	"math/cmplx"
)

/*
ConversionMode selects how a UI polar angle becomes the amplitude angle.
HalfAngle follows the canonical cos(θ/2)|0⟩ + e^{iφ} sin(θ/2)|1⟩ form,
FullAngle feeds θ straight into cos/sin.
*/
type ConversionMode bool

const (
	HalfAngle ConversionMode = false
	FullAngle ConversionMode = true
)

func (m ConversionMode) String() string {
	if m == FullAngle {
		return "θ"
	}
	return "θ/2"
}

// Expression is the state formula shown next to the amplitudes.
func (m ConversionMode) Expression() string {
	if m == FullAngle {
		return "|ψ⟩ = cos(θ)|0⟩ + e^{iφ} sin(θ)|1⟩"
	}
	return "|ψ⟩ = cos(θ/2)|0⟩ + e^{iφ} sin(θ/2)|1⟩"
}

// poleTolerance is the horizontal radius below which phi is reported as 0.
const poleTolerance = 1e-12

/*
Qubit is a normalized single-qubit state. It is a value: every operation
returns a new Qubit and the receiver is never changed.
*/
type Qubit struct {
	alpha Amplitude // |0⟩ amplitude
	beta  Amplitude // |1⟩ amplitude
}

// NewQubit normalizes the given amplitudes. The zero vector stays zero
// rather than dividing by zero.
func NewQubit(alpha, beta Amplitude) Qubit {
	norm := math.Hypot(Magnitude(alpha), Magnitude(beta))
	if norm == 0 {
		norm = 1
	}
	return Qubit{
		alpha: Scale(alpha, 1/norm),
		beta:  Scale(beta, 1/norm),
	}
}

// Zero is |0⟩, the north pole.
func Zero() Qubit {
	return Qubit{alpha: 1}
}

// FromAngles builds the state for slider angles in degrees.
func FromAngles(thetaDeg, phiDeg float64, mode ConversionMode) Qubit {
	a := Radians(thetaDeg) / 2
	if mode == FullAngle {
		a = Radians(thetaDeg)
	}
	phi := Radians(phiDeg)

	return NewQubit(
		complex(math.Cos(a), 0),
		complex(math.Sin(a)*math.Cos(phi), math.Sin(a)*math.Sin(phi)),
	)
}

func (q Qubit) Alpha() Amplitude { return q.alpha }
func (q Qubit) Beta() Amplitude  { return q.beta }

// Norm is |alpha|² + |beta|².
func (q Qubit) Norm() float64 {
	a, b := Magnitude(q.alpha), Magnitude(q.beta)
	return a*a + b*b
}

// Point maps the state onto its Bloch vector, with x and y taken from
// 2·conj(alpha)·beta so that azimuth grows with the phase of beta.
func (q Qubit) Point() Point {
	c := Mul(Conj(q.alpha), q.beta)
	a, b := Magnitude(q.alpha), Magnitude(q.beta)
	return Point{
		X: 2 * real(c),
		Y: 2 * imag(c),
		Z: a*a - b*b,
	}
}

// Angles returns the Bloch polar angle and azimuth of the state. At the
// poles phi is 0.
func (q Qubit) Angles() AnglePair {
	p := q.Point()
	phi := 0.0
	if math.Hypot(p.X, p.Y) > poleTolerance {
		phi = WrapDegrees(Degrees(math.Atan2(p.Y, p.X)))
	}
	return AnglePair{
		Theta: Degrees(math.Acos(clamp(p.Z, -1, 1))),
		Phi:   phi,
	}
}

// SliderAngles expresses the state in the UI angles of mode, so that
// FromAngles(SliderAngles(mode), mode) lands on the same Bloch point.
func (q Qubit) SliderAngles(mode ConversionMode) AnglePair {
	a := q.Angles()
	if mode == FullAngle {
		a.Theta /= 2
	}
	return a
}

// Apply multiplies the state by m and renormalizes.
func (q Qubit) Apply(m Matrix) Qubit {
	return NewQubit(
		Add(Mul(m[0][0], q.alpha), Mul(m[0][1], q.beta)),
		Add(Mul(m[1][0], q.alpha), Mul(m[1][1], q.beta)),
	)
}

// ApplyGate is Apply on a table gate.
func (q Qubit) ApplyGate(g Gate) Qubit {
	return q.Apply(g.Matrix)
}

// Readout is what the amplitude panel displays after every state change.
type Readout struct {
	Alpha      float64 `json:"alpha"`
	Beta       float64 `json:"beta"`
	BetaPhase  float64 `json:"beta_phase"`
	Expression string  `json:"expression"`
}

// Readout reports |alpha|, |beta| and the relative phase of beta over
// alpha in [0,360). The phase is 0 at the poles, as in Angles.
func (q Qubit) Readout(mode ConversionMode) Readout {
	r := Readout{
		Alpha:      clamp(Magnitude(q.alpha), 0, 1),
		Beta:       clamp(Magnitude(q.beta), 0, 1),
		Expression: mode.Expression(),
	}
	if c := Mul(Conj(q.alpha), q.beta); Magnitude(c) > poleTolerance {
		r.BetaPhase = WrapDegrees(Degrees(cmplx.Phase(c)))
	}
	return r
}
