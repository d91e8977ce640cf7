package bloch

import "math"

// Amplitude is a complex probability amplitude. The arithmetic below is
// closed over it and never fails.
type Amplitude = complex128

func Add(a, b Amplitude) Amplitude {
	return a + b
}

// Mul is (a+bi)(c+di) = (ac-bd) + (ad+bc)i.
func Mul(a, b Amplitude) Amplitude {
	return complex(
		real(a)*real(b)-imag(a)*imag(b),
		real(a)*imag(b)+imag(a)*real(b),
	)
}

// Scale multiplies by a real scalar.
func Scale(a Amplitude, s float64) Amplitude {
	return complex(real(a)*s, imag(a)*s)
}

func Conj(a Amplitude) Amplitude {
	return complex(real(a), -imag(a))
}

func Magnitude(a Amplitude) float64 {
	return math.Hypot(real(a), imag(a))
}
