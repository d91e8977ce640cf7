package bloch

import (
	"math"
	"math/cmplx"
)

/*
GateKind identifies one of the fixed single-qubit operators. The set is
closed: anything outside it is treated as an unknown key and ignored by the
session.
*/
type GateKind int

const (
	GateX GateKind = iota
	GateY
	GateZ
	GateH
	GateS
	GateT
)

var gateKeys = [...]string{"X", "Y", "Z", "H", "S", "T"}

func (k GateKind) String() string {
	if k < 0 || int(k) >= len(gateKeys) {
		return "?"
	}
	return gateKeys[k]
}

// Matrix is a 2x2 complex operator acting on (alpha, beta).
type Matrix [2][2]Amplitude

// Mul returns m·o, so (m.Mul(o)) applied to a state is o first, then m.
func (m Matrix) Mul(o Matrix) Matrix {
	var out Matrix
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = Add(Mul(m[i][0], o[0][j]), Mul(m[i][1], o[1][j]))
		}
	}
	return out
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return Matrix{
		{Conj(m[0][0]), Conj(m[1][0])},
		{Conj(m[0][1]), Conj(m[1][1])},
	}
}

/*
Gate pairs a kind with its immutable matrix. Gates are only obtained through
LookupGate or Gates, which hand out copies of the package table.
*/
type Gate struct {
	Kind   GateKind
	Matrix Matrix
}

// invSqrt2 is shared by the Hadamard entries.
const invSqrt2 = 1 / math.Sqrt2

var gateTable = [...]Matrix{
	GateX: {
		{0, 1},
		{1, 0},
	},
	GateY: {
		{0, -1i},
		{1i, 0},
	},
	GateZ: {
		{1, 0},
		{0, -1},
	},
	GateH: {
		{invSqrt2, invSqrt2},
		{invSqrt2, -invSqrt2},
	},
	GateS: {
		{1, 0},
		{0, 1i},
	},
	GateT: {
		{1, 0},
		{0, cmplx.Exp(complex(0, math.Pi/4))},
	},
}

// LookupGate resolves a UI key ("X", "H", ...). Unknown keys report false.
func LookupGate(key string) (Gate, bool) {
	for i, k := range gateKeys {
		if k == key {
			return Gate{Kind: GateKind(i), Matrix: gateTable[i]}, true
		}
	}
	return Gate{}, false
}

// Gates returns the full table in declaration order.
func Gates() []Gate {
	out := make([]Gate, len(gateTable))
	for i, m := range gateTable {
		out[i] = Gate{Kind: GateKind(i), Matrix: m}
	}
	return out
}
