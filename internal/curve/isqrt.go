// Package curve implements the StableSwap invariant math: integer square
// root, the 2-asset and N-asset invariant solvers, the shared counterpart
// balance iterator, and the amplification ramp.
//
// Everything operates on math/big integers so that intermediate products of
// three 64-bit-range balances never overflow. All functions are pure and
// stateless; concurrent callers need no coordination.
package curve

import "math/big"

var (
	one  = big.NewInt(1)
	two  = big.NewInt(2)
	four = big.NewInt(4)
)

// Isqrt returns the floor of the square root of n using Newton's method.
// The iterate x' = (x + n/x) / 2 decreases strictly until it crosses the
// root, so termination needs no iteration cap. n must be non-negative.
func Isqrt(n *big.Int) *big.Int {
	// 0 and 1 are fixed points; returning them directly also avoids a
	// divide-by-zero on the first iterate for n = 0.
	if n.Cmp(two) < 0 {
		return new(big.Int).Set(n)
	}

	x := new(big.Int).Set(n)
	y := new(big.Int).Div(n, x)
	y.Add(y, x)
	y.Div(y, two)

	for y.Cmp(x) < 0 {
		x.Set(y)
		y.Div(n, x)
		y.Add(y, x)
		y.Div(y, two)
	}

	return x
}
