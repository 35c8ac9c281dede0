package curve

import (
	"math/big"
	"testing"
)

// TestIsqrtKnownValues checks the documented fixed points and a few round
// numbers including the 1e18 range used for 18-decimal token amounts.
func TestIsqrtKnownValues(t *testing.T) {
	cases := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{9, 3},
		{10, 3},
		{1_000_000, 1000},
		{1_000_000_000_000_000_000, 1_000_000_000},
	}

	for _, tc := range cases {
		got := Isqrt(new(big.Int).SetUint64(tc.n))
		if got.Uint64() != tc.want {
			t.Errorf("Isqrt(%d) = %s, want %d", tc.n, got, tc.want)
		}
	}
}

// TestIsqrtFloorProperty verifies x^2 <= n < (x+1)^2 across a dense small
// range, which exercises every branch of the Newton loop.
func TestIsqrtFloorProperty(t *testing.T) {
	for n := uint64(0); n <= 5000; n++ {
		nBig := new(big.Int).SetUint64(n)
		x := Isqrt(nBig)

		sq := new(big.Int).Mul(x, x)
		if sq.Cmp(nBig) > 0 {
			t.Fatalf("Isqrt(%d) = %s: square exceeds input", n, x)
		}

		next := new(big.Int).Add(x, big.NewInt(1))
		next.Mul(next, next)
		if next.Cmp(nBig) <= 0 {
			t.Fatalf("Isqrt(%d) = %s: not the floor", n, x)
		}
	}
}

// TestIsqrtDoesNotMutateInput guards the aliasing behavior: the result must
// be a fresh integer.
func TestIsqrtDoesNotMutateInput(t *testing.T) {
	n := new(big.Int).SetUint64(123456789)
	_ = Isqrt(n)
	if n.Uint64() != 123456789 {
		t.Errorf("input mutated: %s", n)
	}
}
