package curve

import (
	"errors"
	"math/big"
	"testing"
)

func bigU(n uint64) *big.Int { return new(big.Int).SetUint64(n) }

// absDiff returns |a - b| as a fresh integer.
func absDiff(a, b *big.Int) *big.Int {
	return new(big.Int).Abs(new(big.Int).Sub(a, b))
}

// TestCalcDEmptyPool: an empty pool has invariant zero for any amp, without
// iterating.
func TestCalcDEmptyPool(t *testing.T) {
	for _, amp := range []uint64{1, 100, 100_000} {
		d, err := CalcD(bigU(0), bigU(0), amp)
		if err != nil {
			t.Fatalf("amp=%d: unexpected error: %v", amp, err)
		}
		if d.Sign() != 0 {
			t.Errorf("amp=%d: D = %s, want 0", amp, d)
		}
	}
}

// TestCalcDEqualBalances: for x == y the curve is exactly balanced and D
// converges to 2x regardless of amp (2x is a fixed point of the update).
func TestCalcDEqualBalances(t *testing.T) {
	x := bigU(1_000_000_000)
	want := bigU(2_000_000_000)

	for _, amp := range []uint64{1, 10, 100, 1000, 10_000, 100_000} {
		d, err := CalcD(x, x, amp)
		if err != nil {
			t.Fatalf("amp=%d: %v", amp, err)
		}
		if diff := absDiff(d, want); diff.Cmp(two) > 0 {
			t.Errorf("amp=%d: D = %s, want %s ± 2", amp, d, want)
		}
	}
}

// TestCalcDImbalanced: for unequal balances D sits strictly between the
// constant-product and constant-sum extremes, and grows with amp.
func TestCalcDImbalanced(t *testing.T) {
	x, y := bigU(2_000_000_000), bigU(500_000_000)
	sum := new(big.Int).Add(x, y)

	var prev *big.Int
	for _, amp := range []uint64{1, 10, 100, 1000} {
		d, err := CalcD(x, y, amp)
		if err != nil {
			t.Fatalf("amp=%d: %v", amp, err)
		}
		if d.Cmp(sum) > 0 {
			t.Errorf("amp=%d: D = %s exceeds constant-sum bound %s", amp, d, sum)
		}
		if prev != nil && d.Cmp(prev) < 0 {
			t.Errorf("amp=%d: D = %s decreased from %s; higher amp must pull D toward the sum", amp, d, prev)
		}
		prev = d
	}
}

// TestCalcDZeroSingleBalance: one empty side degenerates the d_p denominator
// and must surface as a ConvergenceError, never a panic.
func TestCalcDZeroSingleBalance(t *testing.T) {
	_, err := CalcD(bigU(0), bigU(1_000_000_000), 100)
	var convErr *ConvergenceError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
	if convErr.Op != "calc_d" {
		t.Errorf("Op = %q, want calc_d", convErr.Op)
	}
}

// TestCalcYRoundTrip: solving the invariant back from one balance must
// recover the other within the 1-unit integer tolerance.
func TestCalcYRoundTrip(t *testing.T) {
	cases := []struct {
		b0, b1 uint64
		amp    uint64
	}{
		{1_000_000_000, 1_000_000_000, 100},
		{1_000_000_000, 500_000_000, 100},
		{1_000_000_000, 500_000_000, 1},
		{3_000_000_000, 700_000_000, 1000},
		{123_456_789, 987_654_321, 85},
	}

	for _, tc := range cases {
		b0, b1 := bigU(tc.b0), bigU(tc.b1)

		d, err := CalcD(b0, b1, tc.amp)
		if err != nil {
			t.Fatalf("CalcD(%d, %d, %d): %v", tc.b0, tc.b1, tc.amp, err)
		}

		y, err := CalcY(b0, d, tc.amp)
		if err != nil {
			t.Fatalf("CalcY(%d, D, %d): %v", tc.b0, tc.amp, err)
		}

		if diff := absDiff(y, b1); diff.Cmp(one) > 0 {
			t.Errorf("round trip (%d, %d, amp=%d): got %s, want %d ± 1",
				tc.b0, tc.b1, tc.amp, y, tc.b1)
		}
	}
}

// TestCalcYZeroBalance: a zero new balance has no counterpart on the curve.
func TestCalcYZeroBalance(t *testing.T) {
	d, err := CalcD(bigU(1_000_000_000), bigU(1_000_000_000), 100)
	if err != nil {
		t.Fatal(err)
	}

	_, err = CalcY(bigU(0), d, 100)
	var convErr *ConvergenceError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected ConvergenceError, got %v", err)
	}
}

// TestCalcDIdempotent: the solver is a pure function; identical inputs must
// produce identical outputs across calls.
func TestCalcDIdempotent(t *testing.T) {
	x, y := bigU(1_234_567_890), bigU(987_654_321)

	first, err := CalcD(x, y, 150)
	if err != nil {
		t.Fatal(err)
	}
	second, err := CalcD(x, y, 150)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cmp(second) != 0 {
		t.Errorf("non-deterministic solver: %s vs %s", first, second)
	}
}

// TestCalcDDoesNotMutateInputs: balances are value objects.
func TestCalcDDoesNotMutateInputs(t *testing.T) {
	x, y := bigU(1_000_000_000), bigU(500_000_000)
	if _, err := CalcD(x, y, 100); err != nil {
		t.Fatal(err)
	}
	if x.Uint64() != 1_000_000_000 || y.Uint64() != 500_000_000 {
		t.Errorf("inputs mutated: x=%s y=%s", x, y)
	}
}
