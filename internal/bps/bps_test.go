package bps

import (
	"math"
	"testing"
)

func TestTake(t *testing.T) {
	cases := []struct {
		amount uint64
		bps    BPS
		want   uint64
	}{
		{100_000_000, 30, 300_000},   // 0.3% of 1e8
		{10_000, 1, 1},               // 1 bps, exact
		{9_999, 1, 0},                // truncates down in the payer's favor
		{0, 30, 0},
		{100_000_000, 0, 0},
		{math.MaxUint64, 10000, math.MaxUint64}, // 100% survives the big.Int path
	}

	for _, tc := range cases {
		if got := tc.bps.Take(tc.amount); got != tc.want {
			t.Errorf("BPS(%d).Take(%d) = %d, want %d", tc.bps, tc.amount, got, tc.want)
		}
	}
}

func TestApplyFloor(t *testing.T) {
	cases := []struct {
		amount uint64
		bps    BPS
		want   uint64
	}{
		{100_000_000, 50, 99_500_000}, // 0.5% slippage
		{100_000_000, 0, 100_000_000},
		{100_000_000, 10000, 0}, // 100% slippage floors at zero
		{100_000_000, 20000, 0}, // out-of-range rates clamp, not wrap
		{3, 1, 2},               // truncation
	}

	for _, tc := range cases {
		if got := tc.bps.ApplyFloor(tc.amount); got != tc.want {
			t.Errorf("BPS(%d).ApplyFloor(%d) = %d, want %d", tc.bps, tc.amount, got, tc.want)
		}
	}
}

func TestTakePlusFloorConsistency(t *testing.T) {
	// Taking the fee and keeping the remainder must not create or destroy
	// units beyond the two independent truncations.
	amount := uint64(123_456_789)
	fee := BPS(30)

	taken := fee.Take(amount)
	kept := fee.ApplyFloor(amount)
	if taken+kept > amount || amount-(taken+kept) > 1 {
		t.Errorf("take %d + keep %d inconsistent with amount %d", taken, kept, amount)
	}
}
