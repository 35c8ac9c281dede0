package quote

import (
	"errors"
	"math/big"
	"testing"

	"github.com/jmolinari/stableswap-quoter/internal/bps"
	"github.com/jmolinari/stableswap-quoter/internal/curve"
)

func TestMinAmountOut(t *testing.T) {
	tests := []struct {
		expected uint64
		slippage bps.BPS
		want     uint64
	}{
		{1_000_000, 50, 995_000},
		{1_000_000, 0, 1_000_000},
		{1_000_000, 10_000, 0},
		{0, 50, 0},
		{999, 100, 989}, // 999*9900/10000 truncates
	}

	for _, tt := range tests {
		if got := MinAmountOut(tt.expected, tt.slippage); got != tt.want {
			t.Errorf("MinAmountOut(%d, %d) = %d, want %d", tt.expected, tt.slippage, got, tt.want)
		}
	}
}

func TestPriceImpact_ZeroInput(t *testing.T) {
	_, err := PriceImpact(1_000_000_000, 1_000_000_000, 0, 100, bps.BPS(30))
	if err == nil {
		t.Fatal("expected failure for zero input amount")
	}

	var de *curve.DomainError
	if !errors.As(err, &de) {
		t.Errorf("expected DomainError, got %v", err)
	}
}

func TestPriceImpact_SmallTradeOnDeepPool(t *testing.T) {
	impact, err := PriceImpact(1_000_000_000, 1_000_000_000, 1_000_000, 100, bps.BPS(30))
	if err != nil {
		t.Fatalf("PriceImpact failed: %v", err)
	}

	// The 30 bps fee alone puts a floor of 0.3% under the impact.
	if impact < 3_000_000 {
		t.Errorf("impact %d below the fee floor", impact)
	}
	// A tiny trade on a deep balanced pool should cost well under 1%.
	if impact > 10_000_000 {
		t.Errorf("impact %d too large for a 0.1%% trade", impact)
	}
}

func TestPriceImpact_GrowsWithTradeSize(t *testing.T) {
	small, err := PriceImpact(1_000_000_000, 1_000_000_000, 1_000_000, 100, bps.BPS(30))
	if err != nil {
		t.Fatalf("small trade: %v", err)
	}
	large, err := PriceImpact(1_000_000_000, 1_000_000_000, 500_000_000, 100, bps.BPS(30))
	if err != nil {
		t.Fatalf("large trade: %v", err)
	}

	if large <= small {
		t.Errorf("impact did not grow with size: small=%d large=%d", small, large)
	}
}

func TestVirtualPrice_FreshPool(t *testing.T) {
	// Balanced pool whose LP supply equals the invariant: virtual price 1e18.
	vp, err := VirtualPrice(1_000_000_000, 1_000_000_000, 2_000_000_000, 100)
	if err != nil {
		t.Fatalf("VirtualPrice failed: %v", err)
	}

	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	diff := new(big.Int).Sub(vp, one)
	diff.Abs(diff)
	// Solver tolerance of a couple of units on D translates to ~1e9 here.
	if diff.Cmp(big.NewInt(2_000_000_000)) > 0 {
		t.Errorf("virtual price %s too far from 1e18", vp)
	}
}

func TestVirtualPrice_GrowsWithBalances(t *testing.T) {
	base, err := VirtualPrice(1_000_000_000, 1_000_000_000, 2_000_000_000, 100)
	if err != nil {
		t.Fatalf("base: %v", err)
	}
	// Same supply, fatter balances: fees accrued to the pool.
	grown, err := VirtualPrice(1_100_000_000, 1_100_000_000, 2_000_000_000, 100)
	if err != nil {
		t.Fatalf("grown: %v", err)
	}

	if grown.Cmp(base) <= 0 {
		t.Errorf("virtual price did not grow: base=%s grown=%s", base, grown)
	}
}

func TestVirtualPrice_ZeroSupply(t *testing.T) {
	_, err := VirtualPrice(1_000_000_000, 1_000_000_000, 0, 100)
	if err == nil {
		t.Fatal("expected failure for zero LP supply")
	}

	var de *curve.DomainError
	if !errors.As(err, &de) {
		t.Errorf("expected DomainError, got %v", err)
	}
}

func TestCheckImbalance(t *testing.T) {
	tests := []struct {
		name     string
		bal0     uint64
		bal1     uint64
		maxRatio uint64
		want     bool
	}{
		{"equal balances", 1_000_000, 1_000_000, 10, true},
		{"5x within 10x", 5_000_000, 1_000_000, 10, true},
		{"exactly at limit", 10_000_000, 1_000_000, 10, true},
		{"15x beyond 10x", 15_000_000, 1_000_000, 10, false},
		{"order independent", 1_000_000, 15_000_000, 10, false},
		{"empty side", 0, 1_000_000, 10, false},
		{"both empty", 0, 0, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CheckImbalance(tt.bal0, tt.bal1, tt.maxRatio); got != tt.want {
				t.Errorf("CheckImbalance(%d, %d, %d) = %v, want %v",
					tt.bal0, tt.bal1, tt.maxRatio, got, tt.want)
			}
		})
	}
}
