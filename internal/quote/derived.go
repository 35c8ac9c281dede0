package quote

import (
	"fmt"
	"math/big"

	"github.com/jmolinari/stableswap-quoter/internal/bps"
	"github.com/jmolinari/stableswap-quoter/internal/curve"
)

// ImpactScale is the denominator for price impact values: parts per 1e9.
const ImpactScale = 1_000_000_000

var (
	impactScaleBig  = big.NewInt(ImpactScale)
	virtualPriceOne = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
)

// MinAmountOut reduces an expected output by the slippage tolerance:
// expected * (10000 - slippageBPS) / 10000.
func MinAmountOut(expected uint64, slippage bps.BPS) uint64 {
	return slippage.ApplyFloor(expected)
}

// PriceImpact simulates the swap and reports how far the execution rate falls
// short of par, in parts per 1e9: 1e9 - amountOut*1e9/amountIn. A zero input
// amount is a domain failure rather than a division by zero; this is an
// explicit precondition check, not an upstream guarantee.
func PriceImpact(balIn, balOut, amountIn, amp uint64, fee bps.BPS) (uint64, error) {
	if amountIn == 0 {
		return 0, fmt.Errorf("price impact: %w",
			&curve.DomainError{Op: "calc_price_impact", Reason: "zero input amount"})
	}

	out, err := SimulateSwap(balIn, balOut, amountIn, amp, fee)
	if err != nil {
		return 0, fmt.Errorf("price impact: %w", err)
	}

	ratio := new(big.Int).SetUint64(out)
	ratio.Mul(ratio, impactScaleBig)
	ratio.Div(ratio, new(big.Int).SetUint64(amountIn))

	impact := new(big.Int).Sub(impactScaleBig, ratio)
	if impact.Sign() < 0 {
		// Execution above par (possible when decimals differ); report zero
		// impact rather than a negative value.
		return 0, nil
	}
	return impact.Uint64(), nil
}

// VirtualPrice returns the invariant value per LP token, scaled by 1e18.
// It grows as fees accrue and is the standard health measure for a pool.
func VirtualPrice(bal0, bal1, lpSupply, amp uint64) (*big.Int, error) {
	if lpSupply == 0 {
		return nil, fmt.Errorf("virtual price: %w",
			&curve.DomainError{Op: "calc_virtual_price", Reason: "zero LP supply"})
	}

	d, err := curve.CalcD(
		new(big.Int).SetUint64(bal0),
		new(big.Int).SetUint64(bal1),
		amp,
	)
	if err != nil {
		return nil, fmt.Errorf("virtual price: %w", err)
	}

	vp := new(big.Int).Mul(d, virtualPriceOne)
	vp.Div(vp, new(big.Int).SetUint64(lpSupply))
	return vp, nil
}

// CheckImbalance reports whether the two balances are within maxRatio of each
// other: max*100 / min <= maxRatio*100. A pool with an empty side is always
// imbalanced.
func CheckImbalance(bal0, bal1, maxRatio uint64) bool {
	if bal0 == 0 || bal1 == 0 {
		return false
	}

	lo, hi := bal0, bal1
	if lo > hi {
		lo, hi = hi, lo
	}

	ratio := new(big.Int).SetUint64(hi)
	ratio.Mul(ratio, big.NewInt(100))
	ratio.Div(ratio, new(big.Int).SetUint64(lo))

	limit := new(big.Int).SetUint64(maxRatio)
	limit.Mul(limit, big.NewInt(100))

	return ratio.Cmp(limit) <= 0
}
