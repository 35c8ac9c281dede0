// Package quote prices trades, deposits and withdrawals against the
// StableSwap curve. The public API works in uint64 token amounts (smallest
// indivisible unit); all intermediate arithmetic runs through the big-integer
// solvers in internal/curve and overflow is checked at the uint64 boundary.
//
// Every function here is pure: a failure means "this action cannot be safely
// priced with these inputs", never a partial result.
package quote

import (
	"fmt"
	"math/big"

	"github.com/jmolinari/stableswap-quoter/internal/bps"
	"github.com/jmolinari/stableswap-quoter/internal/curve"
)

// SimulateSwap computes the output amount for swapping amountIn of the input
// asset against a pool with the given balances, net of the trade fee. The fee
// truncates down, in the trader's favor, matching on-chain rounding. A fee at
// or above full scale is a domain failure: the fee field arrives from decoded
// account data, so a corrupt record must not wrap the subtraction into a
// giant output.
func SimulateSwap(balIn, balOut, amountIn, amp uint64, fee bps.BPS) (uint64, error) {
	if fee >= bps.Scale {
		return 0, fmt.Errorf("simulate swap: %w",
			&curve.DomainError{Op: "simulate_swap", Reason: "trade fee at or above full scale"})
	}

	gross, err := simulateGross(balIn, balOut, amountIn, amp)
	if err != nil {
		return 0, err
	}
	return gross - fee.Take(gross), nil
}

// SimulateSwapNoFee is the fee-exempt variant used for migration flows; it
// follows the identical procedure minus the fee step.
func SimulateSwapNoFee(balIn, balOut, amountIn, amp uint64) (uint64, error) {
	return simulateGross(balIn, balOut, amountIn, amp)
}

// simulateGross runs the solver composition shared by both variants:
// D from the current balances, then the counterpart balance after the input
// side grows, then the difference on the output side.
func simulateGross(balIn, balOut, amountIn, amp uint64) (uint64, error) {
	bIn := new(big.Int).SetUint64(balIn)
	bOut := new(big.Int).SetUint64(balOut)

	d, err := curve.CalcD(bIn, bOut, amp)
	if err != nil {
		return 0, fmt.Errorf("simulate swap: %w", err)
	}

	newIn := new(big.Int).Add(bIn, new(big.Int).SetUint64(amountIn))
	newOut, err := curve.CalcY(newIn, d, amp)
	if err != nil {
		return 0, fmt.Errorf("simulate swap: %w", err)
	}

	gross := new(big.Int).Sub(bOut, newOut)
	if gross.Sign() < 0 {
		// The 1-unit solver tolerance can land a hair past the current
		// balance for a zero-size trade; clamp instead of going negative.
		return 0, nil
	}
	if !gross.IsUint64() {
		return 0, fmt.Errorf("simulate swap: %w",
			&curve.DomainError{Op: "simulate_swap", Reason: "output amount exceeds uint64 range"})
	}
	return gross.Uint64(), nil
}
