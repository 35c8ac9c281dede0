package quote

import (
	"fmt"
	"math/big"

	"github.com/jmolinari/stableswap-quoter/internal/curve"
)

// LPTokensForDeposit prices the LP tokens minted for depositing amt0/amt1
// into a pool holding bal0/bal1 with lpSupply tokens outstanding.
//
// The first deposit mints the geometric mean of the two amounts, fixing the
// initial share price at one share per unit of geometric-mean value. Every
// later deposit mints proportionally to invariant growth, which prices
// imbalanced deposits correctly relative to the curve.
func LPTokensForDeposit(amt0, amt1, bal0, bal1, lpSupply, amp uint64) (uint64, error) {
	if lpSupply == 0 {
		prod := new(big.Int).Mul(
			new(big.Int).SetUint64(amt0),
			new(big.Int).SetUint64(amt1),
		)
		// sqrt of a product of two uint64 values always fits in uint64.
		return curve.Isqrt(prod).Uint64(), nil
	}

	b0 := new(big.Int).SetUint64(bal0)
	b1 := new(big.Int).SetUint64(bal1)

	d0, err := curve.CalcD(b0, b1, amp)
	if err != nil {
		return 0, fmt.Errorf("deposit pricing: %w", err)
	}
	if d0.Sign() == 0 {
		return 0, fmt.Errorf("deposit pricing: %w",
			&curve.DomainError{Op: "calc_lp_tokens", Reason: "zero invariant with non-zero supply"})
	}

	n0 := new(big.Int).Add(b0, new(big.Int).SetUint64(amt0))
	n1 := new(big.Int).Add(b1, new(big.Int).SetUint64(amt1))
	d1, err := curve.CalcD(n0, n1, amp)
	if err != nil {
		return 0, fmt.Errorf("deposit pricing: %w", err)
	}

	// minted = lpSupply * (D1 - D0) / D0
	growth := new(big.Int).Sub(d1, d0)
	if growth.Sign() < 0 {
		// Truncation can shave a unit off D1 for a zero deposit.
		return 0, nil
	}
	minted := new(big.Int).SetUint64(lpSupply)
	minted.Mul(minted, growth)
	minted.Div(minted, d0)
	if !minted.IsUint64() {
		return 0, fmt.Errorf("deposit pricing: %w",
			&curve.DomainError{Op: "calc_lp_tokens", Reason: "minted amount exceeds uint64 range"})
	}
	return minted.Uint64(), nil
}

// Withdraw returns the pro-rata share of both balances for burning lpAmount
// out of lpSupply. Proportional withdrawal never moves the price, so this is
// purely linear and does not touch the invariant solver.
func Withdraw(lpAmount, bal0, bal1, lpSupply uint64) (uint64, uint64, error) {
	if lpSupply == 0 {
		return 0, 0, fmt.Errorf("withdraw: %w",
			&curve.DomainError{Op: "calc_withdraw", Reason: "zero LP supply"})
	}

	amt0, err := proRata(bal0, lpAmount, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	amt1, err := proRata(bal1, lpAmount, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	return amt0, amt1, nil
}

func proRata(balance, lpAmount, lpSupply uint64) (uint64, error) {
	v := new(big.Int).SetUint64(balance)
	v.Mul(v, new(big.Int).SetUint64(lpAmount))
	v.Div(v, new(big.Int).SetUint64(lpSupply))
	if !v.IsUint64() {
		return 0, fmt.Errorf("withdraw: %w",
			&curve.DomainError{Op: "calc_withdraw", Reason: "withdrawal exceeds uint64 range"})
	}
	return v.Uint64(), nil
}
