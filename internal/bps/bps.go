// Package bps provides basis-point fixed-point arithmetic for fee and
// slippage calculations. Amounts are uint64 token units; every product goes
// through math/big so that amount * 10000 can never overflow.
package bps

import (
	"fmt"
	"math/big"
)

// Scale is the basis-point denominator: 100% = 10000 bps.
const Scale = 10000

// BPS represents basis points (1 bps = 0.01%).
type BPS uint64

// New creates BPS from a raw basis-point count.
func New(bps uint64) BPS {
	return BPS(bps)
}

// FromPercent creates BPS from a percentage (e.g. 0.3 -> 30 bps).
func FromPercent(percent float64) BPS {
	return BPS(percent * 100)
}

// --- Arithmetic ---

// Take returns the fee portion of amount: amount * b / 10000, truncated.
// Truncation rounds the fee down, in the payer's favor.
func (b BPS) Take(amount uint64) uint64 {
	v := new(big.Int).SetUint64(amount)
	v.Mul(v, new(big.Int).SetUint64(uint64(b)))
	v.Div(v, big.NewInt(Scale))
	return v.Uint64()
}

// ApplyFloor returns amount reduced by b: amount * (10000 - b) / 10000.
// This is the minimum-output-with-slippage calculation; b >= 10000 floors
// the result at zero.
func (b BPS) ApplyFloor(amount uint64) uint64 {
	if b >= Scale {
		return 0
	}
	v := new(big.Int).SetUint64(amount)
	v.Mul(v, new(big.Int).SetUint64(Scale-uint64(b)))
	v.Div(v, big.NewInt(Scale))
	return v.Uint64()
}

// --- Comparison ---

// IsZero returns true if b is zero.
func (b BPS) IsZero() bool {
	return b == 0
}

// --- Conversion ---

// Percent returns the rate as a percentage string (e.g. "0.30%").
func (b BPS) Percent() string {
	return fmt.Sprintf("%.2f%%", float64(b)/100.0)
}

// String returns the raw basis-point count (e.g. "30 bps").
func (b BPS) String() string {
	return fmt.Sprintf("%d bps", uint64(b))
}

// Uint64 returns the raw basis-point value.
func (b BPS) Uint64() uint64 {
	return uint64(b)
}
