// Package pool handles the on-chain representation of a StableSwap pool:
// decoding the fixed-layout account record, laying out instruction payloads,
// and deriving the pool authority address. It never touches the network and
// never signs anything; it is pure byte transcoding around the math core.
package pool

import (
	"github.com/gagliardetto/solana-go"

	"github.com/jmolinari/stableswap-quoter/internal/curve"
)

// State is the decoded pool account record. All multi-byte integers are
// little-endian at fixed offsets; see codec.go for the exact layout.
type State struct {
	TokenAMint solana.PublicKey
	TokenBMint solana.PublicKey
	TokenAVault solana.PublicKey
	TokenBVault solana.PublicKey
	LPMint     solana.PublicKey

	// Amp ramp schedule. The effective amp at any instant is derived, never
	// stored.
	InitialAmp  uint64
	TargetAmp   uint64
	RampStartTs int64
	RampStopTs  int64

	TradeFeeBPS uint64

	BalanceA uint64
	BalanceB uint64
	LPSupply uint64
}

// AmpAt returns the effective amplification coefficient at the given unix
// timestamp, interpolated along the ramp schedule.
func (s *State) AmpAt(now int64) uint64 {
	return curve.CurrentAmp(s.InitialAmp, s.TargetAmp, s.RampStartTs, s.RampStopTs, now)
}
