package quote

import (
	"fmt"
	"math/big"
	"time"

	"github.com/jmolinari/stableswap-quoter/internal/bps"
	"github.com/jmolinari/stableswap-quoter/internal/pool"
)

// Quoter prices actions against a single pool state snapshot. It resolves
// the amplification coefficient from the ramp at quote time, so quotes taken
// during a ramp track the on-chain value.
type Quoter struct {
	state *pool.State
	now   func() int64
}

// NewQuoter builds a Quoter over a decoded pool state.
func NewQuoter(state *pool.State) *Quoter {
	return &Quoter{
		state: state,
		now:   func() int64 { return time.Now().Unix() },
	}
}

// NewQuoterAt builds a Quoter with a fixed clock, for deterministic pricing
// at a known timestamp.
func NewQuoterAt(state *pool.State, ts int64) *Quoter {
	return &Quoter{
		state: state,
		now:   func() int64 { return ts },
	}
}

// State returns the underlying pool state.
func (q *Quoter) State() *pool.State {
	return q.state
}

// Amp returns the effective amplification coefficient at the quoter's clock.
func (q *Quoter) Amp() uint64 {
	return q.state.AmpAt(q.now())
}

func (q *Quoter) fee() bps.BPS {
	return bps.BPS(q.state.TradeFeeBPS)
}

// SwapQuote is the full pricing of one swap.
type SwapQuote struct {
	AmountIn     uint64
	AmountOut    uint64
	MinAmountOut uint64
	// ImpactPPB is the price impact in parts per 1e9 (ImpactScale).
	ImpactPPB uint64
}

// SwapAToB quotes a swap selling token A for token B.
func (q *Quoter) SwapAToB(amountIn uint64, slippage bps.BPS) (SwapQuote, error) {
	return q.swap(q.state.BalanceA, q.state.BalanceB, amountIn, slippage)
}

// SwapBToA quotes a swap selling token B for token A.
func (q *Quoter) SwapBToA(amountIn uint64, slippage bps.BPS) (SwapQuote, error) {
	return q.swap(q.state.BalanceB, q.state.BalanceA, amountIn, slippage)
}

func (q *Quoter) swap(balIn, balOut, amountIn uint64, slippage bps.BPS) (SwapQuote, error) {
	amp := q.Amp()

	out, err := SimulateSwap(balIn, balOut, amountIn, amp, q.fee())
	if err != nil {
		return SwapQuote{}, err
	}

	impact, err := PriceImpact(balIn, balOut, amountIn, amp, q.fee())
	if err != nil {
		return SwapQuote{}, err
	}

	return SwapQuote{
		AmountIn:     amountIn,
		AmountOut:    out,
		MinAmountOut: MinAmountOut(out, slippage),
		ImpactPPB:    impact,
	}, nil
}

// Deposit quotes the LP tokens minted for depositing amtA and amtB.
func (q *Quoter) Deposit(amtA, amtB uint64) (uint64, error) {
	return LPTokensForDeposit(amtA, amtB, q.state.BalanceA, q.state.BalanceB, q.state.LPSupply, q.Amp())
}

// Withdraw quotes the token amounts returned for burning lpAmount.
func (q *Quoter) Withdraw(lpAmount uint64) (uint64, uint64, error) {
	return Withdraw(lpAmount, q.state.BalanceA, q.state.BalanceB, q.state.LPSupply)
}

// VirtualPrice returns the pool's invariant value per LP token, scaled by
// 1e18.
func (q *Quoter) VirtualPrice() (*big.Int, error) {
	return VirtualPrice(q.state.BalanceA, q.state.BalanceB, q.state.LPSupply, q.Amp())
}

// Balanced reports whether the pool's balances are within maxRatio of each
// other. Quoting against a heavily imbalanced pool is legal but the caller
// usually wants to flag it.
func (q *Quoter) Balanced(maxRatio uint64) bool {
	return CheckImbalance(q.state.BalanceA, q.state.BalanceB, maxRatio)
}

// SwapInstruction builds the on-chain instruction payload matching a quote:
// the quoted input amount with the slippage-protected minimum output.
func (sq SwapQuote) SwapInstruction() pool.SwapData {
	return pool.SwapData{
		AmountIn:     sq.AmountIn,
		MinAmountOut: sq.MinAmountOut,
	}
}

// String renders the quote for logs.
func (sq SwapQuote) String() string {
	return fmt.Sprintf("in=%d out=%d min_out=%d impact_ppb=%d",
		sq.AmountIn, sq.AmountOut, sq.MinAmountOut, sq.ImpactPPB)
}
