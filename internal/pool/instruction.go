package pool

import "encoding/binary"

// Instruction payloads are a 1-byte operation tag followed by little-endian
// u64 fields. This is pure data layout consumed by the execution runtime;
// building and signing transactions around these payloads is out of scope.

// Operation tags.
const (
	OpSwap     byte = 1
	OpDeposit  byte = 2
	OpWithdraw byte = 3
)

// SwapData carries a computed swap: the input amount and the slippage-reduced
// minimum acceptable output.
type SwapData struct {
	AmountIn     uint64
	MinAmountOut uint64
}

// Encode lays out [tag][amount_in][min_amount_out].
func (d SwapData) Encode() []byte {
	buf := make([]byte, 17)
	buf[0] = OpSwap
	binary.LittleEndian.PutUint64(buf[1:9], d.AmountIn)
	binary.LittleEndian.PutUint64(buf[9:17], d.MinAmountOut)
	return buf
}

// DepositData carries a priced deposit: the maximum amounts of each asset to
// pull and the minimum LP tokens acceptable for them.
type DepositData struct {
	MaxAmountA  uint64
	MaxAmountB  uint64
	MinLPAmount uint64
}

// Encode lays out [tag][max_a][max_b][min_lp].
func (d DepositData) Encode() []byte {
	buf := make([]byte, 25)
	buf[0] = OpDeposit
	binary.LittleEndian.PutUint64(buf[1:9], d.MaxAmountA)
	binary.LittleEndian.PutUint64(buf[9:17], d.MaxAmountB)
	binary.LittleEndian.PutUint64(buf[17:25], d.MinLPAmount)
	return buf
}

// WithdrawData carries a priced withdrawal: the LP amount to burn and the
// minimum acceptable amount of each asset.
type WithdrawData struct {
	LPAmount   uint64
	MinAmountA uint64
	MinAmountB uint64
}

// Encode lays out [tag][lp_amount][min_a][min_b].
func (d WithdrawData) Encode() []byte {
	buf := make([]byte, 25)
	buf[0] = OpWithdraw
	binary.LittleEndian.PutUint64(buf[1:9], d.LPAmount)
	binary.LittleEndian.PutUint64(buf[9:17], d.MinAmountA)
	binary.LittleEndian.PutUint64(buf[17:25], d.MinAmountB)
	return buf
}
