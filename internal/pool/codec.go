package pool

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Account record layout (little-endian, fixed offsets):
//
//	[0:8]     record-type tag
//	[8:40]    token A mint
//	[40:72]   token B mint
//	[72:104]  token A vault
//	[104:136] token B vault
//	[136:168] LP mint
//	[168:176] initial amp (u64)
//	[176:184] target amp (u64)
//	[184:192] ramp start ts (i64)
//	[192:200] ramp stop ts (i64)
//	[200:208] trade fee bps (u64)
//	[208:216] token A balance (u64)
//	[216:224] token B balance (u64)
//	[224:232] LP supply (u64)
const StateSize = 232

// StateTag is the 8-byte record-type tag that must lead every pool account.
// No field is trusted before the tag is validated.
var StateTag = [8]byte{'s', 't', 'b', 'l', 'p', 'o', 'o', 'l'}

var (
	// ErrShortRecord means the account data is shorter than the fixed layout.
	ErrShortRecord = errors.New("pool: account data shorter than fixed layout")
	// ErrRecordTag means the leading record-type tag did not match.
	ErrRecordTag = errors.New("pool: record tag mismatch")
)

// DecodeState parses a pool account record. Length is checked before any
// slicing and the tag before any field.
func DecodeState(data []byte) (*State, error) {
	if len(data) < StateSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrShortRecord, len(data), StateSize)
	}
	if !bytes.Equal(data[:8], StateTag[:]) {
		return nil, fmt.Errorf("%w: %x", ErrRecordTag, data[:8])
	}

	le := binary.LittleEndian
	return &State{
		TokenAMint:  solana.PublicKeyFromBytes(data[8:40]),
		TokenBMint:  solana.PublicKeyFromBytes(data[40:72]),
		TokenAVault: solana.PublicKeyFromBytes(data[72:104]),
		TokenBVault: solana.PublicKeyFromBytes(data[104:136]),
		LPMint:      solana.PublicKeyFromBytes(data[136:168]),
		InitialAmp:  le.Uint64(data[168:176]),
		TargetAmp:   le.Uint64(data[176:184]),
		RampStartTs: int64(le.Uint64(data[184:192])),
		RampStopTs:  int64(le.Uint64(data[192:200])),
		TradeFeeBPS: le.Uint64(data[200:208]),
		BalanceA:    le.Uint64(data[208:216]),
		BalanceB:    le.Uint64(data[216:224]),
		LPSupply:    le.Uint64(data[224:232]),
	}, nil
}

// EncodeState serializes a State back into its fixed layout. Used by tests
// and snapshot tooling; the quoting path only ever decodes.
func EncodeState(s *State) []byte {
	data := make([]byte, StateSize)
	le := binary.LittleEndian

	copy(data[0:8], StateTag[:])
	copy(data[8:40], s.TokenAMint[:])
	copy(data[40:72], s.TokenBMint[:])
	copy(data[72:104], s.TokenAVault[:])
	copy(data[104:136], s.TokenBVault[:])
	copy(data[136:168], s.LPMint[:])
	le.PutUint64(data[168:176], s.InitialAmp)
	le.PutUint64(data[176:184], s.TargetAmp)
	le.PutUint64(data[184:192], uint64(s.RampStartTs))
	le.PutUint64(data[192:200], uint64(s.RampStopTs))
	le.PutUint64(data[200:208], s.TradeFeeBPS)
	le.PutUint64(data[208:216], s.BalanceA)
	le.PutUint64(data[216:224], s.BalanceB)
	le.PutUint64(data[224:232], s.LPSupply)

	return data
}
