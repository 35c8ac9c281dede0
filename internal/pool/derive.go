package pool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// authoritySeed is the constant prefix of the pool authority seed list.
var authoritySeed = []byte("authority")

// AuthoritySeeds returns the deterministic seed list for a pool's signing
// authority. The list itself is mechanical; turning it into a verified
// address requires curve-validity testing, which is delegated below.
func AuthoritySeeds(poolAccount solana.PublicKey) [][]byte {
	return [][]byte{authoritySeed, poolAccount.Bytes()}
}

// Authority derives the pool's signing authority for the given program.
// Curve membership testing is supplied entirely by the solana-go runtime;
// this package performs no curve math itself.
func Authority(programID, poolAccount solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(AuthoritySeeds(poolAccount), programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive pool authority: %w", err)
	}
	return addr, bump, nil
}
