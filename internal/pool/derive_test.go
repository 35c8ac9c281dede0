package pool

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

// TestAuthorityDeterministic: the same (program, pool) pair always derives
// the same authority, and different pools derive different ones.
func TestAuthorityDeterministic(t *testing.T) {
	program := solana.NewWallet().PublicKey()
	poolA := solana.NewWallet().PublicKey()
	poolB := solana.NewWallet().PublicKey()

	addr1, bump1, err := Authority(program, poolA)
	if err != nil {
		t.Fatalf("Authority: %v", err)
	}
	addr2, bump2, err := Authority(program, poolA)
	if err != nil {
		t.Fatalf("Authority: %v", err)
	}
	if !addr1.Equals(addr2) || bump1 != bump2 {
		t.Errorf("derivation not deterministic: %s/%d vs %s/%d", addr1, bump1, addr2, bump2)
	}

	other, _, err := Authority(program, poolB)
	if err != nil {
		t.Fatalf("Authority: %v", err)
	}
	if addr1.Equals(other) {
		t.Error("distinct pools derived the same authority")
	}
}

// TestAuthoritySeeds pins the seed list shape: constant prefix then the pool
// account bytes.
func TestAuthoritySeeds(t *testing.T) {
	poolAccount := solana.NewWallet().PublicKey()
	seeds := AuthoritySeeds(poolAccount)

	if len(seeds) != 2 {
		t.Fatalf("seed count = %d, want 2", len(seeds))
	}
	if string(seeds[0]) != "authority" {
		t.Errorf("seed prefix = %q", seeds[0])
	}
	if len(seeds[1]) != 32 {
		t.Errorf("pool seed length = %d, want 32", len(seeds[1]))
	}
}
