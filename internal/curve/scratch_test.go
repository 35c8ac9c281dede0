package curve

import (
	"math/big"
	"sync"
	"testing"
)

// TestScratchResultsAreIndependent: values returned by the solvers must not
// alias pooled scratch memory, so later calls cannot corrupt earlier results.
func TestScratchResultsAreIndependent(t *testing.T) {
	x := big.NewInt(1_000_000_000)
	y := big.NewInt(900_000_000)

	first, err := CalcD(x, y, 100)
	if err != nil {
		t.Fatalf("CalcD failed: %v", err)
	}
	snapshot := new(big.Int).Set(first)

	// Churn the pool with different inputs.
	for i := int64(1); i <= 50; i++ {
		if _, err := CalcD(big.NewInt(i*1_000_000), big.NewInt(i*2_000_000), 50); err != nil {
			t.Fatalf("CalcD churn %d failed: %v", i, err)
		}
	}

	if first.Cmp(snapshot) != 0 {
		t.Errorf("earlier result mutated by later calls: %s vs %s", first, snapshot)
	}
}

func TestScratchConcurrentSolvers(t *testing.T) {
	x := big.NewInt(750_000_000)
	y := big.NewInt(250_000_000)

	want, err := CalcD(x, y, 200)
	if err != nil {
		t.Fatalf("CalcD failed: %v", err)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				d, err := CalcD(x, y, 200)
				if err != nil {
					errCh <- err
					return
				}
				if d.Cmp(want) != 0 {
					errCh <- &ConvergenceError{Op: "calc_d", Reason: "concurrent result mismatch"}
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	if err := <-errCh; err != nil {
		t.Fatalf("concurrent solve failed: %v", err)
	}
}
