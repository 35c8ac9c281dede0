package curve

import "math/big"

// The N-asset solver generalizes the pair case to 2..8 balances with
// Ann = A * N^N. N is always taken from the length of the supplied balance
// slice; the arithmetic is correct for any N the caller provides, and the
// [1, 8] policy bound is a caller precondition like the amp range.

// annFor returns Ann = amp * N^N and N^N's base N as big integers.
func annFor(amp uint64, n int) (ann, nBig *big.Int) {
	nBig = big.NewInt(int64(n))
	nPowN := new(big.Int).Exp(nBig, nBig, nil)
	ann = new(big.Int).SetUint64(amp)
	ann.Mul(ann, nPowN)
	return ann, nBig
}

// CalcDN computes the invariant D for a pool of len(balances) assets. An
// empty slice or an all-zero balance set yields D = 0 immediately, mirroring
// the empty-sum case of the pair solver.
func CalcDN(balances []*big.Int, amp uint64) (*big.Int, error) {
	n := len(balances)
	if n == 0 {
		return new(big.Int), nil
	}

	sc := newScratch()
	defer sc.release()

	s := sc.get()
	for _, b := range balances {
		s.Add(s, b)
	}
	if s.Sign() == 0 {
		return new(big.Int), nil
	}
	for _, b := range balances {
		if b.Sign() == 0 {
			return nil, &ConvergenceError{Op: "calc_d_n", Reason: "zero balance degenerates d_p denominator"}
		}
	}

	ann, nBig := annFor(amp, n)
	annMinusOne := sc.get().Sub(ann, one)
	nPlusOne := sc.get().Add(nBig, one)
	annS := sc.get().Mul(ann, s)

	// Per-balance divisors b_i * N, fixed across iterations.
	divisors := make([]*big.Int, n)
	for i, b := range balances {
		divisors[i] = sc.get().Mul(b, nBig)
	}

	d := sc.get().Set(s)
	dNew := sc.get()
	dp := sc.get()
	num := sc.get()
	den := sc.get()
	ndp := sc.get()

	for i := 0; i < maxIterations; i++ {
		// d_p = D^(N+1) / (N^N * prod(balances)) by repeated division:
		// acc = D; for each balance: acc = acc*D / (b*N).
		dp.Set(d)
		for _, div := range divisors {
			dp.Mul(dp, d)
			dp.Div(dp, div)
		}

		// D' = (Ann*S + N*d_p) * D / ((Ann-1)*D + (N+1)*d_p)
		num.Mul(nBig, dp)
		num.Add(num, annS)
		num.Mul(num, d)

		den.Mul(annMinusOne, d)
		ndp.Mul(nPlusOne, dp)
		den.Add(den, ndp)
		if den.Sign() == 0 {
			return nil, &ConvergenceError{Op: "calc_d_n", Iterations: i, Reason: "zero denominator"}
		}

		dNew.Div(num, den)
		if converged(dNew, d) {
			return new(big.Int).Set(dNew), nil
		}
		d, dNew = dNew, d
	}

	return nil, &ConvergenceError{Op: "calc_d_n", Iterations: maxIterations, Reason: "iteration budget exhausted"}
}

// CalcYN solves for the balance at outIndex given the other balances and a
// previously computed invariant. The b and c terms reduce to the pair case
// for N = 2, and the Newton loop itself is the shared newtonY iterator.
func CalcYN(balances []*big.Int, outIndex int, d *big.Int, amp uint64) (*big.Int, error) {
	n := len(balances)
	if outIndex < 0 || outIndex >= n {
		return nil, &DomainError{Op: "calc_y_n", Reason: "out index outside balance set"}
	}

	ann, nBig := annFor(amp, n)

	sc := newScratch()
	defer sc.release()

	// c = D^(N+1) / (prod_without * N^N * Ann), stepwise like d_p above;
	// b = S_without + D/Ann. Both skip the out index.
	sWithout := sc.get()
	c := sc.get().Set(d)
	div := sc.get()
	for i, bal := range balances {
		if i == outIndex {
			continue
		}
		if bal.Sign() == 0 {
			return nil, &ConvergenceError{Op: "calc_y_n", Reason: "zero balance degenerates c denominator"}
		}
		sWithout.Add(sWithout, bal)
		div.Mul(bal, nBig)
		c.Mul(c, d)
		c.Div(c, div)
	}
	div.Mul(ann, nBig)
	c.Mul(c, d)
	c.Div(c, div)

	b := sc.get().Div(d, ann)
	b.Add(b, sWithout)

	return newtonY(d, c, b, d)
}
