package curve

import "math/big"

// maxIterations caps every Newton loop. The cap and the 1-unit tolerance are
// part of the numeric contract: changing either changes the converged values.
const maxIterations = 255

// converged reports whether two successive iterates are within one unit of
// each other. Truncating division prevents exact fixed points in general, so
// the tolerance is 1 rather than 0.
func converged(a, b *big.Int) bool {
	diff := new(big.Int).Sub(a, b)
	return diff.CmpAbs(one) <= 0
}

// CalcD computes the StableSwap invariant D for a two-asset pool with
// balances x and y and amplification coefficient amp. An empty pool has
// D = 0. A pool with exactly one empty side has no finite curve point, which
// surfaces as a zero-denominator ConvergenceError rather than a division
// panic.
func CalcD(x, y *big.Int, amp uint64) (*big.Int, error) {
	sc := newScratch()
	defer sc.release()

	s := sc.get().Add(x, y)
	if s.Sign() == 0 {
		return new(big.Int), nil
	}
	if x.Sign() == 0 || y.Sign() == 0 {
		return nil, &ConvergenceError{Op: "calc_d", Reason: "zero balance degenerates d_p denominator"}
	}

	// Ann = A * N^N with N = 2.
	ann := sc.get().SetUint64(amp)
	ann.Mul(ann, four)
	annMinusOne := sc.get().Sub(ann, one)

	x2 := sc.get().Lsh(x, 1)
	y2 := sc.get().Lsh(y, 1)
	annS := sc.get().Mul(ann, s)

	d := sc.get().Set(s)
	dNew := sc.get()
	dp := sc.get()
	num := sc.get()
	den := sc.get()

	for i := 0; i < maxIterations; i++ {
		// d_p = D^3 / (4xy), computed stepwise to bound intermediates:
		// (D*D/(2x)) * D / (2y).
		dp.Mul(d, d)
		dp.Div(dp, x2)
		dp.Mul(dp, d)
		dp.Div(dp, y2)

		// D' = (Ann*S + 2*d_p) * D / ((Ann-1)*D + 3*d_p)
		num.Lsh(dp, 1)
		num.Add(num, annS)
		num.Mul(num, d)

		den.Mul(annMinusOne, d)
		den.Add(den, dp)
		den.Add(den, dp)
		den.Add(den, dp)
		if den.Sign() == 0 {
			return nil, &ConvergenceError{Op: "calc_d", Iterations: i, Reason: "zero denominator"}
		}

		dNew.Div(num, den)
		if converged(dNew, d) {
			return new(big.Int).Set(dNew), nil
		}
		d, dNew = dNew, d
	}

	return nil, &ConvergenceError{Op: "calc_d", Iterations: maxIterations, Reason: "iteration budget exhausted"}
}

// CalcY solves for the counterpart balance of a two-asset pool given the
// other side's new balance and a previously computed invariant.
func CalcY(xNew, d *big.Int, amp uint64) (*big.Int, error) {
	if xNew.Sign() == 0 {
		return nil, &ConvergenceError{Op: "calc_y", Reason: "zero balance degenerates c denominator"}
	}

	sc := newScratch()
	defer sc.release()

	ann := sc.get().SetUint64(amp)
	ann.Mul(ann, four)

	// c = D^3 / (4 * x_new * Ann), stepwise: (D*D/(2*x_new)) * D / (2*Ann).
	c := sc.get().Mul(d, d)
	c.Div(c, sc.get().Lsh(xNew, 1))
	c.Mul(c, d)
	c.Div(c, sc.get().Lsh(ann, 1))

	// b = x_new + D/Ann
	b := sc.get().Div(d, ann)
	b.Add(b, xNew)

	return newtonY(d, c, b, d)
}

// newtonY is the shared counterpart-balance iterator: starting from seed it
// iterates y' = (y^2 + c) / (2y + b - D) until two iterates agree within one
// unit. Both the 2-asset and the N-asset Y solvers reduce to this routine
// with their own b and c precomputation. A non-positive denominator means the
// curve has no valid solution in range for the supplied balance.
func newtonY(d, c, b, seed *big.Int) (*big.Int, error) {
	sc := newScratch()
	defer sc.release()

	y := sc.get().Set(seed)
	yNew := sc.get()
	num := sc.get()
	den := sc.get()

	for i := 0; i < maxIterations; i++ {
		den.Lsh(y, 1)
		den.Add(den, b)
		den.Sub(den, d)
		if den.Sign() <= 0 {
			return nil, &ConvergenceError{Op: "calc_y", Iterations: i, Reason: "non-positive denominator"}
		}

		num.Mul(y, y)
		num.Add(num, c)

		yNew.Div(num, den)
		if converged(yNew, y) {
			return new(big.Int).Set(yNew), nil
		}
		y, yNew = yNew, y
	}

	return nil, &ConvergenceError{Op: "calc_y", Iterations: maxIterations, Reason: "iteration budget exhausted"}
}
