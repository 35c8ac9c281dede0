package curve

import "fmt"

// The solvers fail in exactly two ways. Both are expected and recoverable at
// the call boundary: the caller treats a failure as "this trade or deposit
// cannot be safely priced right now" and aborts. Retrying is pointless because
// every solver is a pure function of its arguments.

// ConvergenceError reports a Newton iteration that did not settle: either the
// iteration budget ran out, or a denominator degenerated to zero or below and
// continuing would have divided by it.
type ConvergenceError struct {
	Op         string // solver that failed, e.g. "calc_d" or "calc_y"
	Iterations int    // Newton steps completed when the failure was detected
	Reason     string // what went wrong (budget exhausted, zero denominator, ...)
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: %s (after %d iterations)", e.Op, e.Reason, e.Iterations)
}

// DomainError reports a violated precondition that the math layer checks
// itself, such as pricing a deposit against an empty pool.
type DomainError struct {
	Op     string
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
