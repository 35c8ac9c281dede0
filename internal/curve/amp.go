package curve

// CurrentAmp returns the effective amplification coefficient at time now for
// a linear ramp from initial to target over [rampStart, rampStop]. It is a
// total function: outside the window it clamps to the endpoint values, and a
// zero-length window resolves to the target. Truncating division biases the
// interpolated value slightly toward the starting amp.
func CurrentAmp(initial, target uint64, rampStart, rampStop, now int64) uint64 {
	if now >= rampStop || rampStop == rampStart {
		return target
	}
	if now <= rampStart {
		return initial
	}

	elapsed := uint64(now - rampStart)
	duration := uint64(rampStop - rampStart)

	if target >= initial {
		return initial + (target-initial)*elapsed/duration
	}
	return initial - (initial-target)*elapsed/duration
}
