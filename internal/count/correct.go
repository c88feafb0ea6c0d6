package count

// CorrectToCommonStack snaps a low-confidence count to the nearest
// plausible stack size using the default options.
//
// Confidence strictly above the gate (0.8) returns the raw count
// unchanged; exactly 0.8 still corrects. Counts further than the
// tolerance from every common stack size also pass through unchanged.
func CorrectToCommonStack(raw int, confidence float64) int {
	return DefaultOptions().CorrectToCommonStack(raw, confidence)
}

// CorrectToCommonStack applies the common-stack correction with these
// options. The stack list is scanned in ascending order, so on a
// distance tie the smaller stack wins.
func (o Options) CorrectToCommonStack(raw int, confidence float64) int {
	if confidence > o.ConfidenceGate {
		return raw
	}

	best := raw
	bestDiff := o.StackTolerance + 1
	for _, stack := range o.CommonStacks {
		diff := raw - stack
		if diff < 0 {
			diff = -diff
		}
		if diff <= o.StackTolerance && diff < bestDiff {
			best = stack
			bestDiff = diff
		}
	}
	return best
}
