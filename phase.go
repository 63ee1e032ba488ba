package orbel

// PhaseTracker keeps the true anomaly ν and mean anomaly M mutually
// consistent under the current eccentricity via the eccentric anomaly E.
// Two independent write paths own the invariant and must not interfere:
// parameter edits hold ν fixed and recompute M (SetνKeepPhase), while
// animation stepping advances M and recomputes ν (RecomputeFromM). Switching
// which quantity is primary per kind of update is what keeps the rendered
// body from jumping when a slider is dragged mid-animation.
type PhaseTracker struct {
	ν, meanM float64
}

// Trueν returns the current true anomaly.
func (pt *PhaseTracker) Trueν() float64 { return pt.ν }

// MeanM returns the current mean anomaly.
func (pt *PhaseTracker) MeanM() float64 { return pt.meanM }

// RecomputeFromM stores M and derives ν through Kepler's equation. Called by
// the animator after it advances the mean anomaly.
func (pt *PhaseTracker) RecomputeFromM(M, e float64) {
	pt.meanM = M
	E := SolveKeplerScalar(M, e)
	pt.ν = νFromE(E, e)
}

// AdvanceM increments the mean anomaly and resyncs ν.
func (pt *PhaseTracker) AdvanceM(dM, e float64) {
	pt.RecomputeFromM(pt.meanM+dM, e)
}

// SetνKeepPhase holds the displayed true anomaly fixed and derives the mean
// anomaly to match, so the next animation tick continues smoothly from the
// same point. Called on any orbital-element edit that should not visibly jump
// the body.
func (pt *PhaseTracker) SetνKeepPhase(ν, e float64) {
	pt.ν = ν
	E := EFromν(ν, e)
	pt.meanM = MFromE(E, e)
}
