// Package policy decides what happens to content given its risk score.
package policy

// Outcome is the routing decision for a scored piece of content.
type Outcome int

const (
	// OutcomeNone leaves the content untouched.
	OutcomeNone Outcome = iota
	// OutcomeFlag queues the content for human review via a system flag.
	OutcomeFlag
	// OutcomeAutoRemove removes the content without human review.
	OutcomeAutoRemove
)

// Thresholds holds the two configured risk cutoffs, both in [0,1].
type Thresholds struct {
	AutoRemove float64
	FlagReview float64
}

// ShouldAutoRemove reports whether risk meets the auto-remove cutoff.
// Boundary inclusive.
func (t Thresholds) ShouldAutoRemove(risk float64) bool {
	return risk >= t.AutoRemove
}

// ShouldFlag reports whether risk meets the flag-for-review cutoff.
// Boundary inclusive.
func (t Thresholds) ShouldFlag(risk float64) bool {
	return risk >= t.FlagReview
}

// Route evaluates the cutoffs in precedence order: auto-remove wins over
// flag-for-review.
func (t Thresholds) Route(risk float64) Outcome {
	switch {
	case t.ShouldAutoRemove(risk):
		return OutcomeAutoRemove
	case t.ShouldFlag(risk):
		return OutcomeFlag
	default:
		return OutcomeNone
	}
}
