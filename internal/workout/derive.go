// Package workout holds the derivation rules for logged sets: volume,
// estimated one-rep max, personal-record decisions, and streak walking.
// Everything here is pure so the numeric rules can be tested without a
// database; storage calls in with whatever rows it has.
package workout

// Volume returns reps*weight, or nil unless both inputs are present.
func Volume(reps *int, weight *float64) *float64 {
	if reps == nil || weight == nil {
		return nil
	}
	v := float64(*reps) * *weight
	return &v
}

// Estimated1RM returns the Epley estimate weight*(1+reps/30), or nil
// unless both inputs are present. Stored unrounded.
func Estimated1RM(reps *int, weight *float64) *float64 {
	if reps == nil || weight == nil {
		return nil
	}
	e := *weight * (1 + float64(*reps)/30)
	return &e
}

// IsPR reports whether estimated1RM beats the best previously stored
// estimate for the same user/exercise pair. No prior set counts as a PR;
// ties do not (strict greater-than).
func IsPR(estimated1RM, bestPrior *float64) bool {
	if estimated1RM == nil {
		return false
	}
	return bestPrior == nil || *estimated1RM > *bestPrior
}
