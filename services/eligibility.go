package services

// slab ties a score threshold to the minimum acceptable annual interest
// rate for that band. Slabs are evaluated in order; Inclusive marks whether
// a score exactly on the threshold enters the band. The top band starts at
// exactly 50, the lower bands apply on strict lower bounds, and a score of
// 10 or below satisfies no slab at all.
type slab struct {
	Threshold float64
	Inclusive bool
	MinRate   float64
}

var slabs = []slab{
	{Threshold: 50, Inclusive: true, MinRate: 0},
	{Threshold: 30, Inclusive: false, MinRate: 12},
	{Threshold: 10, Inclusive: false, MinRate: 16},
}

// EligibilityResult is the outcome of the slab policy for one application.
type EligibilityResult struct {
	Approved              bool
	CorrectedInterestRate float64
}

// EvaluateEligibility applies the score slabs to a requested rate. A rate
// below the slab minimum is raised to it rather than rejected; a score that
// satisfies no slab is a rejection, with the requested rate echoed back
// unchanged since no correction is meaningful for a declined application.
func EvaluateEligibility(score float64, requestedRate float64) EligibilityResult {
	for _, s := range slabs {
		if score > s.Threshold || (s.Inclusive && score == s.Threshold) {
			rate := requestedRate
			if rate < s.MinRate {
				rate = s.MinRate
			}
			return EligibilityResult{
				Approved:              true,
				CorrectedInterestRate: Round2(rate),
			}
		}
	}

	return EligibilityResult{
		Approved:              false,
		CorrectedInterestRate: Round2(requestedRate),
	}
}
