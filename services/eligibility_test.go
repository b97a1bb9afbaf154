package services

import "testing"

func TestEvaluateEligibility_SlabBoundaries(t *testing.T) {
	cases := []struct {
		name         string
		score        float64
		rate         float64
		wantApproved bool
		wantRate     float64
	}{
		// The top band starts at exactly 50: no minimum rate
		{"score exactly 50", 50, 8, true, 8},
		{"score just above 50", 50.01, 8, true, 8},
		{"high score keeps low rate", 90, 0.5, true, 0.5},

		// 30 < score < 50: minimum 12%
		{"mid band below minimum", 40, 8, true, 12},
		{"mid band at minimum", 40, 12, true, 12},
		{"mid band above minimum", 40, 14.5, true, 14.5},
		{"score just below 50 corrects", 49.99, 8, true, 12},

		// 10 < score <= 30: minimum 16%; the 30 boundary falls into this band
		{"score exactly 30", 30, 12, true, 16},
		{"low band below minimum", 20, 10, true, 16},
		{"low band above minimum", 20, 18, true, 18},
		{"score just above 10", 10.01, 5, true, 16},

		// score <= 10: no slab is satisfiable
		{"score exactly 10", 10, 20, false, 20},
		{"score below 10", 5, 25, false, 25},
		{"zero score", 0, 16, false, 16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := EvaluateEligibility(c.score, c.rate)
			if result.Approved != c.wantApproved {
				t.Errorf("Approved = %v, want %v", result.Approved, c.wantApproved)
			}
			if result.CorrectedInterestRate != c.wantRate {
				t.Errorf("CorrectedInterestRate = %v, want %v", result.CorrectedInterestRate, c.wantRate)
			}
		})
	}
}

func TestEvaluateEligibility_RejectionEchoesRequestedRate(t *testing.T) {
	// No correction is meaningful for a declined application
	result := EvaluateEligibility(3, 9.75)
	if result.Approved {
		t.Fatal("Approved = true, want false")
	}
	if result.CorrectedInterestRate != 9.75 {
		t.Errorf("CorrectedInterestRate = %v, want the requested 9.75", result.CorrectedInterestRate)
	}
}
