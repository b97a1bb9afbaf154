package services

import (
	"time"

	"github.com/akshatsri47/credit-card-approval/models"
)

// maxEMIBurdenShare is the fraction of monthly salary that active-loan
// installments may consume before every application is rejected outright.
const maxEMIBurdenShare = 0.5

// ScoreInputs is the per-request factor breakdown behind a credit score.
// Each factor is normalized to a 0-100 scale. It is never persisted.
type ScoreInputs struct {
	OnTimeRatio     float64
	LoanCountFactor float64
	ActivityFactor  float64
	VolumeFactor    float64
	EMIBurdenOK     bool
}

// CreditScore aggregates a customer's loan history into a score in [0,100].
// The reference date is supplied by the caller so the computation stays a
// pure function of its inputs. A failed EMI-burden check forces the score
// to 0 regardless of the other factors.
func CreditScore(customer *models.Customer, loans []models.Loan, asOf time.Time) (float64, ScoreInputs) {
	inputs := ScoreInputs{}

	loanCount := len(loans)

	// On-time payment ratio over all tenures; a customer with no history
	// has nothing held against them and starts at 100.
	var emisOnTime, tenureSum int
	var totalAmount, activeEMISum float64
	loansThisYear := 0
	for i := range loans {
		loan := &loans[i]
		emisOnTime += loan.EMIsPaidOnTime
		tenureSum += loan.Tenure
		totalAmount += loan.LoanAmount
		if loan.DateOfApproval.Year() == asOf.Year() {
			loansThisYear++
		}
		if loan.IsActive(asOf) {
			activeEMISum += loan.MonthlyPayment
		}
	}

	if tenureSum == 0 {
		inputs.OnTimeRatio = 100
	} else {
		inputs.OnTimeRatio = float64(emisOnTime) / float64(tenureSum) * 100
	}

	// More loans lower the count factor, never reaching zero
	inputs.LoanCountFactor = 100 / float64(loanCount+1)

	// Share of loans approved in the current calendar year
	inputs.ActivityFactor = float64(loansThisYear) / float64(loanCount+1) * 100

	// Historical volume against the approved limit, capped at 100
	limit := customer.ApprovedLimit
	if limit <= 0 {
		limit = 1
	}
	inputs.VolumeFactor = totalAmount / limit * 100
	if inputs.VolumeFactor > 100 {
		inputs.VolumeFactor = 100
	}

	// Hard gate: active installments must stay within half the salary
	inputs.EMIBurdenOK = activeEMISum <= maxEMIBurdenShare*customer.MonthlySalary
	if !inputs.EMIBurdenOK {
		return 0, inputs
	}

	score := (inputs.OnTimeRatio + inputs.LoanCountFactor + inputs.ActivityFactor + inputs.VolumeFactor) / 4
	return score, inputs
}
