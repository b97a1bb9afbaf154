package services

import "math"

// Round2 rounds a currency or rate value to 2 decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// MonthlyInstallment computes the fixed annuity payment for a loan of the
// given principal, annual interest rate in percent and tenure in months.
// A zero rate uses the limiting formula P/n; the annuity formula would
// divide by zero.
func MonthlyInstallment(principal float64, annualRate float64, tenure int) float64 {
	if tenure < 1 {
		return 0
	}

	if annualRate == 0 {
		return Round2(principal / float64(tenure))
	}

	// Convert the annual percentage rate to a monthly fraction
	monthlyRate := annualRate / 100 / 12

	// EMI = P * r * (1+r)^n / ((1+r)^n - 1)
	factor := math.Pow(1+monthlyRate, float64(tenure))
	return Round2(principal * monthlyRate * factor / (factor - 1))
}
