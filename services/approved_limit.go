package services

import "math"

// limitQuantum is the rounding unit for approved credit limits.
const limitQuantum = 100_000

// ApprovedLimit derives the initial credit limit from the monthly salary:
// 36 months of salary, rounded down to the nearest 100,000 to produce round
// limits. Callers must validate that the salary is positive.
func ApprovedLimit(monthlySalary float64) float64 {
	return math.Floor(monthlySalary*36/limitQuantum) * limitQuantum
}
