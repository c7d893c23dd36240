// Package amortization holds the monthly payment formulas.
// Every function here is pure: no I/O, no state, safe for concurrent use.
package amortization

import "math"

const monthsPerYear = 12

// MonthlyRate converts an annual percentage (3 means 3%) into a monthly fraction
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / monthsPerYear
}

// InterestOnlyPayment calculates the monthly payment of an interest-only mortgage.
// The principal is never reduced, so the payment is just one month of interest.
// Negative inputs are not rejected; callers validate upstream.
func InterestOnlyPayment(principal, annualRatePercent float64) float64 {
	return principal * MonthlyRate(annualRatePercent)
}

// RepaymentPayment calculates the fixed monthly payment that amortizes principal
// over termYears at the given annual rate:
//
//	payment = P * r(1+r)^n / ((1+r)^n - 1)
//
// with r the monthly rate and n the number of monthly payments.
// A zero rate falls back to P / n. termYears must be positive.
func RepaymentPayment(principal, annualRatePercent float64, termYears int) float64 {
	r := MonthlyRate(annualRatePercent)
	n := float64(termYears * monthsPerYear)

	if r == 0 {
		return principal / n
	}

	growth := math.Pow(1+r, n)
	return principal * (r * growth) / (growth - 1)
}
