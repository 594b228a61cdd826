package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// daysPerYear is the simple-interest day-count convention used across the
// engine (ACT/365 fixed).
var daysPerYear = decimal.NewFromInt(365)

var hundred = decimal.NewFromInt(100)

// Accrue computes simple daily interest on a principal over an elapsed number
// of whole days at an annual percentage rate (e.g. 8.25 for 8.25%):
//
//	interest = principal × rate/100 × days/365
//
// A zero rate or zero elapsed days accrues nothing. Negative inputs are
// rejected. The result keeps full decimal precision.
func Accrue(principal, annualRatePct decimal.Decimal, daysElapsed int) (decimal.Decimal, error) {
	if principal.IsNegative() {
		return decimal.Zero, validationf("principal must not be negative, got %s", principal)
	}
	if annualRatePct.IsNegative() {
		return decimal.Zero, validationf("annual rate must not be negative, got %s", annualRatePct)
	}
	if daysElapsed < 0 {
		return decimal.Zero, validationf("elapsed days must not be negative, got %d", daysElapsed)
	}
	if daysElapsed == 0 || principal.IsZero() || annualRatePct.IsZero() {
		return decimal.Zero, nil
	}
	days := decimal.NewFromInt(int64(daysElapsed))
	return principal.Mul(annualRatePct).Mul(days).Div(hundred.Mul(daysPerYear)), nil
}

// AccrueBetween accrues over the whole days elapsed from one instant to
// another. The pair (from, to) with to before from is rejected.
func AccrueBetween(principal, annualRatePct decimal.Decimal, from, to time.Time) (decimal.Decimal, error) {
	days, err := DaysBetween(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return Accrue(principal, annualRatePct, days)
}

// DaysBetween returns the count of whole days from one instant to another.
// Partial days truncate: accrual granularity across the engine is one day.
func DaysBetween(from, to time.Time) (int, error) {
	if to.Before(from) {
		return 0, validationf("date range inverted: %s is before %s",
			to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	return int(to.Sub(from) / (24 * time.Hour)), nil
}
