package engine

import "github.com/shopspring/decimal"

// WaterfallOrder documents the fixed priority a payment is applied in.
// Swapping interest and principal changes a borrower's effective cost, so the
// order lives in exactly one place.
const WaterfallOrder = "fees, then accrued interest, then principal"

// Allocation is the split of one payment across the waterfall. The four
// fields always sum to the original payment; Remainder is whatever exceeded
// the total obligations, never silently dropped. The caller decides whether
// to treat it as prepayment credit or reject the payment.
type Allocation struct {
	Fees      decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remainder decimal.Decimal
}

// Total returns the sum of the allocation, which equals the payment it split.
func (a Allocation) Total() decimal.Decimal {
	return a.Fees.Add(a.Interest).Add(a.Principal).Add(a.Remainder)
}

// Allocate applies a payment across outstanding fees, accrued interest and
// principal in the waterfall order, capping each slice at its obligation.
func Allocate(payment, outstandingFees, outstandingInterest, outstandingPrincipal decimal.Decimal) (Allocation, error) {
	var alloc Allocation
	if payment.IsNegative() {
		return alloc, validationf("payment must not be negative, got %s", payment)
	}
	for name, v := range map[string]decimal.Decimal{
		"fees":      outstandingFees,
		"interest":  outstandingInterest,
		"principal": outstandingPrincipal,
	} {
		if v.IsNegative() {
			return alloc, validationf("outstanding %s must not be negative, got %s", name, v)
		}
	}

	left := payment
	alloc.Fees = decimal.Min(left, outstandingFees)
	left = left.Sub(alloc.Fees)
	alloc.Interest = decimal.Min(left, outstandingInterest)
	left = left.Sub(alloc.Interest)
	alloc.Principal = decimal.Min(left, outstandingPrincipal)
	alloc.Remainder = left.Sub(alloc.Principal)
	return alloc, nil
}
