package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/domain/transaction"

	"tamweel-backend/pkg/money"
)

// Recommendation labels returned by the what-if simulations.
const (
	RecommendationStrong   = "strongly_recommended"
	RecommendationWorthIt  = "recommended"
	RecommendationMarginal = "marginal"
	RecommendationNo       = "not_recommended"
)

// Savings thresholds, as a share of the remaining interest at the current
// rate, that separate the recommendation tiers.
var (
	strongSavingsPct  = decimal.NewFromInt(20)
	worthItSavingsPct = decimal.NewFromInt(5)
)

// Projection captures a loan's cost profile at the current rate: the
// contracted full term plus what is still outstanding and still to accrue.
type Projection struct {
	Amount       decimal.Decimal
	RatePct      decimal.Decimal
	DurationDays int
	Interest     decimal.Decimal
	TotalCost    decimal.Decimal

	OutstandingPrincipal decimal.Decimal
	RemainingDays        int
	RemainingInterest    decimal.Decimal
}

// Baseline projects the loan at its current all-in rate: full-term interest
// on the contracted amount, plus the remaining interest on the replayed
// outstanding principal from now to the due date.
func Baseline(l *loan.Loan, txns []transaction.Transaction, now time.Time) (Projection, error) {
	if l == nil {
		return Projection{}, validationf("loan is required")
	}
	st, err := Replay(l, txns, now)
	if err != nil {
		return Projection{}, err
	}

	rate := l.AllInRate()
	duration, err := DaysBetween(l.StartDate, l.DueDate)
	if err != nil {
		return Projection{}, err
	}
	fullTerm, err := Accrue(l.Amount, rate, duration)
	if err != nil {
		return Projection{}, err
	}

	p := Projection{
		Amount:               l.Amount,
		RatePct:              rate,
		DurationDays:         duration,
		Interest:             fullTerm,
		TotalCost:            l.Amount.Add(fullTerm),
		OutstandingPrincipal: st.OutstandingPrincipal,
	}

	from := now
	if from.Before(l.StartDate) {
		from = l.StartDate
	}
	if from.Before(l.DueDate) {
		p.RemainingDays, err = DaysBetween(from, l.DueDate)
		if err != nil {
			return Projection{}, err
		}
		p.RemainingInterest, err = Accrue(st.OutstandingPrincipal, rate, p.RemainingDays)
		if err != nil {
			return Projection{}, err
		}
	}
	return p, nil
}

// RefinanceResult compares the remaining term at the current rate against the
// same term at a proposed rate. Savings are positive when the new rate is
// cheaper; refinancing at the current rate saves exactly zero.
type RefinanceResult struct {
	Current        Projection
	NewRatePct     decimal.Decimal
	NewInterest    decimal.Decimal
	Savings        decimal.Decimal
	SavingsPercent decimal.Decimal
	Recommendation string
}

// SimulateRefinance prices the loan's remaining term at newRatePct.
func SimulateRefinance(l *loan.Loan, txns []transaction.Transaction, newRatePct decimal.Decimal, now time.Time) (*RefinanceResult, error) {
	if newRatePct.IsNegative() {
		return nil, validationf("new rate %s%% is negative", newRatePct)
	}
	cur, err := Baseline(l, txns, now)
	if err != nil {
		return nil, err
	}

	newInterest, err := Accrue(cur.OutstandingPrincipal, newRatePct, cur.RemainingDays)
	if err != nil {
		return nil, err
	}
	savings := cur.RemainingInterest.Sub(newInterest)

	r := &RefinanceResult{
		Current:        cur,
		NewRatePct:     newRatePct,
		NewInterest:    newInterest,
		Savings:        savings,
		SavingsPercent: money.Percent(savings, cur.RemainingInterest),
		Recommendation: recommend(savings, cur.RemainingInterest),
	}
	return r, nil
}

func recommend(savings, baseline decimal.Decimal) string {
	if !savings.IsPositive() {
		return RecommendationNo
	}
	share := money.Percent(savings, baseline)
	switch {
	case share.GreaterThanOrEqual(strongSavingsPct):
		return RecommendationStrong
	case share.GreaterThanOrEqual(worthItSavingsPct):
		return RecommendationWorthIt
	default:
		return RecommendationMarginal
	}
}

// EarlyPaymentResult shows what a lump-sum payment on a given date would do:
// how it splits through the waterfall and the interest the retired principal
// would no longer accrue through the due date.
type EarlyPaymentResult struct {
	Current                 Projection
	PaymentAmount           decimal.Decimal
	PaymentDate             time.Time
	Allocation              Allocation
	NewOutstandingPrincipal decimal.Decimal
	InterestAvoided         decimal.Decimal
	InterestAvoidedPercent  decimal.Decimal
	SettlesLoan             bool
	Recommendation          string
}

// SimulateEarlyPayment replays the ledger up to the payment date and applies
// the hypothetical payment there. The payment date must fall inside the
// loan's term.
func SimulateEarlyPayment(l *loan.Loan, txns []transaction.Transaction, amount decimal.Decimal, date, now time.Time) (*EarlyPaymentResult, error) {
	if l == nil {
		return nil, validationf("loan is required")
	}
	if !amount.IsPositive() {
		return nil, validationf("payment amount %s must be positive", amount)
	}
	if date.Before(l.StartDate) {
		return nil, validationf("payment date %s precedes loan start %s",
			date.Format(time.RFC3339), l.StartDate.Format(time.RFC3339))
	}
	if date.After(l.DueDate) {
		return nil, validationf("payment date %s is past the due date %s",
			date.Format(time.RFC3339), l.DueDate.Format(time.RFC3339))
	}

	cur, err := Baseline(l, txns, now)
	if err != nil {
		return nil, err
	}
	atDate, err := Replay(l, txns, date)
	if err != nil {
		return nil, err
	}

	alloc, err := Allocate(amount, atDate.OutstandingFees, atDate.OutstandingInterest, atDate.OutstandingPrincipal)
	if err != nil {
		return nil, err
	}

	daysLeft, err := DaysBetween(date, l.DueDate)
	if err != nil {
		return nil, err
	}
	rate := l.AllInRate()
	avoided, err := Accrue(alloc.Principal, rate, daysLeft)
	if err != nil {
		return nil, err
	}
	remainingAtDate, err := Accrue(atDate.OutstandingPrincipal, rate, daysLeft)
	if err != nil {
		return nil, err
	}

	newPrincipal := atDate.OutstandingPrincipal.Sub(alloc.Principal)
	r := &EarlyPaymentResult{
		Current:                 cur,
		PaymentAmount:           amount,
		PaymentDate:             date,
		Allocation:              alloc,
		NewOutstandingPrincipal: newPrincipal,
		InterestAvoided:         avoided,
		InterestAvoidedPercent:  money.Percent(avoided, remainingAtDate),
		SettlesLoan:             newPrincipal.IsZero() && atDate.TotalDrawn.IsPositive(),
		Recommendation:          recommend(avoided, remainingAtDate),
	}
	return r, nil
}

// TermChangeResult compares the full-term cost of the contracted amount over
// a different duration at the existing rate. Difference is new minus current:
// positive means the new term costs more.
type TermChangeResult struct {
	Current           Projection
	NewDurationDays   int
	NewInterest       decimal.Decimal
	Difference        decimal.Decimal
	DifferencePercent decimal.Decimal
	Recommendation    string
}

// SimulateTermChange prices the contracted amount over newDurationDays.
func SimulateTermChange(l *loan.Loan, txns []transaction.Transaction, newDurationDays int, now time.Time) (*TermChangeResult, error) {
	if newDurationDays <= 0 {
		return nil, validationf("new duration %d days must be positive", newDurationDays)
	}
	cur, err := Baseline(l, txns, now)
	if err != nil {
		return nil, err
	}
	newInterest, err := Accrue(cur.Amount, cur.RatePct, newDurationDays)
	if err != nil {
		return nil, err
	}
	diff := newInterest.Sub(cur.Interest)
	return &TermChangeResult{
		Current:           cur,
		NewDurationDays:   newDurationDays,
		NewInterest:       newInterest,
		Difference:        diff,
		DifferencePercent: money.Percent(diff, cur.Interest),
		Recommendation:    recommend(diff.Neg(), cur.Interest),
	}, nil
}
