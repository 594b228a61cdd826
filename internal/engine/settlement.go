package engine

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/domain/transaction"

	"tamweel-backend/pkg/money"
)

// Statement is everything the ledger says about one loan as of a given
// instant. It is derived purely by replay: running Replay twice over the
// same transactions yields an identical Statement.
type Statement struct {
	AsOf   time.Time
	Status loan.Status

	OutstandingFees      decimal.Decimal
	OutstandingInterest  decimal.Decimal
	OutstandingPrincipal decimal.Decimal

	TotalDrawn           decimal.Decimal
	TotalRepaid          decimal.Decimal
	TotalInterestAccrued decimal.Decimal
	TotalFeesCharged     decimal.Decimal

	FeesPaid      decimal.Decimal
	InterestPaid  decimal.Decimal
	PrincipalPaid decimal.Decimal
	// Overpayment accumulates waterfall remainders found in the ledger. The
	// repayment usecase rejects them up front, so a non-zero value here means
	// the ledger was written by an older policy.
	Overpayment decimal.Decimal

	SettledOn     *time.Time
	SettledAmount decimal.Decimal

	// Progress percentages in [0, 100].
	SettlementProgress decimal.Decimal
	PrincipalProgress  decimal.Decimal
	InterestProgress   decimal.Decimal
}

// Replay derives a loan's Statement by walking its ledger in chronological
// order: interest accrues on the outstanding principal between entries, every
// day at the rate period covering it (periods archived by restructurings,
// then the current rates from RateEffectiveFrom), fee and interest entries
// raise the respective obligations, and each repayment is split through the
// waterfall. Entries dated after now are ignored: the statement is "as of
// now".
func Replay(l *loan.Loan, txns []transaction.Transaction, now time.Time) (*Statement, error) {
	if l == nil {
		return nil, validationf("loan is required")
	}
	if l.DueDate.Before(l.StartDate) {
		return nil, validationf("loan due date %s precedes start date %s",
			l.DueDate.Format(time.RFC3339), l.StartDate.Format(time.RFC3339))
	}

	ordered := make([]transaction.Transaction, 0, len(txns))
	for _, t := range txns {
		if !t.Date.After(now) {
			ordered = append(ordered, t)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].Date.Before(ordered[j].Date)
	})

	sched := l.RateSchedule()

	st := &Statement{AsOf: now}
	cursor := l.StartDate

	accrueTo := func(until time.Time) error {
		for from := cursor; from.Before(until); {
			rate, end := rateInEffect(sched, from, until)
			inc, err := AccrueBetween(st.OutstandingPrincipal, rate, from, end)
			if err != nil {
				return err
			}
			st.OutstandingInterest = st.OutstandingInterest.Add(inc)
			st.TotalInterestAccrued = st.TotalInterestAccrued.Add(inc)
			from = end
		}
		return nil
	}

	for i := range ordered {
		t := &ordered[i]
		if t.Date.After(cursor) {
			if err := accrueTo(t.Date); err != nil {
				return nil, err
			}
			cursor = t.Date
		}

		switch t.Type {
		case transaction.TypeDraw:
			if !t.Amount.IsPositive() {
				return nil, validationf("draw %s has non-positive amount %s", t.TxID, t.Amount)
			}
			st.OutstandingPrincipal = st.OutstandingPrincipal.Add(t.Amount)
			st.TotalDrawn = st.TotalDrawn.Add(t.Amount)
			// A fresh draw reopens a previously settled loan.
			st.SettledOn = nil
			st.SettledAmount = decimal.Zero

		case transaction.TypeFee:
			if t.Amount.IsNegative() {
				return nil, validationf("fee %s has negative amount %s", t.TxID, t.Amount)
			}
			st.OutstandingFees = st.OutstandingFees.Add(t.Amount)
			st.TotalFeesCharged = st.TotalFeesCharged.Add(t.Amount)

		case transaction.TypeInterest:
			// Manually posted interest (penalty charges, imported ledgers)
			// adds to the interest obligation.
			if t.Amount.IsNegative() {
				return nil, validationf("interest posting %s has negative amount %s", t.TxID, t.Amount)
			}
			st.OutstandingInterest = st.OutstandingInterest.Add(t.Amount)
			st.TotalInterestAccrued = st.TotalInterestAccrued.Add(t.Amount)

		case transaction.TypeRepayment:
			alloc, err := Allocate(t.Amount, st.OutstandingFees, st.OutstandingInterest, st.OutstandingPrincipal)
			if err != nil {
				return nil, err
			}
			st.OutstandingFees = st.OutstandingFees.Sub(alloc.Fees)
			st.OutstandingInterest = st.OutstandingInterest.Sub(alloc.Interest)
			st.OutstandingPrincipal = st.OutstandingPrincipal.Sub(alloc.Principal)
			st.FeesPaid = st.FeesPaid.Add(alloc.Fees)
			st.InterestPaid = st.InterestPaid.Add(alloc.Interest)
			st.PrincipalPaid = st.PrincipalPaid.Add(alloc.Principal)
			st.Overpayment = st.Overpayment.Add(alloc.Remainder)
			st.TotalRepaid = st.TotalRepaid.Add(t.Amount)
			if st.OutstandingPrincipal.IsZero() && st.TotalDrawn.IsPositive() && st.SettledOn == nil {
				d := t.Date
				st.SettledOn = &d
				st.SettledAmount = st.TotalRepaid
			}

		case transaction.TypeLimitChange, transaction.TypeOther:
			// Facility-level or informational; no effect on loan balances.

		default:
			return nil, validationf("transaction %s has unknown type %q", t.TxID, t.Type)
		}
	}

	if err := accrueTo(now); err != nil {
		return nil, err
	}

	st.Status = deriveStatus(l, st, now)
	st.SettlementProgress = money.ClampPercent(
		money.Percent(st.TotalRepaid, st.TotalDrawn.Add(st.TotalInterestAccrued)))
	st.PrincipalProgress = money.ClampPercent(money.Percent(st.PrincipalPaid, st.TotalDrawn))
	if st.TotalInterestAccrued.IsZero() {
		// Nothing accrued means nothing owed: the interest obligation is
		// fully covered by definition.
		st.InterestProgress = decimal.NewFromInt(100)
	} else {
		st.InterestProgress = money.ClampPercent(money.Percent(st.InterestPaid, st.TotalInterestAccrued))
	}
	return st, nil
}

func deriveStatus(l *loan.Loan, st *Statement, now time.Time) loan.Status {
	if st.TotalDrawn.IsPositive() && st.OutstandingPrincipal.IsZero() {
		return loan.StatusSettled
	}
	if now.After(l.DueDate) {
		return loan.StatusOverdue
	}
	if l.Status == loan.StatusRestructured {
		return loan.StatusRestructured
	}
	return loan.StatusActive
}

// rateInEffect returns the annual rate covering from, and the instant that
// coverage ends: the next period's start or until, whichever comes first.
// Days before the earliest period accrue at that earliest period's rates.
func rateInEffect(sched loan.RatePeriods, from, until time.Time) (decimal.Decimal, time.Time) {
	idx := 0
	for i := 1; i < len(sched); i++ {
		if sched[i].From.After(from) {
			break
		}
		idx = i
	}
	end := until
	if idx+1 < len(sched) && sched[idx+1].From.Before(end) {
		end = sched[idx+1].From
	}
	return sched[idx].AllInRate(), end
}
