package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/money"
)

const dateLayout = "2006-01-02"

// Scenario type discriminators in the response payload.
const (
	TypeRefinance    = "refinance"
	TypeEarlyPayment = "early_payment"
	TypeTermChange   = "term_change"
)

type Usecase struct {
	loans domain.Repository
	txns  domainTransaction.Repository
}

func NewUsecase(loans domain.Repository, txns domainTransaction.Repository) *Usecase {
	return &Usecase{loans: loans, txns: txns}
}

// Simulate runs the requested what-ifs over the loan's replayed ledger.
// Projections only: nothing here mutates the loan or appends a transaction.
func (u *Usecase) Simulate(ctx context.Context, userID, loanID string, in SimulateInput) (*ResponseDTO, error) {
	if in.Refinance == nil && in.EarlyPayment == nil && in.TermChange == nil {
		return nil, fmt.Errorf("%w: at least one scenario is required", engine.ErrValidation)
	}

	l, err := u.loans.GetByLoanID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	hist, err := u.txns.ListByLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	cur, err := engine.Baseline(l, hist, now)
	if err != nil {
		return nil, err
	}
	resp := &ResponseDTO{
		LoanID: l.LoanID,
		Current: CurrentDTO{
			Amount:               money.AsFloat(cur.Amount),
			Rate:                 money.AsFloat(cur.RatePct),
			DurationDays:         cur.DurationDays,
			Interest:             money.AsFloat(cur.Interest),
			TotalCost:            money.AsFloat(cur.TotalCost),
			OutstandingPrincipal: money.AsFloat(cur.OutstandingPrincipal),
			RemainingDays:        cur.RemainingDays,
			RemainingInterest:    money.AsFloat(cur.RemainingInterest),
		},
		Scenarios: make([]ScenarioDTO, 0, 3),
	}

	if in.Refinance != nil {
		r, err := engine.SimulateRefinance(l, hist, in.Refinance.NewRate, now)
		if err != nil {
			return nil, err
		}
		resp.Scenarios = append(resp.Scenarios, ScenarioDTO{
			Type:           TypeRefinance,
			NewRate:        fptr(r.NewRatePct),
			NewInterest:    fptr(r.NewInterest),
			Savings:        fptr(r.Savings),
			SavingsPercent: fptr(r.SavingsPercent),
			Recommendation: r.Recommendation,
		})
	}
	if in.EarlyPayment != nil {
		r, err := engine.SimulateEarlyPayment(l, hist, in.EarlyPayment.PaymentAmount, in.EarlyPayment.PaymentDate, now)
		if err != nil {
			return nil, err
		}
		date := r.PaymentDate.Format(dateLayout)
		settles := r.SettlesLoan
		resp.Scenarios = append(resp.Scenarios, ScenarioDTO{
			Type:                    TypeEarlyPayment,
			PaymentAmount:           fptr(r.PaymentAmount),
			PaymentDate:             &date,
			FeesPaid:                fptr(r.Allocation.Fees),
			InterestPaid:            fptr(r.Allocation.Interest),
			PrincipalPaid:           fptr(r.Allocation.Principal),
			NewOutstandingPrincipal: fptr(r.NewOutstandingPrincipal),
			Savings:                 fptr(r.InterestAvoided),
			SavingsPercent:          fptr(r.InterestAvoidedPercent),
			SettlesLoan:             &settles,
			Recommendation:          r.Recommendation,
		})
	}
	if in.TermChange != nil {
		r, err := engine.SimulateTermChange(l, hist, in.TermChange.NewDurationDays, now)
		if err != nil {
			return nil, err
		}
		days := r.NewDurationDays
		resp.Scenarios = append(resp.Scenarios, ScenarioDTO{
			Type:              TypeTermChange,
			NewDurationDays:   &days,
			NewInterest:       fptr(r.NewInterest),
			Difference:        fptr(r.Difference),
			DifferencePercent: fptr(r.DifferencePercent),
			Recommendation:    r.Recommendation,
		})
	}
	return resp, nil
}

func fptr(d decimal.Decimal) *float64 {
	f := money.AsFloat(d)
	return &f
}
