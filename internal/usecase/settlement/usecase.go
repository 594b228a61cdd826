package settlement

import (
	"context"
	"time"

	domain "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/money"
)

const dateLayout = "2006-01-02"

type Usecase struct {
	loans domain.Repository
	txns  domainTransaction.Repository
}

func NewUsecase(loans domain.Repository, txns domainTransaction.Repository) *Usecase {
	return &Usecase{loans: loans, txns: txns}
}

// Statement replays the loan's ledger as of now and maps the result to the
// settlement record shape.
func (u *Usecase) Statement(ctx context.Context, userID, loanID string) (*StatementDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	hist, err := u.txns.ListByLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	st, err := engine.Replay(l, hist, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	dto := &StatementDTO{
		LoanID:             l.LoanID,
		AsOf:               st.AsOf,
		SettlementStatus:   string(st.Status),
		SettlementProgress: money.AsFloat(st.SettlementProgress),
		PrincipalProgress:  money.AsFloat(st.PrincipalProgress),
		InterestProgress:   money.AsFloat(st.InterestProgress),
		Breakdown: BreakdownDTO{
			PrincipalPaid:      money.AsFloat(st.PrincipalPaid),
			PrincipalRemaining: money.AsFloat(st.OutstandingPrincipal),
			InterestPaid:       money.AsFloat(st.InterestPaid),
			InterestRemaining:  money.AsFloat(st.OutstandingInterest),
			FeesRemaining:      money.AsFloat(st.OutstandingFees),
		},
		Totals: TotalsDTO{
			TotalDrawn:           money.AsFloat(st.TotalDrawn),
			TotalRepaid:          money.AsFloat(st.TotalRepaid),
			TotalInterestAccrued: money.AsFloat(st.TotalInterestAccrued),
			TotalFeesCharged:     money.AsFloat(st.TotalFeesCharged),
		},
	}
	if st.SettledOn != nil {
		d := st.SettledOn.Format(dateLayout)
		dto.SettledOn = &d
		amt := money.AsFloat(st.SettledAmount)
		dto.SettledAmount = &amt
	}
	return dto, nil
}
