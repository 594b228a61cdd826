package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"tamweel-backend/internal/adapter/events"
	domainFacility "tamweel-backend/internal/domain/facility"
	domain "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/domain/uow"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/id"
	"tamweel-backend/pkg/money"
)

const dateLayout = "2006-01-02"

// EventPublisher pushes portfolio events after a commit.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, userID string, data any) error
}

type Usecase struct {
	repo domain.Repository
	facs domainFacility.Repository
	txns domainTransaction.Repository
	uow  uow.UnitOfWork
	pub  EventPublisher
}

func NewUsecase(r domain.Repository, facs domainFacility.Repository, txns domainTransaction.Repository, tx uow.UnitOfWork, pub EventPublisher) *Usecase {
	return &Usecase{repo: r, facs: facs, txns: txns, uow: tx, pub: pub}
}

// Drawdown opens a loan and appends the draw to the ledger in one
// transaction. The facility row is locked so two concurrent draws cannot
// both pass the headroom check.
func (u *Usecase) Drawdown(ctx context.Context, userID string, in DrawdownInput) (*LoanDTO, error) {
	switch {
	case in.FacilityID == "":
		return nil, fmt.Errorf("%w: facility_id is required", engine.ErrValidation)
	case !in.Amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be positive", engine.ErrValidation)
	case in.StartDate.IsZero() || in.DueDate.IsZero():
		return nil, fmt.Errorf("%w: start_date and due_date are required", engine.ErrValidation)
	case in.DueDate.Before(in.StartDate):
		return nil, fmt.Errorf("%w: due_date is before start_date", engine.ErrValidation)
	}

	now := time.Now().UTC()
	l := &domain.Loan{
		LoanID:            id.NewID32(),
		UserID:            userID,
		FacilityID:        in.FacilityID,
		Amount:            in.Amount,
		RateEffectiveFrom: in.StartDate,
		StartDate:         in.StartDate,
		DueDate:           in.DueDate,
		Status:            domain.StatusActive,
		StatusUpdatedAt:   now,
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Facilities.GetByFacilityIDForUpdate(ctx, userID, in.FacilityID)
		if err != nil {
			if errors.Is(err, domainFacility.ErrNotFound) {
				return fmt.Errorf("%w: facility %s not found", engine.ErrValidation, in.FacilityID)
			}
			return err
		}
		if !f.Active {
			return fmt.Errorf("%w: facility %s is inactive", engine.ErrValidation, f.FacilityID)
		}
		if f.ExpiredAt(in.StartDate) {
			return fmt.Errorf("%w: facility %s expired on %s", engine.ErrValidation,
				f.FacilityID, f.ExpiryDate.Format(dateLayout))
		}

		out, err := outstandingOnFacility(ctx, r.Loans, r.Transactions, userID, in.FacilityID, now)
		if err != nil {
			return err
		}
		available := f.CreditLimit.Sub(out)
		if in.Amount.GreaterThan(available) {
			return fmt.Errorf("%w: amount exceeds available credit %s", engine.ErrValidation,
				available.StringFixed(2))
		}

		l.SiborRate = f.SiborRate
		l.BankRate = f.BankRate
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		return r.Transactions.Create(ctx, &domainTransaction.Transaction{
			TxID:       id.NewID32(),
			UserID:     userID,
			BankID:     f.BankID,
			FacilityID: f.FacilityID,
			LoanID:     l.LoanID,
			Type:       domainTransaction.TypeDraw,
			Date:       in.StartDate,
			Amount:     in.Amount,
			Reference:  in.Reference,
			Notes:      in.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := u.pub.Publish(ctx, events.LoanCreated, userID, events.LoanCreatedEvent{
		LoanID:     l.LoanID,
		FacilityID: l.FacilityID,
		Amount:     l.Amount.StringFixed(2),
		DueDate:    l.DueDate.Format(dateLayout),
	}); err != nil {
		log.Printf("loan: publish %s: %v", events.LoanCreated, err)
	}

	dto := toDTO(l)
	return &dto, nil
}

// Get returns the loan together with its ledger-derived standing as of now.
func (u *Usecase) Get(ctx context.Context, userID, loanID string) (*LoanDetailDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	hist, err := u.txns.ListByLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	st, err := engine.Replay(l, hist, now)
	if err != nil {
		return nil, err
	}
	return &LoanDetailDTO{
		LoanDTO:              toDTO(l),
		DerivedStatus:        string(st.Status),
		OutstandingPrincipal: money.AsFloat(st.OutstandingPrincipal),
		AccruedInterest:      money.AsFloat(st.OutstandingInterest),
		OutstandingFees:      money.AsFloat(st.OutstandingFees),
		TotalOutstanding:     money.AsFloat(st.OutstandingPrincipal.Add(st.OutstandingInterest).Add(st.OutstandingFees)),
		TotalRepaid:          money.AsFloat(st.TotalRepaid),
		SettlementProgress:   money.AsFloat(st.SettlementProgress),
		AsOf:                 now,
	}, nil
}

// List returns the user's loans from stored rows. The filter matches the
// stored status; replay-derived standing is Get's job.
func (u *Usecase) List(ctx context.Context, userID string, status domain.Status) ([]LoanDTO, error) {
	switch status {
	case "", domain.StatusActive, domain.StatusOverdue, domain.StatusSettled, domain.StatusRestructured:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", engine.ErrValidation, status)
	}
	rows, err := u.repo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toDTO(&rows[i]))
	}
	return out, nil
}

// ListTransactions returns the loan's ledger rows oldest first.
func (u *Usecase) ListTransactions(ctx context.Context, userID, loanID string) ([]TransactionDTO, error) {
	if _, err := u.repo.GetByLoanID(ctx, userID, loanID); err != nil {
		return nil, err
	}
	rows, err := u.txns.ListByLoan(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(rows))
	for _, tr := range rows {
		out = append(out, TransactionDTO{
			TxID:      tr.TxID,
			Type:      string(tr.Type),
			Date:      tr.Date.Format(dateLayout),
			Amount:    money.AsFloat(tr.Amount),
			Reference: tr.Reference,
			Notes:     tr.Notes,
		})
	}
	return out, nil
}

// Restructure applies new rates (and optionally a new due date) from
// EffectiveDate onward. The outgoing rate period is archived on the loan, so
// every future replay still accrues the old rate over the days it governed;
// the ledger itself is untouched and repayments before the change keep their
// original allocation.
func (u *Usecase) Restructure(ctx context.Context, userID, loanID string, in RestructureInput) (*LoanDTO, error) {
	switch {
	case in.NewSiborRate.IsNegative() || in.NewBankRate.IsNegative():
		return nil, fmt.Errorf("%w: rates must not be negative", engine.ErrValidation)
	case in.EffectiveDate.IsZero():
		return nil, fmt.Errorf("%w: effective_date is required", engine.ErrValidation)
	}

	now := time.Now().UTC()
	var result *domain.Loan
	err := u.uow.WithinLoanTx(ctx, userID, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status == domain.StatusSettled {
			return domain.ErrAlreadySettled
		}
		switch {
		case in.EffectiveDate.Before(l.StartDate):
			return fmt.Errorf("%w: effective_date is before the loan start", engine.ErrValidation)
		case in.EffectiveDate.Before(l.RateEffectiveFrom):
			return fmt.Errorf("%w: effective_date is before the current rate period", engine.ErrValidation)
		case in.NewDueDate != nil && in.NewDueDate.Before(in.EffectiveDate):
			return fmt.Errorf("%w: new due_date is before effective_date", engine.ErrValidation)
		}

		l.CloseRatePeriod(in.EffectiveDate)
		l.SiborRate = in.NewSiborRate
		l.BankRate = in.NewBankRate
		l.RateEffectiveFrom = in.EffectiveDate
		if in.NewDueDate != nil {
			l.DueDate = *in.NewDueDate
		}
		if err := l.Transition(domain.StatusRestructured, now); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		result = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := events.LoanRestructuredEvent{
		LoanID:     result.LoanID,
		NewRatePct: result.AllInRate().StringFixed(2),
	}
	if in.NewDueDate != nil {
		ev.NewDueDate = in.NewDueDate.Format(dateLayout)
	}
	if err := u.pub.Publish(ctx, events.LoanRestructured, userID, ev); err != nil {
		log.Printf("loan: publish %s: %v", events.LoanRestructured, err)
	}

	dto := toDTO(result)
	return &dto, nil
}

// outstandingOnFacility sums the replayed principal of every open loan on
// the facility.
func outstandingOnFacility(ctx context.Context, loans domain.Repository, txns domainTransaction.Repository, userID, facilityID string, now time.Time) (decimal.Decimal, error) {
	open, err := loans.ListOpenByFacility(ctx, userID, facilityID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range open {
		hist, err := txns.ListByLoan(ctx, userID, open[i].LoanID)
		if err != nil {
			return decimal.Zero, err
		}
		st, err := engine.Replay(&open[i], hist, now)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(st.OutstandingPrincipal)
	}
	return total, nil
}

func toDTO(l *domain.Loan) LoanDTO {
	dto := LoanDTO{
		LoanID:            l.LoanID,
		FacilityID:        l.FacilityID,
		Amount:            money.AsFloat(l.Amount),
		SiborRate:         money.AsFloat(l.SiborRate),
		BankRate:          money.AsFloat(l.BankRate),
		AllInRate:         money.AsFloat(l.AllInRate()),
		RateEffectiveFrom: l.RateEffectiveFrom.Format(dateLayout),
		StartDate:         l.StartDate.Format(dateLayout),
		DueDate:           l.DueDate.Format(dateLayout),
		Status:            string(l.Status),
		SettledAt:         l.SettledAt,
		CreatedAt:         l.CreatedAt,
	}
	if l.SettledAmount.Valid {
		v := money.AsFloat(l.SettledAmount.Decimal)
		dto.SettledAmount = &v
	}
	return dto
}
