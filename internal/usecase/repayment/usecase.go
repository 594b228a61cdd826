package repayment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"tamweel-backend/internal/adapter/events"
	domain "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/domain/uow"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/id"
	"tamweel-backend/pkg/money"
)

const dateLayout = "2006-01-02"

// ErrOverpayment rejects payments beyond the loan's total obligations. The
// wrapped message names the maximum acceptable amount.
var ErrOverpayment = errors.New("payment exceeds total outstanding obligations")

// EventPublisher pushes portfolio events after a commit.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, userID string, data any) error
}

type Usecase struct {
	uow uow.UnitOfWork
	pub EventPublisher
}

func NewUsecase(tx uow.UnitOfWork, pub EventPublisher) *Usecase {
	return &Usecase{uow: tx, pub: pub}
}

// Record appends a repayment to the ledger. The loan row is locked, balances
// are replayed as of the payment date and the amount is pushed through the
// waterfall; anything the waterfall cannot place is rejected rather than
// banked as credit. A payment that zeroes the principal settles the loan.
func (u *Usecase) Record(ctx context.Context, userID, loanID string, in RecordInput) (*ReceiptDTO, error) {
	switch {
	case !in.Amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be positive", engine.ErrValidation)
	case in.Date.IsZero():
		return nil, fmt.Errorf("%w: date is required", engine.ErrValidation)
	}

	now := time.Now().UTC()
	var receipt *ReceiptDTO
	var recorded events.RepaymentRecordedEvent
	var settled *events.LoanSettledEvent
	err := u.uow.WithinLoanTx(ctx, userID, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status == domain.StatusSettled {
			return domain.ErrAlreadySettled
		}
		if in.Date.Before(l.StartDate) {
			return fmt.Errorf("%w: payment date is before the loan start", engine.ErrValidation)
		}

		hist, err := r.Transactions.ListByLoan(ctx, userID, l.LoanID)
		if err != nil {
			return err
		}
		st, err := engine.Replay(l, hist, in.Date)
		if err != nil {
			return err
		}
		alloc, err := engine.Allocate(in.Amount, st.OutstandingFees, st.OutstandingInterest, st.OutstandingPrincipal)
		if err != nil {
			return err
		}
		if alloc.Remainder.IsPositive() {
			maxAcceptable := st.OutstandingFees.Add(st.OutstandingInterest).Add(st.OutstandingPrincipal)
			return fmt.Errorf("%w: maximum acceptable is %s", ErrOverpayment, maxAcceptable.StringFixed(2))
		}

		f, err := r.Facilities.GetByFacilityID(ctx, userID, l.FacilityID)
		if err != nil {
			return err
		}
		entry := &domainTransaction.Transaction{
			TxID:       id.NewID32(),
			UserID:     userID,
			BankID:     f.BankID,
			FacilityID: l.FacilityID,
			LoanID:     l.LoanID,
			Type:       domainTransaction.TypeRepayment,
			Date:       in.Date,
			Amount:     in.Amount,
			Reference:  in.Reference,
			Notes:      in.Notes,
		}
		if err := r.Transactions.Create(ctx, entry); err != nil {
			return err
		}

		remaining := st.OutstandingPrincipal.Sub(alloc.Principal)
		if remaining.IsZero() {
			if err := l.Transition(domain.StatusSettled, now); err != nil {
				return err
			}
			d := in.Date
			l.SettledAt = &d
			l.SettledAmount = decimal.NewNullDecimal(st.TotalRepaid.Add(in.Amount))
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			settled = &events.LoanSettledEvent{
				LoanID:        l.LoanID,
				SettledOn:     in.Date.Format(dateLayout),
				SettledAmount: l.SettledAmount.Decimal.StringFixed(2),
			}
		}

		recorded = events.RepaymentRecordedEvent{
			LoanID:    l.LoanID,
			TxID:      entry.TxID,
			Amount:    in.Amount.StringFixed(2),
			Fees:      alloc.Fees.StringFixed(2),
			Interest:  alloc.Interest.StringFixed(2),
			Principal: alloc.Principal.StringFixed(2),
		}
		receipt = &ReceiptDTO{
			LoanID:               l.LoanID,
			TxID:                 entry.TxID,
			Amount:               money.AsFloat(in.Amount),
			Date:                 in.Date.Format(dateLayout),
			FeesPaid:             money.AsFloat(alloc.Fees),
			InterestPaid:         money.AsFloat(alloc.Interest),
			PrincipalPaid:        money.AsFloat(alloc.Principal),
			OutstandingFees:      money.AsFloat(st.OutstandingFees.Sub(alloc.Fees)),
			OutstandingInterest:  money.AsFloat(st.OutstandingInterest.Sub(alloc.Interest)),
			OutstandingPrincipal: money.AsFloat(remaining),
			Settled:              remaining.IsZero(),
			LoanStatus:           string(l.Status),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.pub.Publish(ctx, events.RepaymentRecorded, userID, recorded); err != nil {
		log.Printf("repayment: publish %s: %v", events.RepaymentRecorded, err)
	}
	if settled != nil {
		if err := u.pub.Publish(ctx, events.LoanSettled, userID, *settled); err != nil {
			log.Printf("repayment: publish %s: %v", events.LoanSettled, err)
		}
	}
	return receipt, nil
}

// PostFee appends a fee to the loan's ledger. Fees raise the fee obligation
// ahead of interest and principal in the waterfall.
func (u *Usecase) PostFee(ctx context.Context, userID, loanID string, in FeeInput) (*FeeDTO, error) {
	switch {
	case !in.Amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be positive", engine.ErrValidation)
	case in.Date.IsZero():
		return nil, fmt.Errorf("%w: date is required", engine.ErrValidation)
	}

	var dto *FeeDTO
	err := u.uow.WithinLoanTx(ctx, userID, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.Status == domain.StatusSettled {
			return domain.ErrAlreadySettled
		}
		if in.Date.Before(l.StartDate) {
			return fmt.Errorf("%w: fee date is before the loan start", engine.ErrValidation)
		}

		hist, err := r.Transactions.ListByLoan(ctx, userID, l.LoanID)
		if err != nil {
			return err
		}
		st, err := engine.Replay(l, hist, in.Date)
		if err != nil {
			return err
		}

		f, err := r.Facilities.GetByFacilityID(ctx, userID, l.FacilityID)
		if err != nil {
			return err
		}
		entry := &domainTransaction.Transaction{
			TxID:       id.NewID32(),
			UserID:     userID,
			BankID:     f.BankID,
			FacilityID: l.FacilityID,
			LoanID:     l.LoanID,
			Type:       domainTransaction.TypeFee,
			Date:       in.Date,
			Amount:     in.Amount,
			Reference:  in.Reference,
			Notes:      in.Notes,
		}
		if err := r.Transactions.Create(ctx, entry); err != nil {
			return err
		}
		dto = &FeeDTO{
			LoanID:          l.LoanID,
			TxID:            entry.TxID,
			Amount:          money.AsFloat(in.Amount),
			Date:            in.Date.Format(dateLayout),
			OutstandingFees: money.AsFloat(st.OutstandingFees.Add(in.Amount)),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.pub.Publish(ctx, events.FeePosted, userID, events.FeePostedEvent{
		LoanID: loanID,
		TxID:   dto.TxID,
		Amount: in.Amount.StringFixed(2),
	}); err != nil {
		log.Printf("repayment: publish %s: %v", events.FeePosted, err)
	}
	return dto, nil
}
