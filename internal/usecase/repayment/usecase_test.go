package repayment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainFacility "tamweel-backend/internal/domain/facility"
	domain "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/domain/uow"
	"tamweel-backend/internal/engine"
	"tamweel-backend/internal/testutil/repomock"
	"tamweel-backend/internal/testutil/uowmock"
)

const userID = "dddddddddddddddddddddddddddddddd"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type pubStub struct {
	published []string
	err       error
}

func (p *pubStub) Publish(ctx context.Context, eventType, userID string, data any) error {
	p.published = append(p.published, eventType)
	return p.err
}

// zero-rate loan so outstanding figures depend only on the ledger rows
func baseLoan() *domain.Loan {
	return &domain.Loan{
		ID: 1, LoanID: "ln-1", UserID: userID, FacilityID: "fac-1",
		Amount: dec("50000"), StartDate: day(2024, 1, 1), DueDate: day(2030, 1, 1),
		RateEffectiveFrom: day(2024, 1, 1), Status: domain.StatusActive,
	}
}

func loanTx(l *domain.Loan, loans *repomock.Loans, txns *repomock.Transactions) *uowmock.UoW {
	facs := &repomock.Facilities{
		GetByFacilityIDFn: func(ctx context.Context, gotUser, facilityID string) (*domainFacility.Facility, error) {
			return &domainFacility.Facility{FacilityID: facilityID, UserID: userID, BankID: "bank-1"}, nil
		},
	}
	return &uowmock.UoW{
		WithinLoanTxFn: func(ctx context.Context, gotUser, loanID string, fn func(r uow.Repos, l *domain.Loan) error) error {
			return fn(uow.Repos{Facilities: facs, Loans: loans, Transactions: txns}, l)
		},
	}
}

func ledger(rows ...domainTransaction.Transaction) *repomock.Transactions {
	return &repomock.Transactions{
		ListByLoanFn: func(ctx context.Context, gotUser, loanID string) ([]domainTransaction.Transaction, error) {
			return rows, nil
		},
	}
}

func draw(id uint64, date time.Time, amount string) domainTransaction.Transaction {
	return domainTransaction.Transaction{
		ID: id, TxID: "t-draw", UserID: userID, BankID: "bank-1", FacilityID: "fac-1",
		LoanID: "ln-1", Type: domainTransaction.TypeDraw, Date: date, Amount: dec(amount),
	}
}

func TestUsecase_Record(t *testing.T) {
	t.Run("input validation", func(t *testing.T) {
		uc := NewUsecase(uowmock.New(), &pubStub{})
		if _, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: decimal.Zero, Date: day(2024, 2, 1)}); !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("zero amount: want validation error, got %v", err)
		}
		if _, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: dec("100")}); !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("zero date: want validation error, got %v", err)
		}
	})

	t.Run("settled loan takes no further payments", func(t *testing.T) {
		l := baseLoan()
		l.Status = domain.StatusSettled
		uc := NewUsecase(loanTx(l, &repomock.Loans{}, ledger()), &pubStub{})
		_, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: dec("100"), Date: day(2024, 2, 1)})
		if !errors.Is(err, domain.ErrAlreadySettled) {
			t.Fatalf("want ErrAlreadySettled, got %v", err)
		}
	})

	t.Run("payment before the loan start", func(t *testing.T) {
		uc := NewUsecase(loanTx(baseLoan(), &repomock.Loans{}, ledger()), &pubStub{})
		_, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: dec("100"), Date: day(2023, 12, 31)})
		if !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("overpayment names the maximum acceptable", func(t *testing.T) {
		uc := NewUsecase(loanTx(baseLoan(), &repomock.Loans{}, ledger(draw(1, day(2024, 1, 1), "50000"))), &pubStub{})
		_, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: dec("60000"), Date: day(2024, 2, 1)})
		if !errors.Is(err, ErrOverpayment) {
			t.Fatalf("want ErrOverpayment, got %v", err)
		}
		if !strings.Contains(err.Error(), "50000.00") {
			t.Fatalf("error should name the maximum, got %q", err)
		}
	})

	t.Run("waterfall split fees then interest then principal", func(t *testing.T) {
		rows := []domainTransaction.Transaction{
			draw(1, day(2024, 1, 1), "50000"),
			{ID: 2, TxID: "t-fee", UserID: userID, BankID: "bank-1", FacilityID: "fac-1", LoanID: "ln-1",
				Type: domainTransaction.TypeFee, Date: day(2024, 2, 1), Amount: dec("500")},
			{ID: 3, TxID: "t-int", UserID: userID, BankID: "bank-1", FacilityID: "fac-1", LoanID: "ln-1",
				Type: domainTransaction.TypeInterest, Date: day(2024, 2, 1), Amount: dec("1200")},
		}
		var entry *domainTransaction.Transaction
		txns := ledger(rows...)
		txns.CreateFn = func(ctx context.Context, tr *domainTransaction.Transaction) error { entry = tr; return nil }
		pub := &pubStub{}
		uc := NewUsecase(loanTx(baseLoan(), &repomock.Loans{}, txns), pub)

		receipt, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: dec("2000"), Date: day(2024, 3, 1)})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if receipt.FeesPaid != 500 || receipt.InterestPaid != 1200 || receipt.PrincipalPaid != 300 {
			t.Fatalf("split %v/%v/%v, want 500/1200/300", receipt.FeesPaid, receipt.InterestPaid, receipt.PrincipalPaid)
		}
		if receipt.OutstandingPrincipal != 49700 || receipt.OutstandingFees != 0 || receipt.OutstandingInterest != 0 {
			t.Fatalf("post-payment balances wrong: %+v", receipt)
		}
		if receipt.Settled {
			t.Fatalf("loan should not settle on a partial payment")
		}
		if entry == nil || entry.Type != domainTransaction.TypeRepayment || entry.BankID != "bank-1" {
			t.Fatalf("repayment entry wrong: %+v", entry)
		}
		if len(pub.published) != 1 || pub.published[0] != "repayment.recorded" {
			t.Fatalf("events published: %v", pub.published)
		}
	})

	t.Run("payment that zeroes principal settles the loan", func(t *testing.T) {
		l := baseLoan()
		var saved *domain.Loan
		loans := &repomock.Loans{SaveFn: func(ctx context.Context, got *domain.Loan) error { saved = got; return nil }}
		txns := ledger(draw(1, day(2024, 1, 1), "50000"))
		pub := &pubStub{}
		uc := NewUsecase(loanTx(l, loans, txns), pub)

		receipt, err := uc.Record(context.Background(), userID, "ln-1", RecordInput{Amount: dec("50000"), Date: day(2024, 6, 1)})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
		if !receipt.Settled || receipt.LoanStatus != "settled" {
			t.Fatalf("receipt should report settlement: %+v", receipt)
		}
		if saved == nil || saved.Status != domain.StatusSettled {
			t.Fatalf("loan row not settled: %+v", saved)
		}
		if saved.SettledAt == nil || !saved.SettledAt.Equal(day(2024, 6, 1)) {
			t.Fatalf("SettledAt %v, want the payment date", saved.SettledAt)
		}
		if !saved.SettledAmount.Valid || !saved.SettledAmount.Decimal.Equal(dec("50000")) {
			t.Fatalf("SettledAmount %v, want 50000", saved.SettledAmount)
		}
		if len(pub.published) != 2 || pub.published[0] != "repayment.recorded" || pub.published[1] != "loan.settled" {
			t.Fatalf("events published: %v", pub.published)
		}
	})
}

func TestUsecase_PostFee(t *testing.T) {
	t.Run("input validation", func(t *testing.T) {
		uc := NewUsecase(uowmock.New(), &pubStub{})
		if _, err := uc.PostFee(context.Background(), userID, "ln-1", FeeInput{Amount: dec("-5"), Date: day(2024, 2, 1)}); !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("negative amount: want validation error, got %v", err)
		}
		if _, err := uc.PostFee(context.Background(), userID, "ln-1", FeeInput{Amount: dec("250")}); !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("zero date: want validation error, got %v", err)
		}
	})

	t.Run("settled loan takes no fees", func(t *testing.T) {
		l := baseLoan()
		l.Status = domain.StatusSettled
		uc := NewUsecase(loanTx(l, &repomock.Loans{}, ledger()), &pubStub{})
		_, err := uc.PostFee(context.Background(), userID, "ln-1", FeeInput{Amount: dec("250"), Date: day(2024, 2, 1)})
		if !errors.Is(err, domain.ErrAlreadySettled) {
			t.Fatalf("want ErrAlreadySettled, got %v", err)
		}
	})

	t.Run("appends the fee and reports the new obligation", func(t *testing.T) {
		rows := []domainTransaction.Transaction{
			draw(1, day(2024, 1, 1), "50000"),
			{ID: 2, TxID: "t-fee", UserID: userID, BankID: "bank-1", FacilityID: "fac-1", LoanID: "ln-1",
				Type: domainTransaction.TypeFee, Date: day(2024, 2, 1), Amount: dec("150")},
		}
		var entry *domainTransaction.Transaction
		txns := ledger(rows...)
		txns.CreateFn = func(ctx context.Context, tr *domainTransaction.Transaction) error { entry = tr; return nil }
		pub := &pubStub{}
		uc := NewUsecase(loanTx(baseLoan(), &repomock.Loans{}, txns), pub)

		dto, err := uc.PostFee(context.Background(), userID, "ln-1", FeeInput{Amount: dec("250"), Date: day(2024, 3, 1), Reference: "late charge"})
		if err != nil {
			t.Fatalf("PostFee: %v", err)
		}
		if entry == nil || entry.Type != domainTransaction.TypeFee || !entry.Amount.Equal(dec("250")) {
			t.Fatalf("fee entry wrong: %+v", entry)
		}
		if dto.OutstandingFees != 400 {
			t.Fatalf("outstanding fees %v, want 400", dto.OutstandingFees)
		}
		if len(pub.published) != 1 || pub.published[0] != "fee.posted" {
			t.Fatalf("events published: %v", pub.published)
		}
	})
}
