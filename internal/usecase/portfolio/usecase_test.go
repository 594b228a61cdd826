package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	domainBank "tamweel-backend/internal/domain/bank"
	domainCollateral "tamweel-backend/internal/domain/collateral"
	domainFacility "tamweel-backend/internal/domain/facility"
	domainLoan "tamweel-backend/internal/domain/loan"
	domainSnapshot "tamweel-backend/internal/domain/snapshot"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/domain/uow"
	"tamweel-backend/internal/engine"
	"tamweel-backend/internal/infrastructure/cache"
	"tamweel-backend/internal/testutil/repomock"
	"tamweel-backend/internal/testutil/uowmock"
)

const userID = "ffffffffffffffffffffffffffffffff"

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

// book is two banks, one facility each, one open zero-rate loan each:
// 200k drawn of 1M at Alpha, 450k drawn of 500k at Beta, 1.3M collateral.
type book struct {
	banks     *repomock.Banks
	facs      *repomock.Facilities
	loans     *repomock.Loans
	txns      *repomock.Transactions
	colls     *repomock.Collaterals
	bankCalls int
}

func newBook() *book {
	b := &book{}
	b.banks = &repomock.Banks{
		ListByUserFn: func(ctx context.Context, gotUser string) ([]domainBank.Bank, error) {
			b.bankCalls++
			return []domainBank.Bank{
				{BankID: "bank-a", UserID: userID, Name: "Alpha", Active: true},
				{BankID: "bank-b", UserID: userID, Name: "Beta", Active: true},
			}, nil
		},
	}
	b.facs = &repomock.Facilities{
		ListByUserFn: func(ctx context.Context, gotUser string) ([]domainFacility.Facility, error) {
			return []domainFacility.Facility{
				{FacilityID: "f1", UserID: userID, BankID: "bank-a", Name: "A line",
					Type: domainFacility.TypeTerm, CreditLimit: dec("1000000"),
					StartDate: day(2024, 1, 1), ExpiryDate: day(2027, 1, 1), Active: true},
				{FacilityID: "f2", UserID: userID, BankID: "bank-b", Name: "B line",
					Type: domainFacility.TypeRevolving, CreditLimit: dec("500000"),
					StartDate: day(2024, 1, 1), ExpiryDate: day(2027, 1, 1), Active: true},
			}, nil
		},
	}
	b.loans = &repomock.Loans{
		ListOpenByUserFn: func(ctx context.Context, gotUser string) ([]domainLoan.Loan, error) {
			return []domainLoan.Loan{
				{ID: 1, LoanID: "ln-1", UserID: userID, FacilityID: "f1", Amount: dec("200000"),
					StartDate: day(2024, 2, 1), DueDate: day(2030, 1, 1), Status: domainLoan.StatusActive},
				{ID: 2, LoanID: "ln-2", UserID: userID, FacilityID: "f2", Amount: dec("450000"),
					StartDate: day(2024, 2, 1), DueDate: day(2030, 1, 1), Status: domainLoan.StatusActive},
			}, nil
		},
	}
	b.txns = &repomock.Transactions{
		ListByLoanFn: func(ctx context.Context, gotUser, loanID string) ([]domainTransaction.Transaction, error) {
			amount := "200000"
			if loanID == "ln-2" {
				amount = "450000"
			}
			return []domainTransaction.Transaction{{
				ID: 1, TxID: "t-" + loanID, UserID: userID, FacilityID: "f-any", LoanID: loanID,
				Type: domainTransaction.TypeDraw, Date: day(2024, 2, 1), Amount: dec(amount),
			}}, nil
		},
	}
	b.colls = &repomock.Collaterals{
		ListByUserFn: func(ctx context.Context, gotUser string) ([]domainCollateral.Collateral, error) {
			return []domainCollateral.Collateral{
				{CollateralID: "c1", UserID: userID, AssetType: "real_estate", CurrentValue: dec("1300000")},
			}, nil
		},
	}
	return b
}

func newViews(t *testing.T) *cache.ViewCache[SummaryDTO] {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return cache.NewViewCache[SummaryDTO](client, time.Minute)
}

func TestUsecase_Summary(t *testing.T) {
	b := newBook()
	uc := NewUsecase(b.banks, b.facs, b.loans, b.txns, b.colls, &repomock.Snapshots{},
		uowmock.New(), newViews(t), &pubStub{})

	dto, err := uc.Summary(context.Background(), userID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if dto.TotalOutstanding != 650000 || dto.TotalCreditLimit != 1500000 || dto.AvailableCredit != 850000 {
		t.Fatalf("totals wrong: %+v", dto)
	}
	if !dto.LTVDefined || dto.PortfolioLTV != 50 {
		t.Fatalf("ltv %v (defined=%v), want 50", dto.PortfolioLTV, dto.LTVDefined)
	}
	if dto.ActiveLoansCount != 2 || len(dto.BankExposures) != 2 {
		t.Fatalf("loan/exposure counts wrong: %+v", dto)
	}
	if dto.BankExposures[0].BankID != "bank-a" || dto.BankExposures[0].Utilization != 20 {
		t.Fatalf("bank-a exposure wrong: %+v", dto.BankExposures[0])
	}
	if dto.BankExposures[1].BankID != "bank-b" || dto.BankExposures[1].Utilization != 90 {
		t.Fatalf("bank-b exposure wrong: %+v", dto.BankExposures[1])
	}

	// per-bank rows always sum to the totals
	var sumOut, sumLimit float64
	for _, exp := range dto.BankExposures {
		sumOut += exp.Outstanding
		sumLimit += exp.CreditLimit
	}
	if sumOut != dto.TotalOutstanding || sumLimit != dto.TotalCreditLimit {
		t.Fatalf("exposure rows do not sum to totals: %v/%v", sumOut, sumLimit)
	}

	// second call is served from the view cache
	again, err := uc.Summary(context.Background(), userID)
	if err != nil {
		t.Fatalf("Summary (cached): %v", err)
	}
	if b.bankCalls != 1 {
		t.Fatalf("expected one repository pass, got %d", b.bankCalls)
	}
	if again.TotalOutstanding != dto.TotalOutstanding {
		t.Fatalf("cached summary diverged: %+v", again)
	}
}

func TestUsecase_Summary_NoCollateral(t *testing.T) {
	b := newBook()
	b.colls = &repomock.Collaterals{
		ListByUserFn: func(ctx context.Context, gotUser string) ([]domainCollateral.Collateral, error) {
			return nil, nil
		},
	}
	uc := NewUsecase(b.banks, b.facs, b.loans, b.txns, b.colls, &repomock.Snapshots{},
		uowmock.New(), newViews(t), &pubStub{})

	dto, err := uc.Summary(context.Background(), userID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if dto.LTVDefined || dto.PortfolioLTV != 0 {
		t.Fatalf("ltv should be undefined with no collateral: %+v", dto)
	}
}

func TestUsecase_TakeSnapshot(t *testing.T) {
	b := newBook()
	var created []domainSnapshot.ExposureSnapshot
	snaps := &repomock.Snapshots{
		CreateFn: func(ctx context.Context, s *domainSnapshot.ExposureSnapshot) error {
			created = append(created, *s)
			return nil
		},
	}
	tx := &uowmock.UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(uow.Repos{Snapshots: snaps})
		},
	}
	pub := &pubStub{}
	uc := NewUsecase(b.banks, b.facs, b.loans, b.txns, b.colls, snaps, tx, newViews(t), pub)

	rows, err := uc.TakeSnapshot(context.Background(), userID)
	if err != nil {
		t.Fatalf("TakeSnapshot: %v", err)
	}
	if len(created) != 3 || len(rows) != 3 {
		t.Fatalf("want 3 rows (portfolio + 2 banks), got %d/%d", len(created), len(rows))
	}
	whole := created[0]
	if whole.BankID != "" || !whole.Outstanding.Equal(dec("650000")) || !whole.CreditLimit.Equal(dec("1500000")) {
		t.Fatalf("portfolio row wrong: %+v", whole)
	}
	if rows[0].Utilization != 43.33 {
		t.Fatalf("portfolio utilization %v, want 43.33", rows[0].Utilization)
	}
	if created[1].BankID != "bank-a" || created[2].BankID != "bank-b" {
		t.Fatalf("bank rows wrong: %+v", created[1:])
	}
	if len(pub.published) != 1 || pub.published[0] != "snapshot.created" {
		t.Fatalf("events published: %v", pub.published)
	}
}

func TestUsecase_ListSnapshots(t *testing.T) {
	t.Run("rejects a negative limit", func(t *testing.T) {
		uc := NewUsecase(&repomock.Banks{}, &repomock.Facilities{}, &repomock.Loans{}, &repomock.Transactions{},
			&repomock.Collaterals{}, &repomock.Snapshots{}, uowmock.New(), newViews(t), &pubStub{})
		if _, err := uc.ListSnapshots(context.Background(), userID, "", -1); !errors.Is(err, engine.ErrValidation) {
			t.Fatalf("want validation error, got %v", err)
		}
	})

	t.Run("passes the scope through and maps rows", func(t *testing.T) {
		var gotBank string
		var gotLimit int
		snaps := &repomock.Snapshots{
			ListByUserFn: func(ctx context.Context, gotUser, bankID string, limit int) ([]domainSnapshot.ExposureSnapshot, error) {
				gotBank, gotLimit = bankID, limit
				return []domainSnapshot.ExposureSnapshot{{
					SnapshotID: "snap-1", UserID: userID, BankID: bankID, Date: day(2025, 8, 1),
					Outstanding: dec("650000"), CreditLimit: dec("1500000"), Utilization: dec("43.3333"),
				}}, nil
			},
		}
		uc := NewUsecase(&repomock.Banks{}, &repomock.Facilities{}, &repomock.Loans{}, &repomock.Transactions{},
			&repomock.Collaterals{}, snaps, uowmock.New(), newViews(t), &pubStub{})

		rows, err := uc.ListSnapshots(context.Background(), userID, "bank-a", 10)
		if err != nil {
			t.Fatalf("ListSnapshots: %v", err)
		}
		if gotBank != "bank-a" || gotLimit != 10 {
			t.Fatalf("scope not passed through: %q/%d", gotBank, gotLimit)
		}
		if len(rows) != 1 || rows[0].Utilization != 43.33 {
			t.Fatalf("rows mapped wrong: %+v", rows)
		}
	})
}
