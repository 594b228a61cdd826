package facility

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"tamweel-backend/internal/adapter/events"
	domainBank "tamweel-backend/internal/domain/bank"
	domain "tamweel-backend/internal/domain/facility"
	domainLoan "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/domain/uow"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/id"
	"tamweel-backend/pkg/money"
)

const dateLayout = "2006-01-02"

// ErrLimitBelowOutstanding rejects a limit change that would leave the
// facility over-drawn.
var ErrLimitBelowOutstanding = errors.New("new credit limit is below the facility's outstanding balance")

// EventPublisher is the slice of the events adapter this usecase needs.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, userID string, data any) error
}

type Usecase struct {
	repo  domain.Repository
	banks domainBank.Repository
	loans domainLoan.Repository
	txns  domainTransaction.Repository
	uow   uow.UnitOfWork
	pub   EventPublisher
}

func NewUsecase(r domain.Repository, banks domainBank.Repository, loans domainLoan.Repository,
	txns domainTransaction.Repository, tx uow.UnitOfWork, pub EventPublisher) *Usecase {
	return &Usecase{repo: r, banks: banks, loans: loans, txns: txns, uow: tx, pub: pub}
}

func (u *Usecase) Create(ctx context.Context, userID string, in CreateInput) (*FacilityDTO, error) {
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: facility name is required", engine.ErrValidation)
	case !domain.ValidType(in.Type):
		return nil, fmt.Errorf("%w: unknown facility type %q", engine.ErrValidation, in.Type)
	case in.CreditLimit.IsNegative():
		return nil, fmt.Errorf("%w: credit limit %s must not be negative", engine.ErrValidation, in.CreditLimit)
	case in.SiborRate.IsNegative() || in.BankRate.IsNegative():
		return nil, fmt.Errorf("%w: rates must not be negative", engine.ErrValidation)
	case in.ExpiryDate.Before(in.StartDate):
		return nil, fmt.Errorf("%w: expiry date %s precedes start date %s",
			engine.ErrValidation, in.ExpiryDate.Format(dateLayout), in.StartDate.Format(dateLayout))
	}

	b, err := u.banks.GetByBankID(ctx, userID, in.BankID)
	if err != nil {
		if errors.Is(err, domainBank.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank %s not found", engine.ErrValidation, in.BankID)
		}
		return nil, err
	}
	if !b.Active {
		return nil, fmt.Errorf("%w: bank %s is deactivated", engine.ErrValidation, in.BankID)
	}

	f := &domain.Facility{
		FacilityID:  id.NewID32(),
		UserID:      userID,
		BankID:      in.BankID,
		Name:        name,
		Type:        in.Type,
		CreditLimit: in.CreditLimit,
		SiborRate:   in.SiborRate,
		BankRate:    in.BankRate,
		StartDate:   in.StartDate,
		ExpiryDate:  in.ExpiryDate,
		Active:      true,
	}
	if err := u.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	// A fresh facility has no ledger yet.
	return toDTO(f, decimal.Zero, 0), nil
}

func (u *Usecase) Get(ctx context.Context, userID, facilityID string) (*FacilityDTO, error) {
	f, err := u.repo.GetByFacilityID(ctx, userID, facilityID)
	if err != nil {
		return nil, err
	}
	out, open, err := facilityOutstanding(ctx, u.loans, u.txns, userID, facilityID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return toDTO(f, out, open), nil
}

func (u *Usecase) List(ctx context.Context, userID string) ([]FacilityDTO, error) {
	rows, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]FacilityDTO, 0, len(rows))
	for i := range rows {
		bal, open, err := facilityOutstanding(ctx, u.loans, u.txns, userID, rows[i].FacilityID, now)
		if err != nil {
			return nil, err
		}
		out = append(out, *toDTO(&rows[i], bal, open))
	}
	return out, nil
}

// Deactivate clears the active flag; the facility keeps serving its existing
// loans but refuses new drawdowns.
func (u *Usecase) Deactivate(ctx context.Context, userID, facilityID string) (*FacilityDTO, error) {
	f, err := u.repo.GetByFacilityID(ctx, userID, facilityID)
	if err != nil {
		return nil, err
	}
	if f.Active {
		f.Active = false
		if err := u.repo.Save(ctx, f); err != nil {
			return nil, err
		}
	}
	out, open, err := facilityOutstanding(ctx, u.loans, u.txns, userID, facilityID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return toDTO(f, out, open), nil
}

// ChangeLimit appends a signed limit_change entry to the ledger and moves the
// stored limit in the same transaction; the ledger row is the audit trail.
func (u *Usecase) ChangeLimit(ctx context.Context, userID, facilityID string, in ChangeLimitInput) (*LimitChangeDTO, error) {
	if in.NewLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit %s must not be negative", engine.ErrValidation, in.NewLimit)
	}

	now := time.Now().UTC()
	var dto *LimitChangeDTO
	var oldLimit decimal.Decimal

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		f, err := r.Facilities.GetByFacilityIDForUpdate(ctx, userID, facilityID)
		if err != nil {
			return err
		}
		if in.NewLimit.Equal(f.CreditLimit) {
			return fmt.Errorf("%w: new limit equals the current limit %s", engine.ErrValidation, f.CreditLimit)
		}

		out, _, err := facilityOutstanding(ctx, r.Loans, r.Transactions, userID, facilityID, now)
		if err != nil {
			return err
		}
		if in.NewLimit.LessThan(out) {
			return fmt.Errorf("%w: outstanding is %s", ErrLimitBelowOutstanding, out.StringFixed(2))
		}

		oldLimit = f.CreditLimit
		delta := in.NewLimit.Sub(f.CreditLimit)
		entry := &domainTransaction.Transaction{
			TxID:       id.NewID32(),
			UserID:     userID,
			BankID:     f.BankID,
			FacilityID: f.FacilityID,
			Type:       domainTransaction.TypeLimitChange,
			Date:       now,
			Amount:     delta,
			Reference:  in.Reference,
			Notes:      in.Notes,
		}
		if err := r.Transactions.Create(ctx, entry); err != nil {
			return err
		}

		f.CreditLimit = in.NewLimit
		if err := r.Facilities.Save(ctx, f); err != nil {
			return err
		}

		dto = &LimitChangeDTO{
			FacilityID: f.FacilityID,
			TxID:       entry.TxID,
			OldLimit:   money.AsFloat(oldLimit),
			NewLimit:   money.AsFloat(in.NewLimit),
			Delta:      money.AsFloat(delta),
			Date:       now.Format(dateLayout),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.pub.Publish(ctx, events.FacilityLimitChanged, userID, events.FacilityLimitChangedEvent{
		FacilityID: dto.FacilityID,
		TxID:       dto.TxID,
		OldLimit:   oldLimit.StringFixed(2),
		NewLimit:   in.NewLimit.StringFixed(2),
	}); err != nil {
		log.Printf("facility: publish %s: %v", events.FacilityLimitChanged, err)
	}
	return dto, nil
}

// facilityOutstanding replays every open loan under the facility and sums the
// outstanding principal. The loan count only includes loans that still carry
// a balance.
func facilityOutstanding(ctx context.Context, loans domainLoan.Repository, txns domainTransaction.Repository,
	userID, facilityID string, now time.Time) (decimal.Decimal, int, error) {
	open, err := loans.ListOpenByFacility(ctx, userID, facilityID)
	if err != nil {
		return decimal.Decimal{}, 0, err
	}

	total := decimal.Zero
	count := 0
	for i := range open {
		rows, err := txns.ListByLoan(ctx, userID, open[i].LoanID)
		if err != nil {
			return decimal.Decimal{}, 0, err
		}
		st, err := engine.Replay(&open[i], rows, now)
		if err != nil {
			return decimal.Decimal{}, 0, err
		}
		if st.OutstandingPrincipal.IsPositive() {
			count++
		}
		total = total.Add(st.OutstandingPrincipal)
	}
	return total, count, nil
}

func toDTO(f *domain.Facility, outstanding decimal.Decimal, openLoans int) *FacilityDTO {
	dto := &FacilityDTO{
		FacilityID:  f.FacilityID,
		BankID:      f.BankID,
		Name:        f.Name,
		Type:        string(f.Type),
		CreditLimit: money.AsFloat(f.CreditLimit),
		SiborRate:   money.AsFloat(f.SiborRate),
		BankRate:    money.AsFloat(f.BankRate),
		AllInRate:   money.AsFloat(f.AllInRate()),
		StartDate:   f.StartDate.Format(dateLayout),
		ExpiryDate:  f.ExpiryDate.Format(dateLayout),
		Active:      f.Active,
		Outstanding: money.AsFloat(outstanding),
		OpenLoans:   openLoans,
		CreatedAt:   f.CreatedAt,
	}
	dto.AvailableCredit = money.AsFloat(f.CreditLimit.Sub(outstanding))
	if f.CreditLimit.IsPositive() {
		dto.Utilization = money.AsFloat(money.Percent(outstanding, f.CreditLimit))
		dto.UtilizationDefined = true
	}
	return dto
}
