package portfolio

import (
	"context"
	"fmt"
	"log"
	"time"

	"tamweel-backend/internal/adapter/events"
	domainBank "tamweel-backend/internal/domain/bank"
	domainCollateral "tamweel-backend/internal/domain/collateral"
	domainFacility "tamweel-backend/internal/domain/facility"
	domainLoan "tamweel-backend/internal/domain/loan"
	domainSnapshot "tamweel-backend/internal/domain/snapshot"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/domain/uow"
	"tamweel-backend/internal/engine"
	"tamweel-backend/internal/infrastructure/cache"
	"tamweel-backend/pkg/id"
	"tamweel-backend/pkg/money"
)

const dateLayout = "2006-01-02"

// EventPublisher pushes portfolio events after a commit.
type EventPublisher interface {
	Publish(ctx context.Context, eventType, userID string, data any) error
}

type Usecase struct {
	banks domainBank.Repository
	facs  domainFacility.Repository
	loans domainLoan.Repository
	txns  domainTransaction.Repository
	colls domainCollateral.Repository
	snaps domainSnapshot.Repository
	uow   uow.UnitOfWork
	views *cache.ViewCache[SummaryDTO]
	pub   EventPublisher
}

func NewUsecase(
	banks domainBank.Repository,
	facs domainFacility.Repository,
	loans domainLoan.Repository,
	txns domainTransaction.Repository,
	colls domainCollateral.Repository,
	snaps domainSnapshot.Repository,
	tx uow.UnitOfWork,
	views *cache.ViewCache[SummaryDTO],
	pub EventPublisher,
) *Usecase {
	return &Usecase{
		banks: banks, facs: facs, loans: loans, txns: txns,
		colls: colls, snaps: snaps, uow: tx, views: views, pub: pub,
	}
}

func summaryKey(userID string) string { return "portfolio:summary:" + userID }

// Summary serves the portfolio rollup, from the view cache while a fresh copy
// lives there. The cache TTL bounds how stale a dashboard can get; the ledger
// remains the source of truth.
func (u *Usecase) Summary(ctx context.Context, userID string) (*SummaryDTO, error) {
	key := summaryKey(userID)
	if dto, ok := u.views.Get(ctx, key); ok {
		return dto, nil
	}
	now := time.Now().UTC()
	p, err := u.buildPortfolio(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	dto := toSummaryDTO(p, now)
	u.views.Set(ctx, key, dto)
	return dto, nil
}

// TakeSnapshot materializes the current aggregate as history rows: one for
// the whole portfolio plus one per bank exposure, all in one transaction.
func (u *Usecase) TakeSnapshot(ctx context.Context, userID string) ([]SnapshotDTO, error) {
	now := time.Now().UTC()
	p, err := u.buildPortfolio(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	rows := make([]domainSnapshot.ExposureSnapshot, 0, len(p.BankExposures)+1)
	whole := domainSnapshot.ExposureSnapshot{
		SnapshotID:  id.NewID32(),
		UserID:      userID,
		Date:        now,
		Outstanding: p.TotalOutstanding,
		CreditLimit: p.TotalCreditLimit,
	}
	if p.TotalCreditLimit.IsPositive() {
		whole.Utilization = money.Percent(p.TotalOutstanding, p.TotalCreditLimit)
	}
	rows = append(rows, whole)
	for _, exp := range p.BankExposures {
		rows = append(rows, domainSnapshot.ExposureSnapshot{
			SnapshotID:  id.NewID32(),
			UserID:      userID,
			BankID:      exp.BankID,
			Date:        now,
			Outstanding: exp.Outstanding,
			CreditLimit: exp.CreditLimit,
			Utilization: exp.Utilization,
		})
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		for i := range rows {
			if err := r.Snapshots.Create(ctx, &rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := u.pub.Publish(ctx, events.SnapshotCreated, userID, events.SnapshotCreatedEvent{
		SnapshotID: whole.SnapshotID,
		Date:       now.Format(dateLayout),
	}); err != nil {
		log.Printf("portfolio: publish %s: %v", events.SnapshotCreated, err)
	}

	out := make([]SnapshotDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toSnapshotDTO(&rows[i]))
	}
	return out, nil
}

// ListSnapshots returns stored snapshots newest first. An empty bankID means
// every row including whole-portfolio ones; limit 0 means no limit.
func (u *Usecase) ListSnapshots(ctx context.Context, userID, bankID string, limit int) ([]SnapshotDTO, error) {
	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", engine.ErrValidation)
	}
	rows, err := u.snaps.ListByUser(ctx, userID, bankID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]SnapshotDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toSnapshotDTO(&rows[i]))
	}
	return out, nil
}

// buildPortfolio loads the book and replays every open loan. Inactive
// facilities contribute no credit limit but still route their loans'
// balances to the right bank.
func (u *Usecase) buildPortfolio(ctx context.Context, userID string, now time.Time) (engine.Portfolio, error) {
	banks, err := u.banks.ListByUser(ctx, userID)
	if err != nil {
		return engine.Portfolio{}, err
	}
	all, err := u.facs.ListByUser(ctx, userID)
	if err != nil {
		return engine.Portfolio{}, err
	}
	bankOf := make(map[string]string, len(all))
	active := make([]domainFacility.Facility, 0, len(all))
	for _, f := range all {
		bankOf[f.FacilityID] = f.BankID
		if f.Active {
			active = append(active, f)
		}
	}

	open, err := u.loans.ListOpenByUser(ctx, userID)
	if err != nil {
		return engine.Portfolio{}, err
	}
	balances := make([]engine.LoanBalance, 0, len(open))
	for i := range open {
		hist, err := u.txns.ListByLoan(ctx, userID, open[i].LoanID)
		if err != nil {
			return engine.Portfolio{}, err
		}
		st, err := engine.Replay(&open[i], hist, now)
		if err != nil {
			return engine.Portfolio{}, err
		}
		if !st.OutstandingPrincipal.IsPositive() {
			continue
		}
		balances = append(balances, engine.LoanBalance{
			LoanID:      open[i].LoanID,
			FacilityID:  open[i].FacilityID,
			BankID:      bankOf[open[i].FacilityID],
			Outstanding: st.OutstandingPrincipal,
		})
	}

	colls, err := u.colls.ListByUser(ctx, userID)
	if err != nil {
		return engine.Portfolio{}, err
	}
	return engine.Aggregate(engine.AggregateInput{
		Banks:      banks,
		Facilities: active,
		Balances:   balances,
		Collateral: colls,
	}), nil
}

func toSummaryDTO(p engine.Portfolio, asOf time.Time) *SummaryDTO {
	dto := &SummaryDTO{
		TotalOutstanding:     money.AsFloat(p.TotalOutstanding),
		TotalCreditLimit:     money.AsFloat(p.TotalCreditLimit),
		AvailableCredit:      money.AsFloat(p.AvailableCredit),
		TotalCollateralValue: money.AsFloat(p.TotalCollateralValue),
		PortfolioLTV:         money.AsFloat(p.LTV),
		LTVDefined:           p.LTVDefined,
		ActiveLoansCount:     p.ActiveLoans,
		BankExposures:        make([]BankExposureDTO, 0, len(p.BankExposures)),
		AsOf:                 asOf,
	}
	for _, exp := range p.BankExposures {
		dto.BankExposures = append(dto.BankExposures, BankExposureDTO{
			BankID:             exp.BankID,
			BankName:           exp.BankName,
			Outstanding:        money.AsFloat(exp.Outstanding),
			CreditLimit:        money.AsFloat(exp.CreditLimit),
			Utilization:        money.AsFloat(exp.Utilization),
			UtilizationDefined: exp.UtilizationDefined,
			ActiveLoans:        exp.ActiveLoans,
		})
	}
	return dto
}

func toSnapshotDTO(s *domainSnapshot.ExposureSnapshot) SnapshotDTO {
	return SnapshotDTO{
		SnapshotID:  s.SnapshotID,
		BankID:      s.BankID,
		Date:        s.Date,
		Outstanding: money.AsFloat(s.Outstanding),
		CreditLimit: money.AsFloat(s.CreditLimit),
		Utilization: money.AsFloat(s.Utilization),
	}
}
