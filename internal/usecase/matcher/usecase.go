// Package matcher recommends the credit facility best placed to fund a
// requested draw, ranking every facility the user holds.
package matcher

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainFacility "tamweel-backend/internal/domain/facility"
	domainLoan "tamweel-backend/internal/domain/loan"
	domainTransaction "tamweel-backend/internal/domain/transaction"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/money"
)

type Usecase struct {
	facs  domainFacility.Repository
	loans domainLoan.Repository
	txns  domainTransaction.Repository
}

func NewUsecase(facs domainFacility.Repository, loans domainLoan.Repository, txns domainTransaction.Repository) *Usecase {
	return &Usecase{facs: facs, loans: loans, txns: txns}
}

// Match scores every facility against the requested draw and returns the
// best candidate, up to two alternatives, and the facilities that were
// ruled out. When nothing qualifies the response carries a message plus
// the full ruled-out list instead.
func (u *Usecase) Match(ctx context.Context, userID string, in MatchInput) (*ResultDTO, error) {
	switch {
	case !in.Amount.IsPositive():
		return nil, fmt.Errorf("%w: requested amount must be positive", engine.ErrValidation)
	case in.Type != "" && !domainFacility.ValidType(in.Type):
		return nil, fmt.Errorf("%w: unknown facility type %q", engine.ErrValidation, in.Type)
	case in.DurationDays < 0:
		return nil, fmt.Errorf("%w: requested duration must not be negative", engine.ErrValidation)
	}

	facs, err := u.facs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	outstanding, err := u.outstandingByFacility(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	standings := make([]engine.FacilityStanding, 0, len(facs))
	for _, f := range facs {
		standings = append(standings, engine.FacilityStanding{
			Facility:    f,
			Outstanding: outstanding[f.FacilityID],
		})
	}

	res, err := engine.Match(engine.MatchRequest{
		Amount:       in.Amount,
		Type:         in.Type,
		DurationDays: in.DurationDays,
	}, standings, now)
	if err != nil {
		return nil, err
	}
	return toDTO(res), nil
}

// outstandingByFacility replays every open loan once and groups the
// outstanding principal by facility.
func (u *Usecase) outstandingByFacility(ctx context.Context, userID string, now time.Time) (map[string]decimal.Decimal, error) {
	loans, err := u.loans.ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(loans))
	for i := range loans {
		txns, err := u.txns.ListByLoan(ctx, userID, loans[i].LoanID)
		if err != nil {
			return nil, err
		}
		st, err := engine.Replay(&loans[i], txns, now)
		if err != nil {
			return nil, err
		}
		if st.OutstandingPrincipal.IsPositive() {
			out[loans[i].FacilityID] = out[loans[i].FacilityID].Add(st.OutstandingPrincipal)
		}
	}
	return out, nil
}

func toDTO(res *engine.MatchResult) *ResultDTO {
	dto := &ResultDTO{}
	if res.Recommendation == nil {
		dto.Message = "no facility can fund this request"
		dto.AllFacilities = make([]ExcludedDTO, 0, len(res.Excluded))
		for _, e := range res.Excluded {
			dto.AllFacilities = append(dto.AllFacilities, toExcluded(e))
		}
		return dto
	}

	rec := toCandidate(*res.Recommendation)
	dto.Recommendation = &rec
	for _, c := range res.Alternatives {
		dto.Alternatives = append(dto.Alternatives, toCandidate(c))
	}
	for _, e := range res.Excluded {
		dto.Excluded = append(dto.Excluded, toExcluded(e))
	}
	return dto
}

func toCandidate(c engine.Candidate) CandidateDTO {
	return CandidateDTO{
		FacilityID:      c.Facility.FacilityID,
		FacilityName:    c.Facility.Name,
		BankID:          c.Facility.BankID,
		Type:            string(c.Facility.Type),
		AvailableCredit: money.AsFloat(c.AvailableCredit),
		UtilizationPct:  money.AsFloat(c.UtilizationPct),
		InterestRate:    money.AsFloat(c.AllInRatePct),
		Score:           money.AsFloat(c.Score),
		Reasons:         c.Reasons,
		Warnings:        c.Warnings,
	}
}

func toExcluded(e engine.Excluded) ExcludedDTO {
	return ExcludedDTO{
		FacilityID:      e.Facility.FacilityID,
		FacilityName:    e.Facility.Name,
		AvailableCredit: money.AsFloat(e.AvailableCredit),
		Warnings:        e.Reasons,
	}
}
