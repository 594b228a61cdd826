package collateral

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "tamweel-backend/internal/domain/collateral"
	domainFacility "tamweel-backend/internal/domain/facility"
	domainLoan "tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/engine"
	"tamweel-backend/pkg/id"
	"tamweel-backend/pkg/money"
)

type Usecase struct {
	repo       domain.Repository
	facilities domainFacility.Repository
	loans      domainLoan.Repository
}

func NewUsecase(r domain.Repository, facilities domainFacility.Repository, loans domainLoan.Repository) *Usecase {
	return &Usecase{repo: r, facilities: facilities, loans: loans}
}

func (u *Usecase) Create(ctx context.Context, userID string, in CreateInput) (*CollateralDTO, error) {
	assetType := strings.TrimSpace(in.AssetType)
	if assetType == "" {
		return nil, fmt.Errorf("%w: asset type is required", engine.ErrValidation)
	}
	if in.CurrentValue.IsNegative() {
		return nil, fmt.Errorf("%w: collateral value %s must not be negative", engine.ErrValidation, in.CurrentValue)
	}

	// A dangling link is a bad request, not a missing resource.
	if in.FacilityID != "" {
		if _, err := u.facilities.GetByFacilityID(ctx, userID, in.FacilityID); err != nil {
			if errors.Is(err, domainFacility.ErrNotFound) {
				return nil, fmt.Errorf("%w: linked facility %s not found", engine.ErrValidation, in.FacilityID)
			}
			return nil, err
		}
	}
	if in.LoanID != "" {
		if _, err := u.loans.GetByLoanID(ctx, userID, in.LoanID); err != nil {
			if errors.Is(err, domainLoan.ErrNotFound) {
				return nil, fmt.Errorf("%w: linked loan %s not found", engine.ErrValidation, in.LoanID)
			}
			return nil, err
		}
	}

	c := &domain.Collateral{
		CollateralID: id.NewID32(),
		UserID:       userID,
		AssetType:    assetType,
		Description:  strings.TrimSpace(in.Description),
		CurrentValue: in.CurrentValue,
		FacilityID:   in.FacilityID,
		LoanID:       in.LoanID,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) List(ctx context.Context, userID string) ([]CollateralDTO, error) {
	rows, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]CollateralDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// Revalue replaces the current value with a fresh appraisal. The previous
// value is not kept; the LTV figures only ever use the latest one.
func (u *Usecase) Revalue(ctx context.Context, userID, collateralID string, in RevalueInput) (*CollateralDTO, error) {
	if in.NewValue.IsNegative() {
		return nil, fmt.Errorf("%w: collateral value %s must not be negative", engine.ErrValidation, in.NewValue)
	}
	c, err := u.repo.GetByCollateralID(ctx, userID, collateralID)
	if err != nil {
		return nil, err
	}
	c.CurrentValue = in.NewValue
	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func toDTO(c *domain.Collateral) *CollateralDTO {
	return &CollateralDTO{
		CollateralID: c.CollateralID,
		AssetType:    c.AssetType,
		Description:  c.Description,
		CurrentValue: money.AsFloat(c.CurrentValue),
		FacilityID:   c.FacilityID,
		LoanID:       c.LoanID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
