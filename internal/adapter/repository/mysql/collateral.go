package mysql

import (
	"context"
	"errors"

	collateralDomain "tamweel-backend/internal/domain/collateral"

	"gorm.io/gorm"
)

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, c *collateralDomain.Collateral) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CollateralRepository) Save(ctx context.Context, c *collateralDomain.Collateral) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CollateralRepository) GetByCollateralID(ctx context.Context, userID, collateralID string) (*collateralDomain.Collateral, error) {
	var out collateralDomain.Collateral
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND collateral_id = ?", userID, collateralID).
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, collateralDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *CollateralRepository) ListByUser(ctx context.Context, userID string) ([]collateralDomain.Collateral, error) {
	var out []collateralDomain.Collateral
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
