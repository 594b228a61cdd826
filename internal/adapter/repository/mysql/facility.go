package mysql

import (
	"context"
	"errors"

	facilityDomain "tamweel-backend/internal/domain/facility"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FacilityRepository struct{ db *gorm.DB }

func NewFacilityRepository(db *gorm.DB) *FacilityRepository { return &FacilityRepository{db: db} }

func (r *FacilityRepository) Create(ctx context.Context, f *facilityDomain.Facility) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FacilityRepository) Save(ctx context.Context, f *facilityDomain.Facility) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FacilityRepository) GetByFacilityID(ctx context.Context, userID, facilityID string) (*facilityDomain.Facility, error) {
	return r.getFacility(ctx, r.db, userID, facilityID)
}

// GetByFacilityIDForUpdate locks the facility row for the surrounding
// transaction. MySQL honors the lock; sqlite in tests ignores it.
func (r *FacilityRepository) GetByFacilityIDForUpdate(ctx context.Context, userID, facilityID string) (*facilityDomain.Facility, error) {
	return r.getFacility(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), userID, facilityID)
}

func (r *FacilityRepository) getFacility(ctx context.Context, db *gorm.DB, userID, facilityID string) (*facilityDomain.Facility, error) {
	var out facilityDomain.Facility
	res := db.WithContext(ctx).
		Where("user_id = ? AND facility_id = ?", userID, facilityID).
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, facilityDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *FacilityRepository) ListByUser(ctx context.Context, userID string) ([]facilityDomain.Facility, error) {
	var out []facilityDomain.Facility
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
