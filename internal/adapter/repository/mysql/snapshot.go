package mysql

import (
	"context"

	snapshotDomain "tamweel-backend/internal/domain/snapshot"

	"gorm.io/gorm"
)

type SnapshotRepository struct{ db *gorm.DB }

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Create(ctx context.Context, s *snapshotDomain.ExposureSnapshot) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SnapshotRepository) ListByUser(ctx context.Context, userID, bankID string, limit int) ([]snapshotDomain.ExposureSnapshot, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if bankID != "" {
		q = q.Where("bank_id = ?", bankID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []snapshotDomain.ExposureSnapshot
	res := q.Order("date DESC, id DESC").Find(&out)
	return out, res.Error
}
