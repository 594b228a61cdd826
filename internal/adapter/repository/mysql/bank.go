package mysql

import (
	"context"
	"errors"

	bankDomain "tamweel-backend/internal/domain/bank"

	"gorm.io/gorm"
)

type BankRepository struct{ db *gorm.DB }

func NewBankRepository(db *gorm.DB) *BankRepository { return &BankRepository{db: db} }

func (r *BankRepository) Create(ctx context.Context, b *bankDomain.Bank) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BankRepository) Save(ctx context.Context, b *bankDomain.Bank) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BankRepository) GetByBankID(ctx context.Context, userID, bankID string) (*bankDomain.Bank, error) {
	var out bankDomain.Bank
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND bank_id = ?", userID, bankID).
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, bankDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *BankRepository) ListByUser(ctx context.Context, userID string) ([]bankDomain.Bank, error) {
	var out []bankDomain.Bank
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&out)
	return out, res.Error
}
