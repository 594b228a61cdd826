package mysql

import (
	"context"

	txDomain "tamweel-backend/internal/domain/transaction"

	"gorm.io/gorm"
)

// TransactionRepository only ever inserts and selects. Corrections are made
// by appending compensating entries, never by updating rows.
type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *txDomain.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) ListByLoan(ctx context.Context, userID, loanID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND loan_id = ?", userID, loanID).
		Order("date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListByFacility(ctx context.Context, userID, facilityID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND facility_id = ?", userID, facilityID).
		Order("date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]txDomain.Transaction, error) {
	var out []txDomain.Transaction
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, id ASC").
		Find(&out)
	return out, res.Error
}
