package mysql

import (
	"context"
	"errors"

	loanDomain "tamweel-backend/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, userID, loanID string) (*loanDomain.Loan, error) {
	return r.getLoan(ctx, r.db, userID, loanID)
}

// GetByLoanIDForUpdate locks the loan row up-front so concurrent ledger
// appends for the same loan serialize against each other.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, userID, loanID string) (*loanDomain.Loan, error) {
	return r.getLoan(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), userID, loanID)
}

func (r *LoanRepository) getLoan(ctx context.Context, db *gorm.DB, userID, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := db.WithContext(ctx).
		Where("user_id = ? AND loan_id = ?", userID, loanID).
		First(&out)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, res.Error
	}
	return &out, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string, status loanDomain.Status) ([]loanDomain.Loan, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []loanDomain.Loan
	res := q.Order("start_date DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListOpenByUser(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, loanDomain.StatusSettled).
		Order("start_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) ListOpenByFacility(ctx context.Context, userID, facilityID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND facility_id = ? AND status <> ?", userID, facilityID, loanDomain.StatusSettled).
		Order("start_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
