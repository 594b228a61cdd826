// Package repomock holds function-backed mocks for every repository
// interface. Fill in only the function fields a test needs: nil write
// functions are no-ops, nil read functions return context.Canceled.
package repomock

import (
	"context"

	"tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/domain/collateral"
	"tamweel-backend/internal/domain/facility"
	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/domain/snapshot"
	"tamweel-backend/internal/domain/transaction"
)

var (
	_ bank.Repository        = (*Banks)(nil)
	_ facility.Repository    = (*Facilities)(nil)
	_ loan.Repository        = (*Loans)(nil)
	_ transaction.Repository = (*Transactions)(nil)
	_ collateral.Repository  = (*Collaterals)(nil)
	_ snapshot.Repository    = (*Snapshots)(nil)
)

type Banks struct {
	CreateFn      func(ctx context.Context, b *bank.Bank) error
	GetByBankIDFn func(ctx context.Context, userID, bankID string) (*bank.Bank, error)
	ListByUserFn  func(ctx context.Context, userID string) ([]bank.Bank, error)
	SaveFn        func(ctx context.Context, b *bank.Bank) error
}

func (m *Banks) Create(ctx context.Context, b *bank.Bank) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}
func (m *Banks) GetByBankID(ctx context.Context, userID, bankID string) (*bank.Bank, error) {
	if m.GetByBankIDFn != nil {
		return m.GetByBankIDFn(ctx, userID, bankID)
	}
	return nil, context.Canceled
}
func (m *Banks) ListByUser(ctx context.Context, userID string) ([]bank.Bank, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}
func (m *Banks) Save(ctx context.Context, b *bank.Bank) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

type Facilities struct {
	CreateFn                   func(ctx context.Context, f *facility.Facility) error
	GetByFacilityIDFn          func(ctx context.Context, userID, facilityID string) (*facility.Facility, error)
	GetByFacilityIDForUpdateFn func(ctx context.Context, userID, facilityID string) (*facility.Facility, error)
	ListByUserFn               func(ctx context.Context, userID string) ([]facility.Facility, error)
	SaveFn                     func(ctx context.Context, f *facility.Facility) error
}

func (m *Facilities) Create(ctx context.Context, f *facility.Facility) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}
func (m *Facilities) GetByFacilityID(ctx context.Context, userID, facilityID string) (*facility.Facility, error) {
	if m.GetByFacilityIDFn != nil {
		return m.GetByFacilityIDFn(ctx, userID, facilityID)
	}
	return nil, context.Canceled
}
func (m *Facilities) GetByFacilityIDForUpdate(ctx context.Context, userID, facilityID string) (*facility.Facility, error) {
	if m.GetByFacilityIDForUpdateFn != nil {
		return m.GetByFacilityIDForUpdateFn(ctx, userID, facilityID)
	}
	return nil, context.Canceled
}
func (m *Facilities) ListByUser(ctx context.Context, userID string) ([]facility.Facility, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}
func (m *Facilities) Save(ctx context.Context, f *facility.Facility) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, f)
	}
	return nil
}

type Loans struct {
	CreateFn               func(ctx context.Context, l *loan.Loan) error
	GetByLoanIDFn          func(ctx context.Context, userID, loanID string) (*loan.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, userID, loanID string) (*loan.Loan, error)
	ListByUserFn           func(ctx context.Context, userID string, status loan.Status) ([]loan.Loan, error)
	ListOpenByUserFn       func(ctx context.Context, userID string) ([]loan.Loan, error)
	ListOpenByFacilityFn   func(ctx context.Context, userID, facilityID string) ([]loan.Loan, error)
	SaveFn                 func(ctx context.Context, l *loan.Loan) error
}

func (m *Loans) Create(ctx context.Context, l *loan.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}
func (m *Loans) GetByLoanID(ctx context.Context, userID, loanID string) (*loan.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, userID, loanID)
	}
	return nil, context.Canceled
}
func (m *Loans) GetByLoanIDForUpdate(ctx context.Context, userID, loanID string) (*loan.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, userID, loanID)
	}
	return nil, context.Canceled
}
func (m *Loans) ListByUser(ctx context.Context, userID string, status loan.Status) ([]loan.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, status)
	}
	return nil, context.Canceled
}
func (m *Loans) ListOpenByUser(ctx context.Context, userID string) ([]loan.Loan, error) {
	if m.ListOpenByUserFn != nil {
		return m.ListOpenByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}
func (m *Loans) ListOpenByFacility(ctx context.Context, userID, facilityID string) ([]loan.Loan, error) {
	if m.ListOpenByFacilityFn != nil {
		return m.ListOpenByFacilityFn(ctx, userID, facilityID)
	}
	return nil, context.Canceled
}
func (m *Loans) Save(ctx context.Context, l *loan.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

type Transactions struct {
	CreateFn         func(ctx context.Context, t *transaction.Transaction) error
	ListByLoanFn     func(ctx context.Context, userID, loanID string) ([]transaction.Transaction, error)
	ListByFacilityFn func(ctx context.Context, userID, facilityID string) ([]transaction.Transaction, error)
	ListByUserFn     func(ctx context.Context, userID string) ([]transaction.Transaction, error)
}

func (m *Transactions) Create(ctx context.Context, t *transaction.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *Transactions) ListByLoan(ctx context.Context, userID, loanID string) ([]transaction.Transaction, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, userID, loanID)
	}
	return nil, context.Canceled
}
func (m *Transactions) ListByFacility(ctx context.Context, userID, facilityID string) ([]transaction.Transaction, error) {
	if m.ListByFacilityFn != nil {
		return m.ListByFacilityFn(ctx, userID, facilityID)
	}
	return nil, context.Canceled
}
func (m *Transactions) ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}

type Collaterals struct {
	CreateFn            func(ctx context.Context, c *collateral.Collateral) error
	GetByCollateralIDFn func(ctx context.Context, userID, collateralID string) (*collateral.Collateral, error)
	ListByUserFn        func(ctx context.Context, userID string) ([]collateral.Collateral, error)
	SaveFn              func(ctx context.Context, c *collateral.Collateral) error
}

func (m *Collaterals) Create(ctx context.Context, c *collateral.Collateral) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *Collaterals) GetByCollateralID(ctx context.Context, userID, collateralID string) (*collateral.Collateral, error) {
	if m.GetByCollateralIDFn != nil {
		return m.GetByCollateralIDFn(ctx, userID, collateralID)
	}
	return nil, context.Canceled
}
func (m *Collaterals) ListByUser(ctx context.Context, userID string) ([]collateral.Collateral, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}
func (m *Collaterals) Save(ctx context.Context, c *collateral.Collateral) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

type Snapshots struct {
	CreateFn     func(ctx context.Context, s *snapshot.ExposureSnapshot) error
	ListByUserFn func(ctx context.Context, userID, bankID string, limit int) ([]snapshot.ExposureSnapshot, error)
}

func (m *Snapshots) Create(ctx context.Context, s *snapshot.ExposureSnapshot) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, s)
	}
	return nil
}
func (m *Snapshots) ListByUser(ctx context.Context, userID, bankID string, limit int) ([]snapshot.ExposureSnapshot, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, bankID, limit)
	}
	return nil, context.Canceled
}
