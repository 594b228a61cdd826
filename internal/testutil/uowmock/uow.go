// Package uowmock is a function-backed UnitOfWork for tests. Fill in the
// function field a test needs; calling an unfilled method returns
// errUnimplemented so a missing arrangement fails loudly instead of
// committing nothing.
package uowmock

import (
	"context"
	"errors"

	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, userID, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
}

// New returns an inert UoW for usecases whose transactional paths a test
// never reaches.
func New() *UoW { return &UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, userID, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, userID, loanID, fn)
	}
	return errUnimplemented
}
