package uow

import (
	"context"

	"tamweel-backend/internal/domain/bank"
	"tamweel-backend/internal/domain/collateral"
	"tamweel-backend/internal/domain/facility"
	"tamweel-backend/internal/domain/loan"
	"tamweel-backend/internal/domain/snapshot"
	"tamweel-backend/internal/domain/transaction"
)

type Repos struct {
	Banks        bank.Repository
	Facilities   facility.Repository
	Loans        loan.Repository
	Transactions transaction.Repository
	Collaterals  collateral.Repository
	Snapshots    snapshot.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in; ledger appends
	// for one loan are serialized through this.
	WithinLoanTx(ctx context.Context, userID, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
