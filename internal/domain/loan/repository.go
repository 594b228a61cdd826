package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, userID, loanID string) (*Loan, error)
	// Lock the loan row for the duration of a transaction; ledger appends for
	// one loan are serialized through this.
	GetByLoanIDForUpdate(ctx context.Context, userID, loanID string) (*Loan, error)
	// ListByUser returns the user's loans, optionally filtered by status
	// (empty status means all).
	ListByUser(ctx context.Context, userID string, status Status) ([]Loan, error)
	// ListOpenByUser returns loans whose principal may still be outstanding
	// (every status except settled).
	ListOpenByUser(ctx context.Context, userID string) ([]Loan, error)
	ListOpenByFacility(ctx context.Context, userID, facilityID string) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
