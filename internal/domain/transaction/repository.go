package transaction

import "context"

// Repository is deliberately append-only: no update or delete. A wrong entry
// is corrected by appending a compensating one.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	// ListByLoan returns a loan's entries in replay order (date, then insert order).
	ListByLoan(ctx context.Context, userID, loanID string) ([]Transaction, error)
	ListByFacility(ctx context.Context, userID, facilityID string) ([]Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
}
