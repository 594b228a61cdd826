package bank

import "context"

type Repository interface {
	Create(ctx context.Context, b *Bank) error
	// Get by public bank_id, scoped to the owning user
	GetByBankID(ctx context.Context, userID, bankID string) (*Bank, error)
	ListByUser(ctx context.Context, userID string) ([]Bank, error)
	Save(ctx context.Context, b *Bank) error
}
