package collateral

import "context"

type Repository interface {
	Create(ctx context.Context, c *Collateral) error
	GetByCollateralID(ctx context.Context, userID, collateralID string) (*Collateral, error)
	ListByUser(ctx context.Context, userID string) ([]Collateral, error)
	Save(ctx context.Context, c *Collateral) error
}
