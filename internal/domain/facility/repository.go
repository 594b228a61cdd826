package facility

import "context"

type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByFacilityID(ctx context.Context, userID, facilityID string) (*Facility, error)
	// Lock the facility row for the duration of a transaction (limit changes,
	// drawdown headroom checks).
	GetByFacilityIDForUpdate(ctx context.Context, userID, facilityID string) (*Facility, error)
	ListByUser(ctx context.Context, userID string) ([]Facility, error)
	Save(ctx context.Context, f *Facility) error
}
