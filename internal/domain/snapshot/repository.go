package snapshot

import "context"

type Repository interface {
	Create(ctx context.Context, s *ExposureSnapshot) error
	// ListByUser returns snapshots newest first, optionally scoped to one bank
	// (empty bankID means all rows including whole-portfolio ones).
	ListByUser(ctx context.Context, userID, bankID string, limit int) ([]ExposureSnapshot, error)
}
