package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// WatchRepository defines the interface for the watch registry.
type WatchRepository interface {
	// Subscribe creates a watch row. When an active row for the same
	// (waid, flight code) already exists it is returned instead of
	// inserting a duplicate; created reports which case happened.
	Subscribe(ctx context.Context, waid, flightIata, flightDate string) (sub *entity.WatchSubscription, created bool, err error)

	// DeleteByWaidAndIata removes watches matching (waid, code) and
	// reports how many rows were removed.
	DeleteByWaidAndIata(ctx context.Context, waid, flightIata string) (int64, error)

	// DeleteByWaid removes all watches for an owner.
	DeleteByWaid(ctx context.Context, waid string) (int64, error)

	// ListByWaid returns an owner's watches, most recently created first.
	ListByWaid(ctx context.Context, waid string) ([]*entity.WatchSubscription, error)

	// ListAll returns every active watch in registry order.
	ListAll(ctx context.Context) ([]*entity.WatchSubscription, error)

	// UpdateSnapshot persists a new snapshot/hash pair for one row and
	// bumps its updated timestamp.
	UpdateSnapshot(ctx context.Context, id uint, snapshotJSON, hash string) error

	Count(ctx context.Context) (int64, error)
}
