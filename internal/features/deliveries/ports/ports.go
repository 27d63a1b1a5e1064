package ports

import (
	"context"
	"time"

	"delivery-tracker/internal/features/deliveries/domain"
)

// Store is the durable record store contract. Implementations must provide
// read-after-write consistency for a single key; the service layer supplies
// per-delivery serialization on top.
type Store interface {
	// Get returns the record for id, or domain.ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Delivery, error)

	// Put writes the record and maintains the RDC and driver indexes.
	Put(ctx context.Context, d *domain.Delivery) error

	// QueryByRdcAndRange returns records for the RDC created within
	// [start, end], both ends inclusive.
	QueryByRdcAndRange(ctx context.Context, rdcID string, start, end time.Time) ([]*domain.Delivery, error)

	// ActiveByDriver returns the driver's pending and in-transit records,
	// newest first.
	ActiveByDriver(ctx context.Context, driverID string) ([]*domain.Delivery, error)
}

// Publisher is the fire-and-forget real-time notification transport.
// Delivery is best-effort; callers log failures and move on.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
