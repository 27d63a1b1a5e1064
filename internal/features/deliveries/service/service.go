package service

import (
	"context"
	"fmt"
	"time"

	"delivery-tracker/internal/core/geo"
	"delivery-tracker/internal/core/keylock"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/features/deliveries/domain"
	"delivery-tracker/internal/features/deliveries/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tracker owns every mutation of delivery records: location ingest, lifecycle
// transitions, and the outbound real-time events. Mutations on the same
// delivery id are serialized through a keyed lock; operations on different
// ids run fully in parallel. Records are never cached across requests — each
// mutation re-reads, mutates, and writes back under its lock.
type Tracker struct {
	store     ports.Store
	publisher ports.Publisher
	fence     geo.Fence
	locks     *keylock.KeyLock
	lockWait  time.Duration
	now       func() time.Time
}

// NewTracker creates a Tracker with its collaborators injected.
func NewTracker(store ports.Store, publisher ports.Publisher, fence geo.Fence, lockWait time.Duration) *Tracker {
	return &Tracker{
		store:     store,
		publisher: publisher,
		fence:     fence,
		locks:     keylock.New(),
		lockWait:  lockWait,
		now:       time.Now,
	}
}

// IngestResult reports what a location ping did to the record.
type IngestResult struct {
	// Delivery is the record after the call.
	Delivery *domain.Delivery
	// Applied is false when the ping was accepted but superseded (stale
	// timestamp or terminal record) and nothing was persisted.
	Applied bool
}

// AssignInput describes a new delivery to create.
type AssignInput struct {
	OrderID          string
	DriverID         string
	RdcID            string
	EstimatedMinutes int
}

// TrackingInfo is the public tracking view of a record.
type TrackingInfo struct {
	*domain.Delivery
	ETAMinutes int `json:"etaMinutes"`
}

// lock acquires the per-delivery lock within the configured wait bound.
// A timed-out acquire is a retryable failure and never leaves the lock held.
func (t *Tracker) lock(ctx context.Context, id string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, t.lockWait)
	defer cancel()

	if err := t.locks.Acquire(lockCtx, id); err != nil {
		return nil, err
	}
	return func() { t.locks.Release(id) }, nil
}

// Ingest validates and applies a GPS ping for the delivery.
//
// The coordinate must be inside the operating region
// (domain.ErrOutsideFence). A ping older than the stored fix is accepted but
// applies no mutation — latest timestamp wins, regardless of arrival order.
// On an applied ping the record is persisted and a location:updated event is
// published best-effort.
func (t *Tracker) Ingest(ctx context.Context, id string, coord geo.Coordinate, ts time.Time) (*IngestResult, error) {
	if !t.fence.Contains(coord) {
		return nil, fmt.Errorf("ingest %s: %w", id, domain.ErrOutsideFence)
	}

	unlock, err := t.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", id, err)
	}
	defer unlock()

	rec, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", id, err)
	}

	now := t.now()
	if !rec.AcceptLocation(coord, ts, now) {
		logger.Get().Debug("Stale location ping superseded",
			zap.String("delivery_id", id),
			zap.Time("ping_timestamp", ts),
		)
		return &IngestResult{Delivery: rec, Applied: false}, nil
	}

	if err := t.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", id, err)
	}

	t.publish(ctx, domain.LocationTopic(id),
		domain.NewLocationUpdatedEvent(id, *rec.CurrentLocation, now))

	return &IngestResult{Delivery: rec, Applied: true}, nil
}

// Complete attaches proof and moves the delivery to delivered, then
// broadcasts a delivery:completed event.
func (t *Tracker) Complete(ctx context.Context, id string, proof domain.Proof) (*domain.Delivery, error) {
	unlock, err := t.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete %s: %w", id, err)
	}
	defer unlock()

	rec, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete %s: %w", id, err)
	}

	now := t.now()
	if err := rec.Complete(proof, now); err != nil {
		return nil, fmt.Errorf("complete %s: %w", id, err)
	}

	if err := t.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("complete %s: %w", id, err)
	}

	t.publish(ctx, domain.BroadcastTopic, domain.NewDeliveryCompletedEvent(id, now))

	logger.Get().Info("Delivery completed",
		zap.String("delivery_id", id),
		zap.String("driver_id", rec.DriverID),
	)
	return rec, nil
}

// Fail moves the delivery to failed with a reason.
func (t *Tracker) Fail(ctx context.Context, id, reason string) (*domain.Delivery, error) {
	unlock, err := t.lock(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fail %s: %w", id, err)
	}
	defer unlock()

	rec, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fail %s: %w", id, err)
	}

	if err := rec.Fail(reason, t.now()); err != nil {
		return nil, fmt.Errorf("fail %s: %w", id, err)
	}

	if err := t.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("fail %s: %w", id, err)
	}

	logger.Get().Info("Delivery failed",
		zap.String("delivery_id", id),
		zap.String("reason", reason),
	)
	return rec, nil
}

// Assign creates a pending record for an order and driver.
func (t *Tracker) Assign(ctx context.Context, in AssignInput) (*domain.Delivery, error) {
	if in.EstimatedMinutes <= 0 {
		in.EstimatedMinutes = 30
	}

	id := "DEL-" + uuid.NewString()
	rec := domain.New(id, in.OrderID, in.DriverID, in.RdcID, in.EstimatedMinutes, t.now())

	if err := t.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("assign %s: %w", id, err)
	}

	logger.Get().Info("Delivery assigned",
		zap.String("delivery_id", id),
		zap.String("driver_id", in.DriverID),
		zap.String("rdc_id", in.RdcID),
	)
	return rec, nil
}

// Track returns the public tracking view for a delivery. Read-only.
func (t *Tracker) Track(ctx context.Context, id string) (*TrackingInfo, error) {
	rec, err := t.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", id, err)
	}

	return &TrackingInfo{
		Delivery:   rec,
		ETAMinutes: rec.ETAMinutes(t.now()),
	}, nil
}

// ActiveForDriver returns the driver's open deliveries, newest first.
func (t *Tracker) ActiveForDriver(ctx context.Context, driverID string) ([]*domain.Delivery, error) {
	recs, err := t.store.ActiveByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("active deliveries for %s: %w", driverID, err)
	}
	return recs, nil
}

// publish sends an event to the real-time transport. Failures are logged and
// never propagated — event delivery is best-effort and must not fail the
// mutation that triggered it.
func (t *Tracker) publish(ctx context.Context, topic string, event any) {
	if err := t.publisher.Publish(ctx, topic, event); err != nil {
		logger.Get().Warn("Event publish failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
}
