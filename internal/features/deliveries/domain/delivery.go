package domain

import (
	"errors"
	"time"

	"delivery-tracker/internal/core/geo"
)

// Status is the lifecycle state of a delivery.
//
// Transitions:
//
//	pending ──> in_transit ──┬──> delivered
//	   │                     └──> failed
//	   ├────────────────────────> delivered   (immediate completion)
//	   └────────────────────────> failed
//
// delivered and failed are terminal; a record never leaves them.
type Status string

const (
	// StatusPending is the initial state: created, no location reported yet.
	StatusPending Status = "pending"
	// StatusInTransit is set on the first accepted location ping.
	StatusInTransit Status = "in_transit"
	// StatusDelivered is terminal, reached through Complete with valid proof.
	StatusDelivered Status = "delivered"
	// StatusFailed is terminal, reached through Fail.
	StatusFailed Status = "failed"
)

var (
	// ErrNotFound is returned when no record exists for a delivery id.
	ErrNotFound = errors.New("delivery not found")
	// ErrInvalidState is returned for a lifecycle transition attempted on a
	// terminal record.
	ErrInvalidState = errors.New("delivery is already in a terminal state")
	// ErrInvalidProof is returned when proof of delivery carries neither a
	// signature nor a recipient name.
	ErrInvalidProof = errors.New("proof requires a signature or recipient name")
	// ErrOutsideFence is returned for a location ping outside the operating
	// region.
	ErrOutsideFence = errors.New("coordinate outside the operating region")
)

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// Active reports whether a driver is still working the delivery.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusInTransit
}

// LocationFix is one accepted GPS reading.
type LocationFix struct {
	geo.Coordinate
	Timestamp time.Time `json:"timestamp"`
}

// Proof is the captured proof of delivery. Immutable once attached.
type Proof struct {
	Signature     string    `json:"signature,omitempty"`
	PhotoRef      string    `json:"photoRef,omitempty"`
	RecipientName string    `json:"recipientName,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Delivery is the long-lived tracking record for one delivery.
// It is mutated only through the methods below, always under the caller's
// per-delivery serialization.
type Delivery struct {
	ID       string `json:"id"`
	OrderID  string `json:"orderId"`
	DriverID string `json:"driverId,omitempty"`
	RdcID    string `json:"rdcId"`

	Status Status `json:"status"`

	// CurrentLocation is the fix with the latest accepted timestamp.
	CurrentLocation *LocationFix `json:"currentLocation,omitempty"`
	// LocationHistory is append-only, ordered by acceptance time.
	LocationHistory []LocationFix `json:"locationHistory,omitempty"`

	Proof         *Proof `json:"proof,omitempty"`
	FailureReason string `json:"failureReason,omitempty"`

	EstimatedDeliveryTime time.Time  `json:"estimatedDeliveryTime"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
	DeliveredAt           *time.Time `json:"deliveredAt,omitempty"`
}

// New creates a pending delivery record with no location.
func New(id, orderID, driverID, rdcID string, estimatedMinutes int, now time.Time) *Delivery {
	return &Delivery{
		ID:                    id,
		OrderID:               orderID,
		DriverID:              driverID,
		RdcID:                 rdcID,
		Status:                StatusPending,
		EstimatedDeliveryTime: now.Add(time.Duration(estimatedMinutes) * time.Minute),
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// AcceptLocation applies an already-validated GPS fix and reports whether the
// record changed.
//
// Rules:
//   - terminal record: no-op — a late ping after completion is stale data,
//     not a protocol violation;
//   - timestamp at or before the current fix: accepted only while history is
//     empty, otherwise superseded ("latest timestamp wins");
//   - first accepted fix moves a pending record to in_transit.
func (d *Delivery) AcceptLocation(coord geo.Coordinate, ts, now time.Time) bool {
	if d.Status.Terminal() {
		return false
	}

	if d.CurrentLocation != nil && !ts.After(d.CurrentLocation.Timestamp) &&
		len(d.LocationHistory) > 0 {
		return false
	}

	fix := LocationFix{Coordinate: coord, Timestamp: ts}
	d.CurrentLocation = &fix
	d.LocationHistory = append(d.LocationHistory, fix)

	if d.Status == StatusPending {
		d.Status = StatusInTransit
	}

	d.shrinkETA(now)
	d.UpdatedAt = now
	return true
}

// shrinkETA pulls the estimate five minutes closer on every accepted ping,
// never past now. Placeholder for a real traffic model.
func (d *Delivery) shrinkETA(now time.Time) {
	remaining := d.EstimatedDeliveryTime.Sub(now)
	if remaining > 5*time.Minute {
		d.EstimatedDeliveryTime = now.Add(remaining - 5*time.Minute)
	}
}

// Complete transitions the record to delivered and attaches the proof.
// Allowed from pending (immediate happy path) and in_transit.
func (d *Delivery) Complete(proof Proof, now time.Time) error {
	if d.Status.Terminal() {
		return ErrInvalidState
	}
	if proof.RecipientName == "" && proof.Signature == "" {
		return ErrInvalidProof
	}

	proof.Timestamp = now
	d.Proof = &proof
	d.Status = StatusDelivered
	d.DeliveredAt = &now
	d.UpdatedAt = now
	return nil
}

// Fail transitions the record to failed with a reason.
func (d *Delivery) Fail(reason string, now time.Time) error {
	if d.Status.Terminal() {
		return ErrInvalidState
	}

	d.Status = StatusFailed
	d.FailureReason = reason
	d.UpdatedAt = now
	return nil
}

// ETAMinutes returns the whole minutes until the estimated delivery time,
// floored at zero.
func (d *Delivery) ETAMinutes(now time.Time) int {
	minutes := int(d.EstimatedDeliveryTime.Sub(now).Round(time.Minute) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
