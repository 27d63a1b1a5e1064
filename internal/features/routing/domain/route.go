package domain

import "delivery-tracker/internal/core/geo"

// Stop is one delivery destination handed to the optimizer. Immutable input.
type Stop struct {
	// DeliveryID identifies the delivery to be dropped at this address.
	DeliveryID string `json:"deliveryId"`
	// Address is the destination coordinate.
	Address geo.Coordinate `json:"address"`
}

// PlannedStop is a stop placed into the visiting order.
type PlannedStop struct {
	Stop
	// Sequence is the 1-based visiting position.
	Sequence int `json:"sequence"`
	// LegKm is the distance from the previous position (depot for the first
	// stop) to this stop.
	LegKm float64 `json:"legKm"`
	// CumulativeKm is the running distance from the depot through this stop.
	CumulativeKm float64 `json:"cumulativeKm"`
}

// Plan is the optimizer output: the full input stop set as a permutation,
// with per-leg and aggregate metrics. Pure planning data, no side effects.
type Plan struct {
	// Stops is the ordered visiting sequence.
	Stops []PlannedStop `json:"stops"`
	// TotalDistanceKm is the tour length from depot through the last stop.
	TotalDistanceKm float64 `json:"totalDistanceKm"`
	// EstimatedMinutes is a rough time estimate: travel at 40 km/h plus five
	// minutes of handling per stop.
	EstimatedMinutes int `json:"estimatedMinutes"`
}
