package domain

import "time"

// BroadcastTopic carries events every tracking client should see.
const BroadcastTopic = "deliveries"

// LocationTopic is the per-delivery topic tracking clients subscribe to.
func LocationTopic(deliveryID string) string {
	return "delivery:" + deliveryID
}

// LocationUpdatedEvent is published on the delivery's topic after an accepted
// ping.
type LocationUpdatedEvent struct {
	Event      string      `json:"event"`
	DeliveryID string      `json:"deliveryId"`
	Location   LocationFix `json:"location"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewLocationUpdatedEvent builds the location:updated payload.
func NewLocationUpdatedEvent(deliveryID string, fix LocationFix, now time.Time) LocationUpdatedEvent {
	return LocationUpdatedEvent{
		Event:      "location:updated",
		DeliveryID: deliveryID,
		Location:   fix,
		Timestamp:  now,
	}
}

// DeliveryCompletedEvent is broadcast globally once a delivery is completed.
type DeliveryCompletedEvent struct {
	Event      string    `json:"event"`
	DeliveryID string    `json:"deliveryId"`
	Status     Status    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewDeliveryCompletedEvent builds the delivery:completed payload.
func NewDeliveryCompletedEvent(deliveryID string, now time.Time) DeliveryCompletedEvent {
	return DeliveryCompletedEvent{
		Event:      "delivery:completed",
		DeliveryID: deliveryID,
		Status:     StatusDelivered,
		Timestamp:  now,
	}
}
