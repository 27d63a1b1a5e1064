package domain

import (
	"testing"
	"time"

	"delivery-tracker/internal/core/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0      = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)
	colombo = geo.Coordinate{Lat: 6.9271, Lon: 79.8612}
	kandy   = geo.Coordinate{Lat: 7.2906, Lon: 80.6337}
)

func newRecord() *Delivery {
	return New("DEL-1", "ORD-1", "driver-1", "rdc-colombo", 30, t0)
}

// TestNew verifies the initial record shape.
func TestNew(t *testing.T) {
	d := newRecord()

	assert.Equal(t, StatusPending, d.Status)
	assert.Nil(t, d.CurrentLocation)
	assert.Empty(t, d.LocationHistory)
	assert.Nil(t, d.Proof)
	assert.Equal(t, t0.Add(30*time.Minute), d.EstimatedDeliveryTime)
}

// TestAcceptLocation_FirstPingStartsTransit verifies pending -> in_transit.
func TestAcceptLocation_FirstPingStartsTransit(t *testing.T) {
	d := newRecord()

	applied := d.AcceptLocation(colombo, t0.Add(time.Minute), t0.Add(time.Minute))
	assert.True(t, applied)
	assert.Equal(t, StatusInTransit, d.Status)
	require.NotNil(t, d.CurrentLocation)
	assert.Equal(t, colombo, d.CurrentLocation.Coordinate)
	assert.Len(t, d.LocationHistory, 1)
}

// TestAcceptLocation_StaysInTransit verifies subsequent pings keep the state.
func TestAcceptLocation_StaysInTransit(t *testing.T) {
	d := newRecord()
	d.AcceptLocation(colombo, t0.Add(time.Minute), t0.Add(time.Minute))

	applied := d.AcceptLocation(kandy, t0.Add(2*time.Minute), t0.Add(2*time.Minute))
	assert.True(t, applied)
	assert.Equal(t, StatusInTransit, d.Status)
	assert.Len(t, d.LocationHistory, 2)
}

// TestAcceptLocation_LatestTimestampWins verifies an out-of-order ping is
// superseded, not applied.
func TestAcceptLocation_LatestTimestampWins(t *testing.T) {
	d := newRecord()
	t1 := t0.Add(10 * time.Minute)
	t2 := t0.Add(5 * time.Minute) // older, arrives second

	require.True(t, d.AcceptLocation(kandy, t1, t1))
	applied := d.AcceptLocation(colombo, t2, t1.Add(time.Second))

	assert.False(t, applied)
	assert.Equal(t, t1, d.CurrentLocation.Timestamp)
	assert.Equal(t, kandy, d.CurrentLocation.Coordinate)
	assert.Len(t, d.LocationHistory, 1)
}

// TestAcceptLocation_TerminalIsNoop verifies late pings after completion are
// ignored without error.
func TestAcceptLocation_TerminalIsNoop(t *testing.T) {
	d := newRecord()
	require.NoError(t, d.Complete(Proof{RecipientName: "Jane Doe"}, t0.Add(time.Hour)))

	applied := d.AcceptLocation(colombo, t0.Add(2*time.Hour), t0.Add(2*time.Hour))
	assert.False(t, applied)
	assert.Equal(t, StatusDelivered, d.Status)
	assert.Nil(t, d.CurrentLocation)
}

// TestAcceptLocation_ShrinksETA verifies the five-minute ETA pull per ping,
// floored at now.
func TestAcceptLocation_ShrinksETA(t *testing.T) {
	d := newRecord() // ETA t0+30m

	d.AcceptLocation(colombo, t0.Add(time.Minute), t0.Add(time.Minute))
	assert.Equal(t, t0.Add(26*time.Minute), d.EstimatedDeliveryTime)

	// When under five minutes remain the estimate stays put.
	late := t0.Add(24 * time.Minute)
	d.AcceptLocation(kandy, late, late)
	assert.Equal(t, t0.Add(26*time.Minute), d.EstimatedDeliveryTime)
}

// TestComplete_FromInTransit verifies the happy path.
func TestComplete_FromInTransit(t *testing.T) {
	d := newRecord()
	d.AcceptLocation(colombo, t0.Add(time.Minute), t0.Add(time.Minute))

	done := t0.Add(20 * time.Minute)
	require.NoError(t, d.Complete(Proof{RecipientName: "Jane Doe", Notes: "left at door"}, done))

	assert.Equal(t, StatusDelivered, d.Status)
	require.NotNil(t, d.Proof)
	assert.Equal(t, "Jane Doe", d.Proof.RecipientName)
	assert.Equal(t, done, d.Proof.Timestamp)
	require.NotNil(t, d.DeliveredAt)
	assert.Equal(t, done, *d.DeliveredAt)
}

// TestComplete_FromPending verifies immediate completion is allowed.
func TestComplete_FromPending(t *testing.T) {
	d := newRecord()
	require.NoError(t, d.Complete(Proof{Signature: "sig-data"}, t0.Add(time.Minute)))
	assert.Equal(t, StatusDelivered, d.Status)
}

// TestComplete_AlreadyTerminal verifies idempotent rejection.
func TestComplete_AlreadyTerminal(t *testing.T) {
	d := newRecord()
	require.NoError(t, d.Complete(Proof{RecipientName: "Jane Doe"}, t0))

	err := d.Complete(Proof{RecipientName: "Someone Else"}, t0.Add(time.Minute))
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Equal(t, "Jane Doe", d.Proof.RecipientName)
}

// TestComplete_InvalidProof verifies proof needs a signature or recipient.
func TestComplete_InvalidProof(t *testing.T) {
	d := newRecord()

	err := d.Complete(Proof{Notes: "nobody home"}, t0)
	assert.ErrorIs(t, err, ErrInvalidProof)
	assert.Equal(t, StatusPending, d.Status)
	assert.Nil(t, d.Proof)
}

// TestFail verifies failing from both active states and terminal rejection.
func TestFail(t *testing.T) {
	d := newRecord()
	require.NoError(t, d.Fail("recipient unreachable", t0.Add(time.Minute)))
	assert.Equal(t, StatusFailed, d.Status)
	assert.Equal(t, "recipient unreachable", d.FailureReason)

	assert.ErrorIs(t, d.Fail("again", t0.Add(2*time.Minute)), ErrInvalidState)
	assert.ErrorIs(t, d.Complete(Proof{RecipientName: "Jane"}, t0.Add(2*time.Minute)), ErrInvalidState)
}

// TestStatus_Terminal covers the terminal predicate.
func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInTransit.Terminal())
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusFailed.Terminal())
}

// TestETAMinutes verifies the floor at zero.
func TestETAMinutes(t *testing.T) {
	d := newRecord()
	assert.Equal(t, 30, d.ETAMinutes(t0))
	assert.Equal(t, 0, d.ETAMinutes(t0.Add(2*time.Hour)))
}
