package service

import (
	"math"
	"math/rand"
	"testing"

	"delivery-tracker/internal/core/geo"
	"delivery-tracker/internal/features/routing/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var depot = geo.Coordinate{Lat: 6.9271, Lon: 79.8612} // Colombo RDC

func stop(id string, lat, lon float64) domain.Stop {
	return domain.Stop{DeliveryID: id, Address: geo.Coordinate{Lat: lat, Lon: lon}}
}

// TestOptimize_EmptyStops verifies the empty batch is rejected.
func TestOptimize_EmptyStops(t *testing.T) {
	plan, err := NewOptimizer().Optimize(depot, nil)
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrNoStops)
}

// TestOptimize_InvalidDepot verifies non-finite depot coordinates are rejected.
func TestOptimize_InvalidDepot(t *testing.T) {
	bad := geo.Coordinate{Lat: math.NaN(), Lon: 80}
	plan, err := NewOptimizer().Optimize(bad, []domain.Stop{stop("d1", 6.9, 79.9)})
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrInvalidDepot)
}

// TestOptimize_SingleStop verifies the trivial batch.
func TestOptimize_SingleStop(t *testing.T) {
	plan, err := NewOptimizer().Optimize(depot, []domain.Stop{stop("d1", 7.0, 80.0)})
	require.NoError(t, err)
	require.Len(t, plan.Stops, 1)
	assert.Equal(t, "d1", plan.Stops[0].DeliveryID)
	assert.Equal(t, 1, plan.Stops[0].Sequence)
	assert.InDelta(t, plan.TotalDistanceKm, plan.Stops[0].CumulativeKm, 1e-9)
}

// TestOptimize_PicksNearestFirst verifies the greedy construction order.
func TestOptimize_PicksNearestFirst(t *testing.T) {
	stops := []domain.Stop{
		stop("far", 9.6, 80.0),  // Jaffna direction
		stop("near", 6.95, 79.87),
		stop("mid", 7.3, 80.6), // Kandy
	}

	plan, err := NewOptimizer().Optimize(depot, stops)
	require.NoError(t, err)
	require.Len(t, plan.Stops, 3)
	assert.Equal(t, "near", plan.Stops[0].DeliveryID)
}

// TestOptimize_Permutation verifies no stop is added or dropped.
func TestOptimize_Permutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(30)
		stops := make([]domain.Stop, n)
		ids := make(map[string]int, n)
		for i := range stops {
			id := string(rune('a'+i%26)) + string(rune('0'+i/26))
			stops[i] = stop(id, 5+rng.Float64()*5, 79+rng.Float64()*3)
			ids[id]++
		}

		plan, err := NewOptimizer().Optimize(depot, stops)
		require.NoError(t, err)
		require.Len(t, plan.Stops, n)

		got := make(map[string]int, n)
		for _, ps := range plan.Stops {
			got[ps.DeliveryID]++
		}
		assert.Equal(t, ids, got)
	}
}

// TestOptimize_NeverWorseThanInputOrder verifies the bounded-improvement
// guarantee over random batches.
func TestOptimize_NeverWorseThanInputOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 25; trial++ {
		n := 2 + rng.Intn(40)
		stops := make([]domain.Stop, n)
		for i := range stops {
			stops[i] = stop(string(rune('A'+i%26))+string(rune('0'+i/26)),
				5+rng.Float64()*5, 79+rng.Float64()*3)
		}

		naive := 0.0
		current := depot
		for _, s := range stops {
			naive += geo.HaversineKm(current, s.Address)
			current = s.Address
		}

		plan, err := NewOptimizer().Optimize(depot, stops)
		require.NoError(t, err)
		assert.LessOrEqual(t, plan.TotalDistanceKm, naive+1e-9)
	}
}

// TestOptimize_CumulativeDistances verifies the running totals are monotone
// and consistent with the legs.
func TestOptimize_CumulativeDistances(t *testing.T) {
	stops := []domain.Stop{
		stop("d1", 6.95, 79.87),
		stop("d2", 7.3, 80.6),
		stop("d3", 6.05, 80.2),
	}

	plan, err := NewOptimizer().Optimize(depot, stops)
	require.NoError(t, err)

	sum := 0.0
	for _, ps := range plan.Stops {
		sum += ps.LegKm
		assert.InDelta(t, sum, ps.CumulativeKm, 1e-9)
	}
	assert.InDelta(t, sum, plan.TotalDistanceKm, 1e-9)
}

// TestOptimize_Deterministic verifies equal inputs give identical plans,
// including when distances tie.
func TestOptimize_Deterministic(t *testing.T) {
	// Two stops equidistant from the depot; the earlier input index must win.
	stops := []domain.Stop{
		stop("west", depot.Lat, depot.Lon - 0.1),
		stop("east", depot.Lat, depot.Lon + 0.1),
	}

	first, err := NewOptimizer().Optimize(depot, stops)
	require.NoError(t, err)
	second, err := NewOptimizer().Optimize(depot, stops)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "west", first.Stops[0].DeliveryID)
}

// TestOptimize_EstimatedMinutes verifies the 40 km/h + 5 min/stop estimate.
func TestOptimize_EstimatedMinutes(t *testing.T) {
	plan, err := NewOptimizer().Optimize(depot, []domain.Stop{stop("d1", 7.0, 80.0)})
	require.NoError(t, err)

	travel := int(math.Round(plan.TotalDistanceKm / 40 * 60))
	assert.Equal(t, travel+5, plan.EstimatedMinutes)
}
