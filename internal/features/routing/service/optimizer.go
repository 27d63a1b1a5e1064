package service

import (
	"errors"
	"math"

	"delivery-tracker/internal/core/geo"
	"delivery-tracker/internal/features/routing/domain"
)

var (
	// ErrNoStops is returned when the stop list is empty.
	ErrNoStops = errors.New("no stops to optimize")
	// ErrInvalidDepot is returned when the depot coordinate is not a finite
	// point.
	ErrInvalidDepot = errors.New("depot coordinate is invalid")
)

// Travel assumptions for the time estimate, carried over from dispatch
// planning: average urban speed and fixed handling time per stop.
const (
	averageSpeedKmh    = 40.0
	stopHandlingMinutes = 5
)

// Optimizer computes a visiting order for a batch of stops from a depot.
// It is stateless and safe for concurrent use.
//
// The tour is built greedily (nearest neighbour by great-circle distance,
// ties broken by input index) and refined with a bounded number of 2-opt
// reversals. It is not a full TSP solver: the guarantee is a deterministic
// tour never longer than visiting the stops in their input order.
type Optimizer struct{}

// NewOptimizer creates an Optimizer.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Optimize orders stops for a single driver's batch starting at depot.
// The returned plan contains every input stop exactly once.
func (o *Optimizer) Optimize(depot geo.Coordinate, stops []domain.Stop) (*domain.Plan, error) {
	if len(stops) == 0 {
		return nil, ErrNoStops
	}
	if !depot.IsFinite() {
		return nil, ErrInvalidDepot
	}
	for _, s := range stops {
		if !s.Address.IsFinite() {
			return nil, ErrInvalidDepot
		}
	}

	order := nearestNeighborOrder(depot, stops)
	order = twoOptRefine(depot, stops, order)

	// Nearest neighbour can lose to the input order on adversarial layouts.
	// Keeping the shorter of the two makes the never-worse guarantee
	// unconditional.
	identity := make([]int, len(stops))
	for i := range identity {
		identity[i] = i
	}
	if tourKm(depot, stops, identity) < tourKm(depot, stops, order) {
		order = identity
	}

	return buildPlan(depot, stops, order), nil
}

// nearestNeighborOrder repeatedly visits the closest unvisited stop,
// breaking distance ties by original input index for determinism.
func nearestNeighborOrder(depot geo.Coordinate, stops []domain.Stop) []int {
	visited := make([]bool, len(stops))
	order := make([]int, 0, len(stops))
	current := depot

	for len(order) < len(stops) {
		best := -1
		bestKm := math.Inf(1)
		for i, s := range stops {
			if visited[i] {
				continue
			}
			if d := geo.HaversineKm(current, s.Address); d < bestKm {
				bestKm = d
				best = i
			}
		}
		visited[best] = true
		order = append(order, best)
		current = stops[best].Address
	}

	return order
}

// twoOptRefine improves the tour by segment reversals. The total number of
// evaluated swaps is capped at n*n so the worst case stays predictable for
// the expected batch sizes.
func twoOptRefine(depot geo.Coordinate, stops []domain.Stop, order []int) []int {
	n := len(order)
	if n < 3 {
		return order
	}

	budget := n * n
	improved := true
	for improved && budget > 0 {
		improved = false
		for i := 0; i < n-1 && budget > 0; i++ {
			for j := i + 1; j < n && budget > 0; j++ {
				budget--

				prev := depot
				if i > 0 {
					prev = stops[order[i-1]].Address
				}

				oldKm := geo.HaversineKm(prev, stops[order[i]].Address)
				newKm := geo.HaversineKm(prev, stops[order[j]].Address)
				if j < n-1 {
					next := stops[order[j+1]].Address
					oldKm += geo.HaversineKm(stops[order[j]].Address, next)
					newKm += geo.HaversineKm(stops[order[i]].Address, next)
				}

				if newKm < oldKm-1e-12 {
					reverse(order, i, j)
					improved = true
				}
			}
		}
	}

	return order
}

func reverse(order []int, i, j int) {
	for i < j {
		order[i], order[j] = order[j], order[i]
		i++
		j--
	}
}

// tourKm is the path length from depot through the stops in the given order.
func tourKm(depot geo.Coordinate, stops []domain.Stop, order []int) float64 {
	total := 0.0
	current := depot
	for _, idx := range order {
		total += geo.HaversineKm(current, stops[idx].Address)
		current = stops[idx].Address
	}
	return total
}

func buildPlan(depot geo.Coordinate, stops []domain.Stop, order []int) *domain.Plan {
	planned := make([]domain.PlannedStop, 0, len(order))
	current := depot
	cumulative := 0.0

	for seq, idx := range order {
		leg := geo.HaversineKm(current, stops[idx].Address)
		cumulative += leg
		planned = append(planned, domain.PlannedStop{
			Stop:         stops[idx],
			Sequence:     seq + 1,
			LegKm:        leg,
			CumulativeKm: cumulative,
		})
		current = stops[idx].Address
	}

	travelMinutes := cumulative / averageSpeedKmh * 60
	return &domain.Plan{
		Stops:            planned,
		TotalDistanceKm:  cumulative,
		EstimatedMinutes: int(math.Round(travelMinutes)) + len(order)*stopHandlingMinutes,
	}
}
