package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"delivery-tracker/internal/features/analytics/domain"
	deliveries "delivery-tracker/internal/features/deliveries/domain"
	"delivery-tracker/internal/features/deliveries/ports"
)

// DefaultWindow is the lookback applied when the caller gives no range.
const DefaultWindow = 30 * 24 * time.Hour

// Aggregator computes delivery summaries from the record store. Aggregation
// is read-only and runs on whatever the store returns; records mutated
// mid-scan are counted in the state they were read in.
type Aggregator struct {
	store ports.Store
	now   func() time.Time
}

// NewAggregator creates an Aggregator over the shared record store.
func NewAggregator(store ports.Store) *Aggregator {
	return &Aggregator{
		store: store,
		now:   time.Now,
	}
}

// Summarize aggregates the RDC's deliveries created within [start, end].
// A zero end defaults to now; a zero start defaults to end minus the
// default window. An empty window is a valid summary with zero counters,
// not an error.
func (a *Aggregator) Summarize(ctx context.Context, rdcID string, start, end time.Time) (*domain.Summary, error) {
	if end.IsZero() {
		end = a.now()
	}
	if start.IsZero() {
		start = end.Add(-DefaultWindow)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end %s before start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	recs, err := a.store.QueryByRdcAndRange(ctx, rdcID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query deliveries for %s: %w", rdcID, err)
	}

	summary := &domain.Summary{
		RdcID:     rdcID,
		StartDate: start,
		EndDate:   end,
		Total:     len(recs),
	}

	perDriver := make(map[string]*domain.DriverStats)
	var durationSum time.Duration

	for _, rec := range recs {
		driver := perDriver[rec.DriverID]
		if driver == nil {
			driver = &domain.DriverStats{DriverID: rec.DriverID}
			perDriver[rec.DriverID] = driver
		}
		driver.Total++

		switch rec.Status {
		case deliveries.StatusDelivered:
			summary.Delivered++
			driver.Delivered++
			if rec.DeliveredAt != nil {
				durationSum += rec.DeliveredAt.Sub(rec.CreatedAt)
			}
		case deliveries.StatusFailed:
			summary.Failed++
			driver.Failed++
		case deliveries.StatusInTransit:
			summary.InTransit++
		case deliveries.StatusPending:
			summary.Pending++
		}
	}

	summary.SuccessRate = successRate(summary.Delivered, summary.Failed)
	if summary.Delivered > 0 {
		summary.AvgDurationSeconds = durationSum.Seconds() / float64(summary.Delivered)
	}

	summary.ByDriver = make([]domain.DriverStats, 0, len(perDriver))
	for _, driver := range perDriver {
		driver.SuccessRate = successRate(driver.Delivered, driver.Failed)
		summary.ByDriver = append(summary.ByDriver, *driver)
	}
	sort.Slice(summary.ByDriver, func(i, j int) bool {
		return summary.ByDriver[i].DriverID < summary.ByDriver[j].DriverID
	})

	return summary, nil
}

// successRate guards the zero denominator: with no terminal outcomes the
// rate is 0, never NaN.
func successRate(delivered, failed int) float64 {
	terminal := delivered + failed
	if terminal == 0 {
		return 0
	}
	return float64(delivered) / float64(terminal)
}
