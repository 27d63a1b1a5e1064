package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"delivery-tracker/internal/features/analytics/domain"
	"delivery-tracker/internal/features/analytics/service"
	"delivery-tracker/internal/features/deliveries/adapters"
	deliveries "delivery-tracker/internal/features/deliveries/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) (*fiber.App, *adapters.RedisDeliveryStore) {
	t.Helper()
	mr := miniredis.RunT(t)

	opts, err := redis.ParseURL("redis://" + mr.Addr())
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { client.Close() })

	store := adapters.NewRedisDeliveryStore(client)
	h := NewAnalyticsHandler(service.NewAggregator(store))

	app := fiber.New()
	app.Get("/analytics/:rdcId", h.GetSummary)
	return app, store
}

func seed(t *testing.T, store *adapters.RedisDeliveryStore) {
	t.Helper()
	ctx := context.Background()

	done := deliveries.New("DEL-1", "ORD-1", "driver-1", "rdc-colombo", 30, base)
	require.NoError(t, done.Complete(deliveries.Proof{RecipientName: "Jane"}, base.Add(25*time.Minute)))
	failed := deliveries.New("DEL-2", "ORD-2", "driver-1", "rdc-colombo", 30, base.Add(time.Hour))
	require.NoError(t, failed.Fail("recipient unreachable", base.Add(2*time.Hour)))
	pending := deliveries.New("DEL-3", "ORD-3", "driver-2", "rdc-colombo", 30, base.Add(2*time.Hour))

	for _, rec := range []*deliveries.Delivery{done, failed, pending} {
		require.NoError(t, store.Put(ctx, rec))
	}
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// TestGetSummary verifies the explicit date range path.
func TestGetSummary(t *testing.T) {
	app, store := newTestApp(t)
	seed(t, store)

	status, body := get(t, app, "/analytics/rdc-colombo?startDate=2025-11-03&endDate=2025-11-03")
	require.Equal(t, fiber.StatusOK, status)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Delivered)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Pending)
	assert.InDelta(t, 0.5, summary.SuccessRate, 1e-9)
	assert.InDelta(t, 1500, summary.AvgDurationSeconds, 1e-9)
	require.Len(t, summary.ByDriver, 2)
	assert.Equal(t, "driver-1", summary.ByDriver[0].DriverID)
}

// TestGetSummary_DefaultRange verifies the handler answers with zero-filled
// counters when the default thirty-day window has no records.
func TestGetSummary_DefaultRange(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := get(t, app, "/analytics/rdc-colombo")
	require.Equal(t, fiber.StatusOK, status)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal(body, &summary))
	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0.0, summary.SuccessRate)
	assert.InDelta(t, float64(30*24), summary.EndDate.Sub(summary.StartDate).Hours(), 1e-6)
}

// TestGetSummary_BadDate verifies malformed dates are a caller error.
func TestGetSummary_BadDate(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, "/analytics/rdc-colombo?startDate=03-11-2025")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

// TestGetSummary_InvertedRange verifies end-before-start is a caller error.
func TestGetSummary_InvertedRange(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := get(t, app, "/analytics/rdc-colombo?startDate=2025-11-03&endDate=2025-11-01")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
