package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"delivery-tracker/internal/features/routing/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "test-ray-id")
		return c.Next()
	})
	app.Post("/optimize-route", NewRouteHandler(service.NewOptimizer()).OptimizeRoute)
	return app
}

// TestOptimizeRoute_Success verifies a small batch is ordered and counted.
func TestOptimizeRoute_Success(t *testing.T) {
	app := newApp()

	body := `{
		"depotLocation": {"lat": 6.9271, "lon": 79.8612},
		"deliveries": [
			{"deliveryId": "DEL-1", "address": {"lat": 7.3, "lon": 80.6}},
			{"deliveryId": "DEL-2", "address": {"lat": 6.95, "lon": 79.87}}
		]
	}`

	req := httptest.NewRequest("POST", "/optimize-route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result OptimizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Optimized, 2)
	assert.Equal(t, "DEL-2", result.Optimized[0].DeliveryID)
	assert.Equal(t, 1, result.Optimized[0].Sequence)
	assert.Greater(t, result.TotalDistanceKm, 0.0)
}

// TestOptimizeRoute_EmptyDeliveries verifies the empty batch gets 400.
func TestOptimizeRoute_EmptyDeliveries(t *testing.T) {
	app := newApp()

	body := `{"depotLocation": {"lat": 6.9, "lon": 79.8}, "deliveries": []}`
	req := httptest.NewRequest("POST", "/optimize-route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Contains(t, errResp.Message, "required")
	assert.Equal(t, "test-ray-id", errResp.RayID)
}

// TestOptimizeRoute_MalformedBody verifies unparsable JSON gets 400.
func TestOptimizeRoute_MalformedBody(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest("POST", "/optimize-route", strings.NewReader("{nope"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
