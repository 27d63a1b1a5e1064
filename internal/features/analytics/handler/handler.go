package handler

import (
	"time"

	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/features/analytics/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AnalyticsHandler handles HTTP requests for delivery analytics.
type AnalyticsHandler struct {
	aggregator *service.Aggregator
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(aggregator *service.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{
		aggregator: aggregator,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	Message string `json:"message"`
	RayID   string `json:"ray_id,omitempty"`
}

// GetSummary godoc
// @Summary Delivery analytics for an RDC
// @Description Aggregates delivery outcomes for the RDC over the given date range. Defaults to the last thirty days.
// @Tags analytics
// @Produce json
// @Param rdcId path string true "RDC ID"
// @Param startDate query string false "Range start (YYYY-MM-DD)"
// @Param endDate query string false "Range end (YYYY-MM-DD, inclusive)"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} ErrorResponse
// @Router /analytics/{rdcId} [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		return badRequest(c, "startDate must be YYYY-MM-DD")
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		return badRequest(c, "endDate must be YYYY-MM-DD")
	}
	if !end.IsZero() {
		// The end date is inclusive: cover the whole day.
		end = end.Add(24*time.Hour - time.Nanosecond)
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return badRequest(c, "endDate must not be before startDate")
	}

	summary, err := h.aggregator.Summarize(c.Context(), c.Params("rdcId"), start, end)
	if err != nil {
		logger.Get().Error("Analytics aggregation failed",
			zap.String("rdc_id", c.Params("rdcId")), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "temporary failure, retry shortly",
			RayID:   rayID(c),
		})
	}

	return c.JSON(summary)
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, value)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
