package handler

import (
	"errors"

	"delivery-tracker/internal/core/geo"
	"delivery-tracker/internal/features/routing/domain"
	"delivery-tracker/internal/features/routing/service"

	"github.com/gofiber/fiber/v2"
)

// RouteHandler handles HTTP requests for route optimization.
type RouteHandler struct {
	optimizer *service.Optimizer
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(optimizer *service.Optimizer) *RouteHandler {
	return &RouteHandler{
		optimizer: optimizer,
	}
}

// OptimizeRequest is the request body for route optimization.
type OptimizeRequest struct {
	// Deliveries is the batch of stops to order.
	Deliveries []domain.Stop `json:"deliveries"`
	// DepotLocation is the starting point of the tour.
	DepotLocation geo.Coordinate `json:"depotLocation"`
}

// OptimizeResponse is the optimized visiting order with tour metrics.
type OptimizeResponse struct {
	Optimized        []domain.PlannedStop `json:"optimized"`
	Count            int                  `json:"count"`
	TotalDistanceKm  float64              `json:"totalDistanceKm"`
	EstimatedMinutes int                  `json:"estimatedMinutes"`
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// OptimizeRoute godoc
// @Summary Compute a visiting order for a batch of deliveries
// @Description Orders the given delivery stops from the depot by nearest-neighbour construction with bounded 2-opt refinement.
// @Tags routing
// @Accept json
// @Produce json
// @Param request body OptimizeRequest true "Stops and depot"
// @Success 200 {object} OptimizeResponse
// @Failure 400 {object} ErrorResponse
// @Router /optimize-route [post]
func (h *RouteHandler) OptimizeRoute(c *fiber.Ctx) error {
	var req OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   c.Locals("requestid").(string),
		})
	}

	if len(req.Deliveries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "deliveries array and depot location required",
			RayID:   c.Locals("requestid").(string),
		})
	}

	plan, err := h.optimizer.Optimize(req.DepotLocation, req.Deliveries)
	if err != nil {
		if errors.Is(err, service.ErrNoStops) || errors.Is(err, service.ErrInvalidDepot) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   c.Locals("requestid").(string),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(OptimizeResponse{
		Optimized:        plan.Stops,
		Count:            len(plan.Stops),
		TotalDistanceKm:  plan.TotalDistanceKm,
		EstimatedMinutes: plan.EstimatedMinutes,
	})
}
