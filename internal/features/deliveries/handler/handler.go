package handler

import (
	"context"
	"errors"
	"time"

	"delivery-tracker/internal/core/geo"
	"delivery-tracker/internal/core/logger"
	"delivery-tracker/internal/features/deliveries/domain"
	"delivery-tracker/internal/features/deliveries/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DeliveryHandler handles HTTP requests for delivery tracking and lifecycle.
type DeliveryHandler struct {
	tracker *service.Tracker
}

// NewDeliveryHandler creates a new DeliveryHandler.
func NewDeliveryHandler(tracker *service.Tracker) *DeliveryHandler {
	return &DeliveryHandler{
		tracker: tracker,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Hint suggests how the caller can fix or retry the request.
	Hint string `json:"hint,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// CreateDeliveryRequest is the body for assigning a new delivery.
type CreateDeliveryRequest struct {
	OrderID          string `json:"orderId"`
	DriverID         string `json:"driverId"`
	RdcID            string `json:"rdcId"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

// LocationRequest is a driver GPS ping.
type LocationRequest struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timestamp time.Time `json:"timestamp"`
}

// CompleteRequest is the proof-of-delivery body.
type CompleteRequest struct {
	Signature     string `json:"signature"`
	Photo         string `json:"photo"`
	RecipientName string `json:"recipientName"`
	Notes         string `json:"notes"`
}

// FailRequest carries the failure reason.
type FailRequest struct {
	Reason string `json:"reason"`
}

// CreateDelivery godoc
// @Summary Assign a new delivery
// @Description Creates a pending delivery record for an order, owned by a driver and an RDC.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body CreateDeliveryRequest true "Delivery assignment"
// @Success 201 {object} domain.Delivery
// @Failure 400 {object} ErrorResponse
// @Router / [post]
func (h *DeliveryHandler) CreateDelivery(c *fiber.Ctx) error {
	var req CreateDeliveryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "")
	}
	if req.OrderID == "" || req.RdcID == "" {
		return badRequest(c, "orderId and rdcId are required", "")
	}

	rec, err := h.tracker.Assign(c.Context(), service.AssignInput{
		OrderID:          req.OrderID,
		DriverID:         req.DriverID,
		RdcID:            req.RdcID,
		EstimatedMinutes: req.EstimatedMinutes,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// GetTracking godoc
// @Summary Get tracking info for a delivery
// @Description Public tracking read: record state, location history, and ETA.
// @Tags deliveries
// @Produce json
// @Param deliveryId path string true "Delivery ID"
// @Success 200 {object} service.TrackingInfo
// @Failure 404 {object} ErrorResponse
// @Router /{deliveryId} [get]
func (h *DeliveryHandler) GetTracking(c *fiber.Ctx) error {
	info, err := h.tracker.Track(c.Context(), c.Params("deliveryId"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(info)
}

// UpdateLocation godoc
// @Summary Report a driver GPS ping
// @Description Validates the coordinate against the operating region and applies it to the delivery. Pings older than the stored fix are accepted but superseded.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param deliveryId path string true "Delivery ID"
// @Param request body LocationRequest true "GPS fix"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /{deliveryId}/location [post]
func (h *DeliveryHandler) UpdateLocation(c *fiber.Ctx) error {
	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid coordinates: lat and lon must be numbers", "")
	}

	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := h.tracker.Ingest(c.Context(), c.Params("deliveryId"),
		geo.Coordinate{Lat: req.Lat, Lon: req.Lon}, ts)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Location updated",
		"applied": res.Applied,
		"status":  res.Delivery.Status,
	})
}

// CompleteDelivery godoc
// @Summary Complete a delivery with proof
// @Description Attaches proof of delivery and moves the record to delivered.
// @Tags deliveries
// @Accept json
// @Produce json
// @Param deliveryId path string true "Delivery ID"
// @Param request body CompleteRequest true "Proof of delivery"
// @Success 200 {object} domain.Delivery
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /{deliveryId}/complete [post]
func (h *DeliveryHandler) CompleteDelivery(c *fiber.Ctx) error {
	var req CompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "")
	}

	rec, err := h.tracker.Complete(c.Context(), c.Params("deliveryId"), domain.Proof{
		Signature:     req.Signature,
		PhotoRef:      req.Photo,
		RecipientName: req.RecipientName,
		Notes:         req.Notes,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(rec)
}

// FailDelivery godoc
// @Summary Mark a delivery as failed
// @Tags deliveries
// @Accept json
// @Produce json
// @Param deliveryId path string true "Delivery ID"
// @Param request body FailRequest true "Failure reason"
// @Success 200 {object} domain.Delivery
// @Failure 409 {object} ErrorResponse
// @Router /{deliveryId}/fail [post]
func (h *DeliveryHandler) FailDelivery(c *fiber.Ctx) error {
	var req FailRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", "")
	}

	rec, err := h.tracker.Fail(c.Context(), c.Params("deliveryId"), req.Reason)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(rec)
}

// DriverDeliveries godoc
// @Summary List a driver's active deliveries
// @Tags deliveries
// @Produce json
// @Param driverId path string true "Driver ID"
// @Success 200 {object} map[string]interface{}
// @Router /driver/{driverId} [get]
func (h *DeliveryHandler) DriverDeliveries(c *fiber.Ctx) error {
	recs, err := h.tracker.ActiveForDriver(c.Context(), c.Params("driverId"))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"deliveries": recs,
		"count":      len(recs),
	})
}

func badRequest(c *fiber.Ctx, message, hint string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: message,
		Hint:    hint,
		RayID:   rayID(c),
	})
}

// respondError maps service errors onto the HTTP taxonomy: caller errors are
// 4xx with an explanatory message, storage and lock timeouts are retryable
// 503s, and nothing crashes the process.
func (h *DeliveryHandler) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrOutsideFence):
		return badRequest(c, "invalid coordinates - must be within the operating region",
			"check the device GPS fix; coordinates are rejected, never corrected")
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: "delivery not found",
			RayID:   rayID(c),
		})
	case errors.Is(err, domain.ErrInvalidProof):
		return badRequest(c, "proof requires a signature or recipient name", "")
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Message: "delivery is already in a terminal state",
			RayID:   rayID(c),
		})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "delivery is busy, retry shortly",
			RayID:   rayID(c),
		})
	default:
		logger.Get().Error("Delivery request failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Message: "temporary failure, retry shortly",
			RayID:   rayID(c),
		})
	}
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
