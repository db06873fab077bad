package handler

import (
	"errors"
	"time"

	"price-tracker/internal/core/logger"
	runsdomain "price-tracker/internal/features/runs/domain"
	runports "price-tracker/internal/features/runs/ports"
	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"
	"price-tracker/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingHandler handles HTTP requests for tracking runs.
type TrackingHandler struct {
	trackerService *service.TrackerService
	catalogService *service.CatalogService
	runService     runports.RunService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(trackerService *service.TrackerService, catalogService *service.CatalogService, runService runports.RunService) *TrackingHandler {
	return &TrackingHandler{
		trackerService: trackerService,
		catalogService: catalogService,
		runService:     runService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// rayID returns the request id set by the server middleware, if any.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

func validSource(source domain.SourceType) bool {
	switch source {
	case domain.SourceTypeShopee, domain.SourceTypeGold, domain.SourceTypeAmazon:
		return true
	}
	return false
}

// RunTracking godoc
// @Summary Run tracking for all active items
// @Description Fetches the current price for every active item, records the observations and sends alerts for threshold-crossing changes. Returns the run report with one outcome per item.
// @Tags tracking
// @Accept json
// @Produce json
// @Param source query string false "Restrict the run to one source (shopee, gold, amazon)"
// @Success 200 {object} runsdomain.RunReport
// @Failure 400 {object} ErrorResponse
// @Router /tracking/run [post]
func (h *TrackingHandler) RunTracking(c *fiber.Ctx) error {
	source := domain.SourceType(c.Query("source"))
	if source != "" && !validSource(source) {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "unknown source: " + string(source),
			RayID:   rayID(c),
		})
	}

	startedAt := time.Now()
	outcomes := h.trackerService.TrackActive(c.Context(), source)
	finishedAt := time.Now()

	report, err := h.runService.Record(c.Context(), runsdomain.TriggerAPI, startedAt, finishedAt, outcomes)
	if err != nil {
		// The run itself finished. Losing the stored report is not a
		// request failure, so respond with a locally built one.
		logger.Get().Error("Failed to record run report", zap.Error(err))
		report, _ = runsdomain.NewRunReport(runsdomain.TriggerAPI, startedAt, finishedAt, outcomes)
	}

	return c.JSON(report)
}

// RunTrackingItem godoc
// @Summary Run tracking for one item
// @Description Fetches the current price for a single tracked item and records the observation. Returns the tracking outcome, including failures.
// @Tags tracking
// @Accept json
// @Produce json
// @Param id path string true "Tracked item ID"
// @Success 200 {object} domain.TrackingOutcome
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tracking/items/{id}/run [post]
func (h *TrackingHandler) RunTrackingItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.catalogService.Get(c.Context(), itemID)
	if err != nil {
		if errors.Is(err, ports.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "tracked item not found",
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to load tracked item", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	outcome := h.trackerService.Track(c.Context(), *item)

	return c.JSON(outcome)
}
