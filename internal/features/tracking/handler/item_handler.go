package handler

import (
	"errors"

	"price-tracker/internal/core/logger"
	"price-tracker/internal/features/tracking/domain"
	"price-tracker/internal/features/tracking/ports"
	"price-tracker/internal/features/tracking/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ItemHandler handles HTTP requests for the tracked item catalog.
type ItemHandler struct {
	catalogService *service.CatalogService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(catalogService *service.CatalogService) *ItemHandler {
	return &ItemHandler{
		catalogService: catalogService,
	}
}

// RegisterItemRequest represents the request body for registering an item.
type RegisterItemRequest struct {
	// ID is optional. When empty it is derived from the source config.
	ID     string            `json:"id"`
	Source domain.SourceType `json:"source"`
	// Config holds source-specific settings. Shopee items accept either
	// shop_id and item_id, or a product_url to derive them from.
	Config      map[string]string `json:"config"`
	DisplayName string            `json:"display_name"`
	// NotificationThreshold is the fractional change that triggers an alert.
	// Zero selects the default.
	NotificationThreshold float64 `json:"notification_threshold"`
}

// UpdateStatusRequest represents the request body for changing an item status.
type UpdateStatusRequest struct {
	Status domain.ItemStatus `json:"status"`
}

// RegisterItem handles POST /items.
// @Summary Register a tracked item
// @Description Adds an item to the tracking catalog. The item id is derived from the source config when not given.
// @Tags Items
// @Accept json
// @Produce json
// @Param item body RegisterItemRequest true "Item details"
// @Success 201 {object} domain.TrackedItem
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items [post]
func (h *ItemHandler) RegisterItem(c *fiber.Ctx) error {
	var req RegisterItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	item, err := h.catalogService.Register(c.Context(), service.RegisterItemInput{
		ID:                    req.ID,
		Source:                req.Source,
		Config:                req.Config,
		DisplayName:           req.DisplayName,
		NotificationThreshold: req.NotificationThreshold,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidItem) || errors.Is(err, domain.ErrUnknownSource) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to register item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListItems handles GET /items.
// @Summary List tracked items
// @Description Lists catalog items, optionally filtered by source and status.
// @Tags Items
// @Produce json
// @Param source query string false "Filter by source (shopee, gold, amazon)"
// @Param status query string false "Filter by status (active, inactive)"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /items [get]
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	source := domain.SourceType(c.Query("source"))
	status := domain.ItemStatus(c.Query("status"))

	items, err := h.catalogService.List(c.Context(), source, status)
	if err != nil {
		logger.Get().Error("Failed to list items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{
		"items": items,
		"count": len(items),
	})
}

// GetItem handles GET /items/:id.
// @Summary Get a tracked item
// @Description Retrieves one catalog item by id.
// @Tags Items
// @Produce json
// @Param id path string true "Tracked item ID"
// @Success 200 {object} domain.TrackedItem
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	item, err := h.catalogService.Get(c.Context(), itemID)
	if err != nil {
		if errors.Is(err, ports.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "tracked item not found",
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to get item", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(item)
}

// SetItemStatus handles PATCH /items/:id/status.
// @Summary Change a tracked item status
// @Description Activates or pauses an item. Paused items keep their history but are skipped by tracking runs.
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Tracked item ID"
// @Param status body UpdateStatusRequest true "New status"
// @Success 200 {object} domain.TrackedItem
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items/{id}/status [patch]
func (h *ItemHandler) SetItemStatus(c *fiber.Ctx) error {
	itemID := c.Params("id")

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID(c),
		})
	}

	if err := h.catalogService.SetStatus(c.Context(), itemID, req.Status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidItem):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Message: err.Error(),
				RayID:   rayID(c),
			})
		case errors.Is(err, ports.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "tracked item not found",
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to update item status", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	item, err := h.catalogService.Get(c.Context(), itemID)
	if err != nil {
		logger.Get().Error("Failed to reload item", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(item)
}

// GetItemHistory handles GET /items/:id/history.
// @Summary Get price history for a tracked item
// @Description Returns recorded price observations, newest first.
// @Tags Items
// @Produce json
// @Param id path string true "Tracked item ID"
// @Param limit query int false "Maximum observations to return (default 20, max 100)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /items/{id}/history [get]
func (h *ItemHandler) GetItemHistory(c *fiber.Ctx) error {
	itemID := c.Params("id")
	limit := c.QueryInt("limit", 0)

	history, err := h.catalogService.History(c.Context(), itemID, limit)
	if err != nil {
		if errors.Is(err, ports.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Message: "tracked item not found",
				RayID:   rayID(c),
			})
		}

		logger.Get().Error("Failed to read item history", zap.String("item_id", itemID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: "Internal server error",
			RayID:   rayID(c),
		})
	}

	return c.JSON(fiber.Map{
		"item_id": itemID,
		"history": history,
		"count":   len(history),
	})
}
