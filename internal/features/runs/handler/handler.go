package handler

import (
	"net/http"

	"price-tracker/internal/core/logger"
	"price-tracker/internal/features/runs/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RunHandler handles HTTP requests for run reports.
type RunHandler struct {
	service ports.RunService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(service ports.RunService) *RunHandler {
	return &RunHandler{
		service: service,
	}
}

// GetLatestRun handles GET /runs/latest.
// @Summary Get the latest run report
// @Description Retrieves the report of the most recent tracking run.
// @Tags Runs
// @Produce json
// @Success 200 {object} domain.RunReport
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /runs/latest [get]
func (h *RunHandler) GetLatestRun(c *fiber.Ctx) error {
	ctx := c.Context()
	report, err := h.service.Latest(ctx)
	if err != nil {
		logger.Get().Error("Failed to get run report", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	if report == nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{
			"error": "No completed runs",
		})
	}

	return c.Status(http.StatusOK).JSON(report)
}

// ClearLatestRun handles DELETE /runs/latest.
// @Summary Clear the latest run report
// @Description Removes the stored report of the most recent tracking run.
// @Tags Runs
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /runs/latest [delete]
func (h *RunHandler) ClearLatestRun(c *fiber.Ctx) error {
	ctx := c.Context()
	if err := h.service.ClearLatest(ctx); err != nil {
		logger.Get().Error("Failed to clear run report", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Run report cleared",
	})
}
