package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsedash/pulsedash/internal/models"
)

// Anomalies handles anomaly detection requests
// POST /v1/metrics/anomalies
func (h *Handler) Anomalies(c *fiber.Ctx) error {
	var req models.AnomalyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSONResponse(c, err)
	}

	result, err := h.anomalyService.Execute(c.Context(), &req)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(result)
}
