package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsedash/pulsedash/internal/models"
)

// Forecast handles metric forecast requests
// POST /v1/metrics/forecast
func (h *Handler) Forecast(c *fiber.Ctx) error {
	var req models.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSONResponse(c, err)
	}

	result, err := h.forecastService.Execute(c.Context(), &req)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(result)
}
