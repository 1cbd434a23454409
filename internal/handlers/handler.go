package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/i18n"
	"github.com/pulsedash/pulsedash/internal/logging"
	"github.com/pulsedash/pulsedash/internal/models"
	"github.com/pulsedash/pulsedash/internal/services"
	"github.com/pulsedash/pulsedash/internal/session"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger *logging.Logger
	// Services
	forecastService *services.ForecastService
	anomalyService  *services.AnomalyService
	languageService *services.LanguageService
}

// New creates a new handler instance
func New(logger *logging.Logger, cfg config.AnalyticsConfig,
	resolver *i18n.Resolver, sessions session.Store,
) *Handler {
	return &Handler{
		logger:          logger,
		forecastService: services.NewForecastService(logger, cfg.Forecast),
		anomalyService:  services.NewAnomalyService(logger, cfg.Anomaly),
		languageService: services.NewLanguageService(logger, resolver, sessions),
	}
}

// serviceErrorResponse maps a service layer error onto an HTTP response.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	if svcErr, ok := err.(*services.ServiceError); ok {
		status := fiber.StatusInternalServerError
		switch svcErr.Code {
		case "INVALID_REQUEST", "INVALID_METHOD", "INVALID_LANGUAGE":
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    svcErr.Code,
				Message: svcErr.Message,
				Details: svcErr.Details,
			},
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: err.Error(),
		},
	})
}

// invalidJSONResponse reports an unparseable request body.
func invalidJSONResponse(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "INVALID_JSON",
			Message: "Failed to parse JSON body",
			Details: map[string]interface{}{"error": err.Error()},
		},
	})
}
