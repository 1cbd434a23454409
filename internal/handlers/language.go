package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pulsedash/pulsedash/internal/models"
)

// SessionHeader carries the dashboard session identifier on label lookups.
const SessionHeader = "X-Session-ID"

// Languages handles language listing requests
// GET /v1/languages
func (h *Handler) Languages(c *fiber.Ctx) error {
	return c.JSON(h.languageService.Languages(c.Context()))
}

// Label handles translation lookups
// GET /v1/labels/:key?lang=<code>
//
// When no lang is given, the session identified by the X-Session-ID header
// (or session_id query parameter) supplies the language.
func (h *Handler) Label(c *fiber.Ctx) error {
	key := c.Params("key")
	language := c.Query("lang")

	sessionID := c.Get(SessionHeader)
	if sessionID == "" {
		sessionID = c.Query("session_id")
	}

	result, err := h.languageService.Label(c.Context(), key, language, sessionID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(result)
}

// SessionLanguage handles session language lookups
// GET /v1/sessions/:session_id/language
func (h *Handler) SessionLanguage(c *fiber.Ctx) error {
	result, err := h.languageService.SessionLanguage(c.Context(), c.Params("session_id"))
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(result)
}

// SetSessionLanguage handles session language updates
// PUT /v1/sessions/:session_id/language
func (h *Handler) SetSessionLanguage(c *fiber.Ctx) error {
	var req models.LanguageRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSONResponse(c, err)
	}

	result, err := h.languageService.SetSessionLanguage(c.Context(), c.Params("session_id"), req.Language)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return c.JSON(result)
}
