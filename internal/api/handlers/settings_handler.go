package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandsync/api/internal/service"
	"github.com/brandsync/api/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(s service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: s}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	settings, err := h.s.GetSettings(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(settings)
}

func (h *SettingsHandler) SaveSettings(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	var su transfer.SettingsUpdate
	if err := c.BodyParser(&su); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	if err := h.s.SaveSettings(c.Context(), rc, &su); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
