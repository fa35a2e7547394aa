package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandsync/api/internal/service"
)

type KeysHandler struct {
	s service.ApiKeyService
}

func NewKeysHandler(s service.ApiKeyService) *KeysHandler {
	return &KeysHandler{s: s}
}

// CreateKey returns the plaintext key once; it is not retrievable later.
func (h *KeysHandler) CreateKey(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	key, err := h.s.Create(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"api_key": key,
	})
}

func (h *KeysHandler) ListKeys(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	keys, err := h.s.List(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(keys)
}

func (h *KeysHandler) RemoveKey(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	keyID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), rc, int64(keyID)); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
