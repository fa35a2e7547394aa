package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/brandsync/api/internal/apperr"
	"github.com/brandsync/api/internal/transfer"
)

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

func GetRequestContext(c *fiber.Ctx) *transfer.RequestContext {
	role, _ := c.Locals("role").(string)
	return &transfer.RequestContext{
		UserID: GetUserID(c),
		Role:   role,
	}
}

// ErrorResponse maps service errors to HTTP statuses. Anything without a
// known kind is a 500 with a generic body so internals never leak.
func ErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "something went wrong"

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = fiber.StatusBadRequest
		message = apperr.MessageOf(err)
	case apperr.KindNotFound:
		status = fiber.StatusNotFound
		message = apperr.MessageOf(err)
	case apperr.KindForbidden:
		status = fiber.StatusForbidden
		message = apperr.MessageOf(err)
	case apperr.KindAuth:
		status = fiber.StatusUnauthorized
		message = apperr.MessageOf(err)
	case apperr.KindExternal:
		status = fiber.StatusBadGateway
		message = apperr.MessageOf(err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
