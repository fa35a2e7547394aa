package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	config "github.com/brandsync/api/configs"
	"github.com/brandsync/api/internal/service"
)

type PlatformHandler struct {
	ps  service.PlatformService
	fb  service.FacebookService
	gs  service.GoogleService
	cfg config.Config
}

func NewPlatformHandler(ps service.PlatformService, fb service.FacebookService, gs service.GoogleService, cfg config.Config) *PlatformHandler {
	return &PlatformHandler{
		ps:  ps,
		fb:  fb,
		gs:  gs,
		cfg: cfg,
	}
}

// GetAuthURL returns the provider authorization URL for a partner. The
// frontend opens it in a new window; the provider redirects back to the
// callback below.
func (h *PlatformHandler) GetAuthURL(c *fiber.Ctx) error {
	platform := c.Query("platform")

	partnerID, err := strconv.ParseInt(c.Params("partnerId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "partner id is not valid",
		})
	}

	authURL, err := h.ps.GetAuthURL(c.Context(), partnerID, platform)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": authURL,
	})
}

func (h *PlatformHandler) FacebookCallbackHandler(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	partnerID, err := h.fb.FacebookCallback(c.Context(), code, state)
	if err != nil {
		return ErrorResponse(c, err)
	}

	redirectURL := fmt.Sprintf("%s/partners/%d/accounts", h.cfg.FrontendURL, partnerID)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *PlatformHandler) GoogleCallbackHandler(c *fiber.Ctx) error {
	code := c.Query("code")
	state := c.Query("state")

	partnerID, err := h.gs.GoogleCallback(c.Context(), code, state)
	if err != nil {
		return ErrorResponse(c, err)
	}

	redirectURL := fmt.Sprintf("%s/partners/%d/accounts", h.cfg.FrontendURL, partnerID)
	return c.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}

func (h *PlatformHandler) ListSocialAccounts(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	partnerID := c.QueryInt("partner_id", 0)

	accounts, err := h.ps.List(c.Context(), rc, int64(partnerID))
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *PlatformHandler) DeleteSocialAccount(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	accountID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "account id is not valid",
		})
	}

	if err := h.ps.Delete(c.Context(), rc, accountID); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
