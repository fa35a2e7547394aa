package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brandsync/api/internal/service"
	"github.com/brandsync/api/internal/transfer"
)

type PartnerHandler struct {
	ps service.PartnerService
	is service.InviteService
}

func NewPartnerHandler(ps service.PartnerService, is service.InviteService) *PartnerHandler {
	return &PartnerHandler{
		ps: ps,
		is: is,
	}
}

func (h *PartnerHandler) CreatePartner(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	var pc transfer.PartnerCreation
	if err := c.BodyParser(&pc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	partnerID, err := h.ps.Create(c.Context(), rc, &pc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": partnerID,
	})
}

func (h *PartnerHandler) ListPartners(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	partnerID := c.QueryInt("id", 0)

	if partnerID != 0 {
		partner, err := h.ps.PartnerInfo(c.Context(), rc, int64(partnerID))
		if err != nil {
			return ErrorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(partner)
	}

	partners, err := h.ps.List(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(partners)
}

func (h *PartnerHandler) UpdatePartner(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	var pu transfer.PartnerUpdate
	if err := c.BodyParser(&pu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	if err := h.ps.Update(c.Context(), rc, &pu); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PartnerHandler) RemovePartner(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	partnerID := c.QueryInt("id", 0)

	if err := h.ps.Remove(c.Context(), rc, int64(partnerID)); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PartnerHandler) CreateInvite(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	var ic transfer.InviteCreation
	if err := c.BodyParser(&ic); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	invite, err := h.is.Create(c.Context(), rc, &ic)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(invite)
}

func (h *PartnerHandler) ListInvites(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	invites, err := h.is.List(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(invites)
}

// AcceptInvite is unauthenticated; the token itself is the credential.
func (h *PartnerHandler) AcceptInvite(c *fiber.Ctx) error {
	token := c.Params("token")

	partnerID, err := h.is.Accept(c.Context(), token)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"partner_id": partnerID,
	})
}
