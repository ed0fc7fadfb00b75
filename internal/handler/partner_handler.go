package handler

import (
	"errors"

	"go-partsledger/internal/model"
	"go-partsledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PartnerHandler struct {
	service service.PartnerService
}

func NewPartnerHandler(s service.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: s}
}

func (h *PartnerHandler) CreatePartner(c *fiber.Ctx) error {
	var partner model.Partner
	if err := c.BodyParser(&partner); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreatePartner(&partner, getUserID(c)); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Partner created", "data": partner})
}

func (h *PartnerHandler) UpdatePartner(c *fiber.Ctx) error {
	partnerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	var partner model.Partner
	if err := c.BodyParser(&partner); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdatePartner(partnerID, &partner, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Partner not found"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Partner updated", "data": updated})
}

func (h *PartnerHandler) DeletePartner(c *fiber.Ctx) error {
	partnerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	if err := h.service.DeletePartner(partnerID); err != nil {
		if errors.Is(err, service.ErrPartnerNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Partner not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	return c.JSON(fiber.Map{"message": "Partner deleted"})
}

func (h *PartnerHandler) GetPartners(c *fiber.Ctx) error {
	partners, err := h.service.GetAllPartners()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(partners)
}

func (h *PartnerHandler) GetPartner(c *fiber.Ctx) error {
	partnerID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	partner, err := h.service.GetPartnerByID(partnerID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Partner not found"})
	}
	return c.JSON(partner)
}
