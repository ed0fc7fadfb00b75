package handler

import (
	"go-partsledger/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler serves the static role and privilege catalogs the admin UI
// needs to build its permission editor.
type RoleHandler struct {
	roleRepo repository.RoleRepository
	privRepo repository.PrivilegeRepository
}

func NewRoleHandler(roleRepo repository.RoleRepository, privRepo repository.PrivilegeRepository) *RoleHandler {
	return &RoleHandler{roleRepo: roleRepo, privRepo: privRepo}
}

func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(roles)
}

func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	privileges, err := h.privRepo.FindAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(privileges)
}
