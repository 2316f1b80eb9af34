package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/noora/internal/services"
	"github.com/example/noora/internal/utils"
)

// VariantHandler manages variant groups.
type VariantHandler struct {
	variants *services.VariantService
}

// NewVariantHandler constructs VariantHandler.
func NewVariantHandler(variants *services.VariantService) *VariantHandler {
	return &VariantHandler{variants: variants}
}

// ListGroups returns all variant groups.
func (h *VariantHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.variants.ListGroups()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": groups})
}

type variantGroupRequest struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

// CreateGroup persists a new variant group.
func (h *VariantHandler) CreateGroup(c *fiber.Ctx) error {
	var req variantGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	group, err := h.variants.CreateGroup(req.Name, req.Slug)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": group})
}

// GetGroup returns one group with its ordered members.
func (h *VariantHandler) GetGroup(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	group, err := h.variants.GetGroup(id)
	if err != nil {
		return err
	}

	members, err := h.variants.ListGroupMembers(id, nil)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"group":   group,
		"members": members,
	}})
}

type setDefaultRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
}

// SetDefault designates a member product as the group default.
func (h *VariantHandler) SetDefault(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req setDefaultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
	}

	if err := h.variants.SetDefault(id, productID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeleteGroup removes a group and detaches its members.
func (h *VariantHandler) DeleteGroup(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.variants.DeleteGroup(id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
