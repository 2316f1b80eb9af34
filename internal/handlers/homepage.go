package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/noora/internal/models"
	"github.com/example/noora/internal/services"
	"github.com/example/noora/internal/utils"
)

// HomepageHandler serves the curated storefront sections.
type HomepageHandler struct {
	home *services.HomepageService
}

// NewHomepageHandler constructs HomepageHandler.
func NewHomepageHandler(home *services.HomepageService) *HomepageHandler {
	return &HomepageHandler{home: home}
}

// GetHomePage returns the rendered homepage sections.
func (h *HomepageHandler) GetHomePage(c *fiber.Ctx) error {
	sections, err := h.home.GetHomePage()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"sections": sections}})
}

// ListSections returns every section for the admin panel.
func (h *HomepageHandler) ListSections(c *fiber.Ctx) error {
	sections, err := h.home.ListSections()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": sections})
}

// GetSection returns one section with its curated items.
func (h *HomepageHandler) GetSection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	section, err := h.home.GetSection(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": section})
}

type sectionRequest struct {
	Key          string  `json:"key" validate:"required"`
	Title        string  `json:"title" validate:"required"`
	Description  *string `json:"description"`
	MainImage    *string `json:"main_image"`
	CategoryName *string `json:"category_name"`
	ProductCount *int    `json:"product_count" validate:"omitempty,gte=0"`
	SortOrder    int     `json:"sort_order" validate:"gte=0"`
	IsActive     *bool   `json:"is_active"`
}

const defaultSectionProductCount = 10

// sectionProductCount applies the storefront default when the request omits the
// field. An explicit zero stays zero.
func sectionProductCount(requested *int) int {
	if requested == nil {
		return defaultSectionProductCount
	}
	return *requested
}

// CreateSection persists a new homepage section.
func (h *HomepageHandler) CreateSection(c *fiber.Ctx) error {
	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	section := models.HomeSection{
		Key:          req.Key,
		Title:        req.Title,
		Description:  req.Description,
		MainImage:    req.MainImage,
		CategoryName: req.CategoryName,
		ProductCount: sectionProductCount(req.ProductCount),
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := h.home.CreateSection(&section); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": section})
}

// UpdateSection updates a homepage section.
func (h *HomepageHandler) UpdateSection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	section, err := h.home.GetSection(id)
	if err != nil {
		return err
	}

	var req sectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	section.Key = req.Key
	section.Title = req.Title
	section.Description = req.Description
	section.MainImage = req.MainImage
	section.CategoryName = req.CategoryName
	if req.ProductCount != nil {
		section.ProductCount = *req.ProductCount
	}
	section.SortOrder = req.SortOrder
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := h.home.UpdateSection(section); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": section})
}

// DeleteSection removes a homepage section.
func (h *HomepageHandler) DeleteSection(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.home.DeleteSection(id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type replaceItemsRequest struct {
	ProductIDs []string `json:"product_ids" validate:"required,dive,uuid"`
}

// ReplaceSectionItems swaps a section's curated product list; request order becomes
// the curated order.
func (h *HomepageHandler) ReplaceSectionItems(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req replaceItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	productIDs := make([]uuid.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		productID, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid product_ids value")
		}
		productIDs = append(productIDs, productID)
	}

	if err := h.home.ReplaceSectionItems(id, productIDs); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true})
}
