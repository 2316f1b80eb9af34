package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// CatalogHandler manages categories and subcategories.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns all categories ordered by name.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Order("name").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// ListCategoriesWithSubcategories returns categories with their subcategories.
func (h *CatalogHandler) ListCategoriesWithSubcategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Order("name").
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Order("name")
		}).
		Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// GetCategory returns a single category by ID.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.Preload("Subcategories").First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// CreateCategory persists a new category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateCategory updates an existing category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "category not found")
		}
		return err
	}

	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name != "" {
		category.Name = payload.Name
	}
	if payload.Slug != "" {
		category.Slug = payload.Slug
	}
	if err := h.db.Save(&category).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory removes a category. Deletion is protected: categories that still
// have products are never cascaded away.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var productCount int64
	if err := h.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount > 0 {
		return apperr.Conflict("category still has %d products", productCount)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListSubcategories returns the subcategories of a category.
func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var subcategories []models.Subcategory
	if err := h.db.Where("category_id = ?", categoryID).Order("name").Find(&subcategories).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": subcategories})
}

// CreateSubcategory persists a subcategory under a category.
func (h *CatalogHandler) CreateSubcategory(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var payload models.Subcategory
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	payload.CategoryID = categoryID

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateSubcategory updates a subcategory.
func (h *CatalogHandler) UpdateSubcategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var subcategory models.Subcategory
	if err := h.db.First(&subcategory, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "subcategory not found")
		}
		return err
	}

	var payload models.Subcategory
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Name != "" {
		subcategory.Name = payload.Name
	}
	if payload.Slug != "" {
		subcategory.Slug = payload.Slug
	}
	if err := h.db.Save(&subcategory).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": subcategory})
}

// DeleteSubcategory removes a subcategory unless products still reference it.
func (h *CatalogHandler) DeleteSubcategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var productCount int64
	if err := h.db.Table("product_subcategories").Where("subcategory_id = ?", id).Count(&productCount).Error; err != nil {
		return err
	}
	if productCount > 0 {
		return apperr.Conflict("subcategory still has %d products", productCount)
	}

	if err := h.db.Delete(&models.Subcategory{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
