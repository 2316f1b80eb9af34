package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/noora/internal/models"
	"github.com/example/noora/internal/services"
	"github.com/example/noora/internal/utils"
)

// ProductHandler manages product CRUD and the filtered listing endpoint.
type ProductHandler struct {
	db      *gorm.DB
	catalog *services.CatalogService
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(db *gorm.DB, catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{db: db, catalog: catalog}
}

// specFiltersFromQuery extracts spec_<key>=<value> pairs from query parameters.
func specFiltersFromQuery(params map[string]string) map[string]string {
	filters := make(map[string]string)
	for key, value := range params {
		if strings.HasPrefix(key, "spec_") && len(key) > len("spec_") {
			filters[strings.TrimPrefix(key, "spec_")] = value
		}
	}
	return filters
}

// ListProducts returns the paginated, filtered product listing.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	filter := services.ProductFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		Availability: c.Query("availability"),
		SpecFilters:  specFiltersFromQuery(c.Queries()),
	}

	if v := c.Query("category_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := c.Query("subcategory_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.SubcategoryID = &id
		}
	}

	items, total, err := h.catalog.ListProducts(filter, pg.Page, pg.Limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       items,
		"pagination": utils.NewPageInfo(pg.Page, pg.Limit, total),
	})
}

// GetProduct returns the detail view with specifications and variant previews.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	product, err := h.catalog.GetProduct(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

type productRequest struct {
	Name                string   `json:"name" validate:"required"`
	Brand               *string  `json:"brand"`
	Price               string   `json:"price" validate:"required"`
	PriceNew            *string  `json:"price_new"`
	PriceOld            *string  `json:"price_old"`
	Availability        string   `json:"availability" validate:"omitempty,oneof=in_stock out_of_stock pre_order"`
	Currency            string   `json:"currency" validate:"omitempty,oneof=USD EUR GBP"`
	CategoryID          string   `json:"category_id" validate:"required,uuid"`
	SubcategoryIDs      []string `json:"subcategory_ids" validate:"dive,uuid"`
	VariantGroupID      *string  `json:"variant_group_id" validate:"omitempty,uuid"`
	VariantColorName    *string  `json:"variant_color_name"`
	VariantColorPalette *string  `json:"variant_color_palette"`
	VariantImage        *string  `json:"variant_image"`
}

func (h *ProductHandler) buildProductFromRequest(req productRequest) (models.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return models.Product{}, fiber.NewError(fiber.StatusBadRequest, "invalid price")
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return models.Product{}, fiber.NewError(fiber.StatusBadRequest, "invalid category_id")
	}

	product := models.Product{
		Name:                req.Name,
		Brand:               req.Brand,
		Price:               price,
		Availability:        req.Availability,
		Currency:            req.Currency,
		CategoryID:          categoryID,
		VariantColorName:    req.VariantColorName,
		VariantColorPalette: req.VariantColorPalette,
		VariantImage:        req.VariantImage,
	}
	if product.Availability == "" {
		product.Availability = models.AvailabilityInStock
	}
	if product.Currency == "" {
		product.Currency = models.CurrencyUSD
	}

	if req.PriceNew != nil {
		value, err := decimal.NewFromString(*req.PriceNew)
		if err != nil {
			return models.Product{}, fiber.NewError(fiber.StatusBadRequest, "invalid price_new")
		}
		product.PriceNew = &value
	}
	if req.PriceOld != nil {
		value, err := decimal.NewFromString(*req.PriceOld)
		if err != nil {
			return models.Product{}, fiber.NewError(fiber.StatusBadRequest, "invalid price_old")
		}
		product.PriceOld = &value
	}
	if req.VariantGroupID != nil && *req.VariantGroupID != "" {
		id, err := uuid.Parse(*req.VariantGroupID)
		if err != nil {
			return models.Product{}, fiber.NewError(fiber.StatusBadRequest, "invalid variant_group_id")
		}
		product.VariantGroupID = &id
	}

	return product, nil
}

func (h *ProductHandler) loadSubcategories(tx *gorm.DB, ids []string) ([]models.Subcategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	uuids := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid subcategory_ids value")
		}
		uuids = append(uuids, id)
	}
	var subcategories []models.Subcategory
	if err := tx.Where("id IN ?", uuids).Find(&subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// CreateProduct handles product creation.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	product, err := h.buildProductFromRequest(req)
	if err != nil {
		return err
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		subcategories, err := h.loadSubcategories(tx, req.SubcategoryIDs)
		if err != nil {
			return err
		}
		product.Subcategories = subcategories
		return tx.Create(&product).Error
	}); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// UpdateProduct updates a product and replaces its subcategory links.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	product, err := h.buildProductFromRequest(req)
	if err != nil {
		return err
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		subcategories, err := h.loadSubcategories(tx, req.SubcategoryIDs)
		if err != nil {
			return err
		}
		if err := tx.Model(&existing).Omit("ID", "CreatedAt").Updates(map[string]interface{}{
			"name":                  product.Name,
			"brand":                 product.Brand,
			"price":                 product.Price,
			"price_new":             product.PriceNew,
			"price_old":             product.PriceOld,
			"availability":          product.Availability,
			"currency":              product.Currency,
			"category_id":           product.CategoryID,
			"variant_group_id":      product.VariantGroupID,
			"variant_color_name":    product.VariantColorName,
			"variant_color_palette": product.VariantColorPalette,
			"variant_image":         product.VariantImage,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Association("Subcategories").Replace(subcategories)
	}); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// DeleteProduct removes a product together with its attribute values and curated
// homepage references.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		var values []models.ProductAttributeValue
		if err := tx.Where("product_id = ?", id).Find(&values).Error; err != nil {
			return err
		}
		for i := range values {
			if err := tx.Model(&values[i]).Association("Options").Clear(); err != nil {
				return err
			}
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductAttributeValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.HomeSectionItem{}).Error; err != nil {
			return err
		}

		product := models.Product{BaseModel: models.BaseModel{ID: id}}
		if err := tx.Model(&product).Association("Subcategories").Clear(); err != nil {
			return err
		}

		// A group pointing at this product as default loses the designation.
		if err := tx.Model(&models.VariantGroup{}).
			Where("default_product_id = ?", id).
			Update("default_product_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Product{}, "id = ?", id).Error
	}); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
