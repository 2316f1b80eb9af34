package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
)

// Availability states a product can be in.
const (
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
	AvailabilityPreOrder   = "pre_order"
)

// Supported currencies.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
)

type Product struct {
	BaseModel
	Name                string                  `gorm:"index" json:"name"`
	Brand               *string                 `json:"brand"`
	Price               decimal.Decimal         `gorm:"type:decimal(10,2)" json:"price"`
	PriceNew            *decimal.Decimal        `gorm:"type:decimal(10,2)" json:"price_new"`
	PriceOld            *decimal.Decimal        `gorm:"type:decimal(10,2)" json:"price_old"`
	Availability        string                  `gorm:"index;default:in_stock" json:"availability"`
	Currency            string                  `gorm:"default:USD" json:"currency"`
	CategoryID          uuid.UUID               `gorm:"type:uuid;index" json:"category_id"`
	Category            *Category               `json:"category,omitempty"`
	Subcategories       []Subcategory           `gorm:"many2many:product_subcategories;" json:"subcategories,omitempty"`
	VariantGroupID      *uuid.UUID              `gorm:"type:uuid;index" json:"variant_group_id"`
	VariantGroup        *VariantGroup           `json:"variant_group,omitempty"`
	VariantColorName    *string                 `json:"variant_color_name"`
	VariantColorPalette *string                 `json:"variant_color_palette"`
	VariantImage        *string                 `json:"variant_image"`
	AttributeValues     []ProductAttributeValue `json:"attribute_values,omitempty"`
}

// BeforeSave validates product invariants.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Name == "" {
		return apperr.Validation("product name is required")
	}
	if p.Price.IsNegative() {
		return apperr.Validation("price cannot be negative")
	}
	if p.PriceNew != nil && p.PriceNew.IsNegative() {
		return apperr.Validation("price_new cannot be negative")
	}
	if p.PriceOld != nil && p.PriceOld.IsNegative() {
		return apperr.Validation("price_old cannot be negative")
	}
	return nil
}
