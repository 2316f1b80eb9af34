package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
)

type Category struct {
	BaseModel
	Name          string        `gorm:"index" json:"name"`
	Slug          string        `gorm:"uniqueIndex" json:"slug"`
	Subcategories []Subcategory `json:"subcategories,omitempty"`
	Products      []Product     `json:"products,omitempty"`
}

// BeforeSave validates category invariants.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Name == "" {
		return apperr.Validation("category name is required")
	}
	if c.Slug == "" {
		return apperr.Validation("category slug is required")
	}
	return nil
}

// Subcategory belongs to exactly one category; its slug is unique within that category.
type Subcategory struct {
	BaseModel
	CategoryID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_subcategory_category_slug" json:"category_id"`
	Category   *Category `json:"category,omitempty"`
	Name       string    `gorm:"index" json:"name"`
	Slug       string    `gorm:"uniqueIndex:idx_subcategory_category_slug" json:"slug"`
}

// BeforeSave validates subcategory invariants.
func (s *Subcategory) BeforeSave(tx *gorm.DB) error {
	if s.Name == "" {
		return apperr.Validation("subcategory name is required")
	}
	if s.Slug == "" {
		return apperr.Validation("subcategory slug is required")
	}
	return nil
}

// VariantGroup clusters products that are color/material variants of one conceptual
// item. DefaultProductID, when set, must reference a member of the group; the variant
// service enforces that on writes.
type VariantGroup struct {
	BaseModel
	Name             *string    `json:"name"`
	Slug             *string    `gorm:"uniqueIndex" json:"slug"`
	DefaultProductID *uuid.UUID `gorm:"type:uuid" json:"default_product_id"`
	Products         []Product  `json:"products,omitempty"`
}
