package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
)

// HomeSection is a curated carousel shown on the storefront homepage.
type HomeSection struct {
	BaseModel
	Key          string            `gorm:"uniqueIndex" json:"key"`
	Title        string            `json:"title"`
	Description  *string           `json:"description"`
	MainImage    *string           `json:"main_image"`
	CategoryName *string           `json:"category_name"`
	ProductCount int               `json:"product_count"`
	SortOrder    int               `json:"sort_order"`
	IsActive     bool              `gorm:"default:true" json:"is_active"`
	Items        []HomeSectionItem `json:"items,omitempty"`
}

// BeforeSave validates section invariants.
func (s *HomeSection) BeforeSave(tx *gorm.DB) error {
	if s.Key == "" {
		return apperr.Validation("section key is required")
	}
	if s.Title == "" {
		return apperr.Validation("section title is required")
	}
	if s.ProductCount < 0 {
		return apperr.Validation("product count cannot be negative")
	}
	if s.SortOrder < 0 {
		return apperr.Validation("sort order cannot be negative")
	}
	return nil
}

// HomeSectionItem is one curated product reference inside a section.
type HomeSectionItem struct {
	BaseModel
	SectionID uuid.UUID `gorm:"type:uuid;index" json:"section_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	SortOrder int       `json:"sort_order"`
}
