package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// HomepageService assembles the curated storefront sections.
type HomepageService struct {
	db      *gorm.DB
	catalog *CatalogService
}

// NewHomepageService constructs HomepageService.
func NewHomepageService(db *gorm.DB, catalog *CatalogService) *HomepageService {
	return &HomepageService{db: db, catalog: catalog}
}

// HomeSectionResponse is one rendered carousel section.
type HomeSectionResponse struct {
	ID           uuid.UUID     `json:"id"`
	Key          string        `json:"key"`
	Title        string        `json:"title"`
	Description  *string       `json:"description"`
	MainImage    *string       `json:"main_image"`
	CategoryName *string       `json:"category_name"`
	ProductCount int           `json:"product_count"`
	SortOrder    int           `json:"sort_order"`
	IsActive     bool          `json:"is_active"`
	Items        []ProductCard `json:"items"`
}

// GetHomePage returns active sections in sort order, each with its curated products
// in curated order. Out-of-stock products stay visible; the card's availability
// field lets the storefront badge them instead of hiding them.
func (s *HomepageService) GetHomePage() ([]HomeSectionResponse, error) {
	var sections []models.HomeSection
	if err := s.db.Where("is_active = ?", true).
		Order("sort_order, key").Find(&sections).Error; err != nil {
		return nil, err
	}

	response := make([]HomeSectionResponse, 0, len(sections))
	for _, section := range sections {
		var items []models.HomeSectionItem
		if err := s.db.Where("section_id = ?", section.ID).
			Order("sort_order, id").Find(&items).Error; err != nil {
			return nil, err
		}

		productIDs := make([]uuid.UUID, 0, len(items))
		for _, item := range items {
			productIDs = append(productIDs, item.ProductID)
		}

		cards, err := s.catalog.GetProductCards(productIDs)
		if err != nil {
			return nil, err
		}

		response = append(response, HomeSectionResponse{
			ID:           section.ID,
			Key:          section.Key,
			Title:        section.Title,
			Description:  section.Description,
			MainImage:    section.MainImage,
			CategoryName: section.CategoryName,
			ProductCount: section.ProductCount,
			SortOrder:    section.SortOrder,
			IsActive:     section.IsActive,
			Items:        itemsToRender(section.ProductCount, cards),
		})
	}

	return response, nil
}

// itemsToRender caps the curated list at the section's product count while keeping
// the curated order.
func itemsToRender(productCount int, cards []ProductCard) []ProductCard {
	if productCount >= len(cards) {
		return cards
	}
	return cards[:productCount]
}

// CreateSection persists a new section.
func (s *HomepageService) CreateSection(section *models.HomeSection) error {
	return s.db.Create(section).Error
}

// UpdateSection saves changes to a section.
func (s *HomepageService) UpdateSection(section *models.HomeSection) error {
	return s.db.Save(section).Error
}

// DeleteSection removes a section with its curated items.
func (s *HomepageService) DeleteSection(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&models.HomeSectionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.HomeSection{}, "id = ?", id).Error
	})
}

// GetSection loads a section with its curated items ordered by sort_order.
func (s *HomepageService) GetSection(id uuid.UUID) (*models.HomeSection, error) {
	var section models.HomeSection
	if err := s.db.First(&section, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("section not found")
		}
		return nil, err
	}
	if err := s.db.Where("section_id = ?", id).Order("sort_order, id").
		Find(&section.Items).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// ReplaceSectionItems swaps a section's curated product list. Order of ids becomes
// the curated order.
func (s *HomepageService) ReplaceSectionItems(sectionID uuid.UUID, productIDs []uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.HomeSection{}).Where("id = ?", sectionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("section not found")
		}

		if err := tx.Where("section_id = ?", sectionID).Delete(&models.HomeSectionItem{}).Error; err != nil {
			return err
		}

		for i, productID := range productIDs {
			item := models.HomeSectionItem{
				SectionID: sectionID,
				ProductID: productID,
				SortOrder: i,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ListSections returns every section ordered for the admin panel.
func (s *HomepageService) ListSections() ([]models.HomeSection, error) {
	var sections []models.HomeSection
	if err := s.db.Order("sort_order, key").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}
