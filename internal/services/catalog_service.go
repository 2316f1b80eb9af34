package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// CatalogService composes structured and attribute filters into product listings and
// resolves the full detail view of a product.
type CatalogService struct {
	db       *gorm.DB
	attrs    *AttributeService
	specs    *SpecificationService
	variants *VariantService
}

// NewCatalogService constructs CatalogService.
func NewCatalogService(db *gorm.DB, attrs *AttributeService, specs *SpecificationService, variants *VariantService) *CatalogService {
	return &CatalogService{db: db, attrs: attrs, specs: specs, variants: variants}
}

// ProductFilter is the listing filter. All supplied fields are conjunctive.
type ProductFilter struct {
	CategoryID    *uuid.UUID
	SubcategoryID *uuid.UUID
	Search        string
	Availability  string
	SpecFilters   map[string]string
}

// VariantPreview is a lightweight sibling reference rendered on the detail view.
// It never carries the sibling's own specification sheet.
type VariantPreview struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Availability string    `json:"availability"`
	Image        *string   `json:"image"`
	ColorName    *string   `json:"color_name"`
	ColorPalette *string   `json:"color_palette"`
}

// ProductResponse is the read model returned by listing and detail paths.
type ProductResponse struct {
	ID                     uuid.UUID             `json:"id"`
	Name                   string                `json:"name"`
	Brand                  *string               `json:"brand"`
	Price                  string                `json:"price"`
	PriceNew               *string               `json:"price_new"`
	PriceOld               *string               `json:"price_old"`
	Availability           string                `json:"availability"`
	Currency               string                `json:"currency"`
	CategoryID             uuid.UUID             `json:"category_id"`
	Category               *models.Category      `json:"category,omitempty"`
	SubcategoryIDs         []uuid.UUID           `json:"subcategory_ids"`
	Subcategories          []models.Subcategory  `json:"subcategories,omitempty"`
	VariantGroupID         *uuid.UUID            `json:"variant_group_id"`
	VariantColorName       *string               `json:"variant_color_name"`
	VariantColorPalette    *string               `json:"variant_color_palette"`
	VariantImage           *string               `json:"variant_image"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              time.Time             `json:"updated_at"`
	Variants               []VariantPreview      `json:"variants"`
	Specifications         map[string]string     `json:"specifications"`
	SpecificationsDetailed []SpecificationDetail `json:"specifications_detailed"`
}

// ProductCard is the lightweight read model consumed by curated listings. ImageURL
// is a first-class field here rather than an attachment on the product entity.
type ProductCard struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	Brand          *string     `json:"brand"`
	Price          string      `json:"price"`
	PriceNew       *string     `json:"price_new"`
	PriceOld       *string     `json:"price_old"`
	Availability   string      `json:"availability"`
	Currency       string      `json:"currency"`
	ImageURL       *string     `json:"image_url"`
	CategoryID     uuid.UUID   `json:"category_id"`
	SubcategoryIDs []uuid.UUID `json:"subcategory_ids"`
}

// ListProducts applies the filter conjunctively, resolves spec filters against the
// attribute registry, and returns one page plus the pre-pagination total.
func (s *CatalogService) ListProducts(filter ProductFilter, page, pageSize int) ([]ProductResponse, int64, error) {
	query := s.db.Model(&models.Product{})

	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SubcategoryID != nil {
		query = query.Where(
			`EXISTS (SELECT 1 FROM product_subcategories ps
			 WHERE ps.product_id = products.id AND ps.subcategory_id = ?)`,
			*filter.SubcategoryID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", like, like)
	}
	if filter.Availability != "" {
		query = query.Where("availability = ?", filter.Availability)
	}

	for key, raw := range filter.SpecFilters {
		attr, err := s.attrs.LookupByKey(key)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				continue // unknown keys never constrain the listing
			}
			return nil, 0, err
		}
		if pred, ok := resolveSpecPredicate(*attr, raw); ok {
			query = pred.apply(query)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	if err := query.Preload("Category").Preload("Subcategories").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Order("created_at desc").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		resp, err := s.toResponse(&products[i], false)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *resp)
	}

	return items, total, nil
}

// GetProduct resolves the detail view: specification sheet plus, when the product
// belongs to a variant group, its sibling previews ordered default-first.
func (s *CatalogService) GetProduct(id uuid.UUID) (*ProductResponse, error) {
	var product models.Product
	if err := s.db.Preload("Category").Preload("Subcategories").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, err
	}
	return s.toResponse(&product, true)
}

// GetProductCards fetches products by explicit id list, preserving the caller's
// order and skipping ids that no longer exist.
func (s *CatalogService) GetProductCards(ids []uuid.UUID) ([]ProductCard, error) {
	if len(ids) == 0 {
		return []ProductCard{}, nil
	}

	var products []models.Product
	if err := s.db.Preload("Subcategories").Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	cards := make([]ProductCard, 0, len(ids))
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			continue
		}
		cards = append(cards, ProductCard{
			ID:             product.ID,
			Name:           product.Name,
			Brand:          product.Brand,
			Price:          product.Price.String(),
			PriceNew:       decimalString(product.PriceNew),
			PriceOld:       decimalString(product.PriceOld),
			Availability:   product.Availability,
			Currency:       product.Currency,
			ImageURL:       product.VariantImage,
			CategoryID:     product.CategoryID,
			SubcategoryIDs: subcategoryIDs(product.Subcategories),
		})
	}
	return cards, nil
}

func (s *CatalogService) toResponse(product *models.Product, withVariants bool) (*ProductResponse, error) {
	simple, detailed, err := s.specs.GetSpecifications(product.ID)
	if err != nil {
		return nil, err
	}

	variants := []VariantPreview{}
	if withVariants && product.VariantGroupID != nil {
		members, err := s.variants.ListGroupMembers(*product.VariantGroupID, &product.ID)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			variants = append(variants, VariantPreview{
				ID:           member.ID,
				Name:         member.Name,
				Price:        member.Price.String(),
				Availability: member.Availability,
				Image:        member.VariantImage,
				ColorName:    member.VariantColorName,
				ColorPalette: member.VariantColorPalette,
			})
		}
	}

	return &ProductResponse{
		ID:                     product.ID,
		Name:                   product.Name,
		Brand:                  product.Brand,
		Price:                  product.Price.String(),
		PriceNew:               decimalString(product.PriceNew),
		PriceOld:               decimalString(product.PriceOld),
		Availability:           product.Availability,
		Currency:               product.Currency,
		CategoryID:             product.CategoryID,
		Category:               product.Category,
		SubcategoryIDs:         subcategoryIDs(product.Subcategories),
		Subcategories:          product.Subcategories,
		VariantGroupID:         product.VariantGroupID,
		VariantColorName:       product.VariantColorName,
		VariantColorPalette:    product.VariantColorPalette,
		VariantImage:           product.VariantImage,
		CreatedAt:              product.CreatedAt,
		UpdatedAt:              product.UpdatedAt,
		Variants:               variants,
		Specifications:         simple,
		SpecificationsDetailed: detailed,
	}, nil
}

func decimalString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func subcategoryIDs(subcategories []models.Subcategory) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(subcategories))
	for _, sub := range subcategories {
		ids = append(ids, sub.ID)
	}
	return ids
}
