package services

import (
	"bytes"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// VariantService manages variant groups and their member ordering.
type VariantService struct {
	db *gorm.DB
}

// NewVariantService constructs VariantService.
func NewVariantService(db *gorm.DB) *VariantService {
	return &VariantService{db: db}
}

// CreateGroup persists a new variant group.
func (s *VariantService) CreateGroup(name, slug *string) (*models.VariantGroup, error) {
	group := models.VariantGroup{Name: name, Slug: slug}
	if err := s.db.Create(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// GetGroup loads a group by id.
func (s *VariantService) GetGroup(id uuid.UUID) (*models.VariantGroup, error) {
	var group models.VariantGroup
	if err := s.db.First(&group, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("variant group not found")
		}
		return nil, err
	}
	return &group, nil
}

// ListGroups returns all variant groups.
func (s *VariantService) ListGroups() ([]models.VariantGroup, error) {
	var groups []models.VariantGroup
	if err := s.db.Order("name, id").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// SetDefault designates a member product as the group default. The update is
// transactional so readers never observe a default outside the group.
func (s *VariantService) SetDefault(groupID, productID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var group models.VariantGroup
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&group, "id = ?", groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("variant group not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Product{}).
			Where("id = ? AND variant_group_id = ?", productID, groupID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.BusinessRule("default product does not belong to this group")
		}

		return tx.Model(&group).Update("default_product_id", productID).Error
	})
}

// DeleteGroup removes a group and detaches its members.
func (s *VariantService) DeleteGroup(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).
			Where("variant_group_id = ?", id).
			Update("variant_group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.VariantGroup{}, "id = ?", id).Error
	})
}

// ListGroupMembers returns the group's products with the default product first and
// the rest ascending by id. The ordering is stable and consumed as-is by the
// product detail view.
func (s *VariantService) ListGroupMembers(groupID uuid.UUID, excludeProductID *uuid.UUID) ([]models.Product, error) {
	group, err := s.GetGroup(groupID)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("variant_group_id = ?", groupID)
	if excludeProductID != nil {
		query = query.Where("id <> ?", *excludeProductID)
	}

	var members []models.Product
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}

	return orderMembers(members, group.DefaultProductID), nil
}

// orderMembers sorts group members default-first, then ascending by id, regardless
// of insertion order.
func orderMembers(members []models.Product, defaultProductID *uuid.UUID) []models.Product {
	ordered := make([]models.Product, len(members))
	copy(ordered, members)
	sort.SliceStable(ordered, func(i, j int) bool {
		if defaultProductID != nil {
			iDefault := ordered[i].ID == *defaultProductID
			jDefault := ordered[j].ID == *defaultProductID
			if iDefault != jDefault {
				return iDefault
			}
		}
		return bytes.Compare(ordered[i].ID[:], ordered[j].ID[:]) < 0
	})
	return ordered
}
