package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// AttributeService is the schema registry for category-scoped attribute definitions.
type AttributeService struct {
	db *gorm.DB
}

// NewAttributeService constructs AttributeService.
func NewAttributeService(db *gorm.DB) *AttributeService {
	return &AttributeService{db: db}
}

// DefineAttributeInput carries the fields of a definition.
type DefineAttributeInput struct {
	ScopeType    string
	ScopeID      uuid.UUID
	Key          string
	Label        string
	DataType     string
	Unit         *string
	IsFilterable bool
	IsRequired   bool
	SortOrder    int
}

// Define gets or creates a definition identified by (scope_type, scope_id, key).
// A second call with the same identity returns the existing definition unchanged;
// redefining the key with a different data type is a schema conflict.
func (s *AttributeService) Define(input DefineAttributeInput) (*models.Attribute, error) {
	var attr models.Attribute

	err := s.db.Transaction(func(tx *gorm.DB) error {
		attr = models.Attribute{
			ScopeType:    input.ScopeType,
			ScopeID:      input.ScopeID,
			Key:          input.Key,
			Label:        input.Label,
			DataType:     input.DataType,
			Unit:         input.Unit,
			IsFilterable: input.IsFilterable,
			IsRequired:   input.IsRequired,
			SortOrder:    input.SortOrder,
		}

		// The unique (scope_type, scope_id, key) index arbitrates concurrent
		// first-time definitions: the loser's insert becomes a no-op and the
		// existing definition is loaded instead.
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "scope_type"}, {Name: "scope_id"}, {Name: "key"},
			},
			DoNothing: true,
		}).Create(&attr)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		if err := tx.Where("scope_type = ? AND scope_id = ? AND key = ?",
			input.ScopeType, input.ScopeID, input.Key).First(&attr).Error; err != nil {
			return err
		}
		if attr.DataType != input.DataType {
			return apperr.SchemaConflict(
				"attribute %q already defined with data type %s", input.Key, attr.DataType)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &attr, nil
}

// Update modifies display fields of an existing definition. Changing the data type
// of a definition is rejected as a schema conflict.
func (s *AttributeService) Update(id uuid.UUID, label string, unit *string, isFilterable, isRequired bool, sortOrder int, dataType string) (*models.Attribute, error) {
	var attr models.Attribute
	if err := s.db.First(&attr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attribute not found")
		}
		return nil, err
	}

	if dataType != "" && dataType != attr.DataType {
		return nil, apperr.SchemaConflict(
			"attribute %q already defined with data type %s", attr.Key, attr.DataType)
	}

	if label != "" {
		attr.Label = label
	}
	attr.Unit = unit
	attr.IsFilterable = isFilterable
	attr.IsRequired = isRequired
	attr.SortOrder = sortOrder

	if err := s.db.Save(&attr).Error; err != nil {
		return nil, err
	}
	return &attr, nil
}

// Get loads a definition by id.
func (s *AttributeService) Get(id uuid.UUID) (*models.Attribute, error) {
	var attr models.Attribute
	if err := s.db.First(&attr, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attribute not found")
		}
		return nil, err
	}
	return &attr, nil
}

// LookupByKey resolves a definition by its machine key.
func (s *AttributeService) LookupByKey(key string) (*models.Attribute, error) {
	var attr models.Attribute
	if err := s.db.Where("key = ?", key).Order("sort_order, key").First(&attr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("attribute %q not found", key)
		}
		return nil, err
	}
	return &attr, nil
}

// ListByScope returns definitions of a scope in display order.
func (s *AttributeService) ListByScope(scopeType string, scopeID uuid.UUID) ([]models.Attribute, error) {
	var attrs []models.Attribute
	if err := s.db.Where("scope_type = ? AND scope_id = ?", scopeType, scopeID).
		Order("sort_order, key").
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, value")
		}).
		Find(&attrs).Error; err != nil {
		return nil, err
	}
	return attrs, nil
}

// ListOptions returns the enumerated options of a select-typed attribute in order.
func (s *AttributeService) ListOptions(attributeID uuid.UUID) ([]models.AttributeOption, error) {
	var options []models.AttributeOption
	if err := s.db.Where("attribute_id = ?", attributeID).
		Order("sort_order, value").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

// AddOption attaches an enumerated option to a select-typed attribute.
func (s *AttributeService) AddOption(attributeID uuid.UUID, value, label string, sortOrder int) (*models.AttributeOption, error) {
	attr, err := s.Get(attributeID)
	if err != nil {
		return nil, err
	}
	if !models.IsSelectType(attr.DataType) {
		return nil, apperr.BusinessRule("attribute %q is not a select type", attr.Key)
	}

	option := models.AttributeOption{
		AttributeID: attributeID,
		Value:       value,
		Label:       label,
		SortOrder:   sortOrder,
	}
	if err := s.db.Create(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

// DeleteOption removes an option.
func (s *AttributeService) DeleteOption(optionID uuid.UUID) error {
	return s.db.Delete(&models.AttributeOption{}, "id = ?", optionID).Error
}

// Delete removes a definition together with its options and stored product values.
func (s *AttributeService) Delete(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var values []models.ProductAttributeValue
		if err := tx.Where("attribute_id = ?", id).Find(&values).Error; err != nil {
			return err
		}
		for i := range values {
			if err := tx.Model(&values[i]).Association("Options").Clear(); err != nil {
				return err
			}
		}
		if err := tx.Where("attribute_id = ?", id).Delete(&models.ProductAttributeValue{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attribute_id = ?", id).Delete(&models.AttributeOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Attribute{}, "id = ?", id).Error
	})
}
