package services

import (
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

// SpecificationService stores and reads typed attribute values of products.
type SpecificationService struct {
	db *gorm.DB
}

// NewSpecificationService constructs SpecificationService.
func NewSpecificationService(db *gorm.DB) *SpecificationService {
	return &SpecificationService{db: db}
}

// SpecificationDetail is one row of the displayable specification sheet.
type SpecificationDetail struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Type    string  `json:"type"`
	Value   string  `json:"value"`
	Display string  `json:"display"`
	Unit    *string `json:"unit"`
}

// SetValue coerces raw input to the attribute's data type and upserts the value for
// the (product, attribute) pair. Re-setting replaces the stored value wholesale.
func (s *SpecificationService) SetValue(productID, attributeID uuid.UUID, raw RawValue) (*models.ProductAttributeValue, error) {
	var stored models.ProductAttributeValue

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var attr models.Attribute
		if err := tx.First(&attr, "id = ?", attributeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("attribute not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("product not found")
		}

		var options []models.AttributeOption
		if models.IsSelectType(attr.DataType) {
			if err := tx.Where("attribute_id = ?", attr.ID).
				Order("sort_order, value").Find(&options).Error; err != nil {
				return err
			}
		}

		coerced, err := coerceValue(attr, options, raw)
		if err != nil {
			return err
		}

		value := models.ProductAttributeValue{
			ProductID:   productID,
			AttributeID: attributeID,
			ValueText:   coerced.Text,
			ValueNumber: coerced.Number,
			ValueBool:   coerced.Bool,
		}

		// The unique (product_id, attribute_id) index arbitrates concurrent
		// first-time writes: the loser's insert turns into an update.
		if err := tx.Omit("Options").Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "attribute_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value_text":   coerced.Text,
				"value_number": coerced.Number,
				"value_bool":   coerced.Bool,
			}),
		}).Create(&value).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ? AND attribute_id = ?", productID, attributeID).
			First(&stored).Error; err != nil {
			return err
		}

		if err := tx.Model(&stored).Association("Options").Replace(coerced.Options); err != nil {
			return err
		}
		stored.Options = coerced.Options
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// FieldError reports a single rejected attribute value.
type FieldError struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// SetValues applies a batch of raw values keyed by attribute key. Application is
// partial: a value that fails coercion is reported and does not block the others.
func (s *SpecificationService) SetValues(productID uuid.UUID, scopeType string, scopeID uuid.UUID, values map[string]RawValue) ([]FieldError, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var fieldErrors []FieldError
	for _, key := range keys {
		var attr models.Attribute
		err := s.db.Where("scope_type = ? AND scope_id = ? AND key = ?", scopeType, scopeID, key).
			First(&attr).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fieldErrors = append(fieldErrors, FieldError{Key: key, Error: "attribute not defined for this scope"})
				continue
			}
			return nil, err
		}

		if _, err := s.SetValue(productID, attr.ID, values[key]); err != nil {
			if apperr.KindOf(err) == apperr.KindInvalidValue {
				fieldErrors = append(fieldErrors, FieldError{Key: key, Error: err.Error()})
				continue
			}
			return nil, err
		}
	}
	return fieldErrors, nil
}

// DeleteValue removes the stored value for a (product, attribute) pair.
func (s *SpecificationService) DeleteValue(productID, attributeID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var value models.ProductAttributeValue
		err := tx.Where("product_id = ? AND attribute_id = ?", productID, attributeID).First(&value).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Model(&value).Association("Options").Clear(); err != nil {
			return err
		}
		return tx.Delete(&value).Error
	})
}

// GetSpecifications returns the simple key->display map and the detailed sheet for a
// product. The map omits attributes whose display string is empty; the detailed list
// carries every stored value ordered by attribute sort order then key.
func (s *SpecificationService) GetSpecifications(productID uuid.UUID) (map[string]string, []SpecificationDetail, error) {
	var values []models.ProductAttributeValue
	if err := s.db.Where("product_id = ?", productID).
		Preload("Attribute").
		Preload("Options").
		Find(&values).Error; err != nil {
		return nil, nil, err
	}

	sort.SliceStable(values, func(i, j int) bool {
		a, b := values[i].Attribute, values[j].Attribute
		if a == nil || b == nil {
			return a != nil
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Key < b.Key
	})

	simple := make(map[string]string)
	detailed := make([]SpecificationDetail, 0, len(values))

	for _, value := range values {
		if value.Attribute == nil {
			continue
		}
		attr := *value.Attribute
		display := displayValue(attr, value)

		if display != "" {
			simple[attr.Key] = display
		}
		detailed = append(detailed, SpecificationDetail{
			Key:     attr.Key,
			Label:   attr.Label,
			Type:    attr.DataType,
			Value:   rawValueString(attr, value),
			Display: display,
			Unit:    attr.Unit,
		})
	}

	return simple, detailed, nil
}
