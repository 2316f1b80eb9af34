package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/noora/internal/apperr"
)

// Attribute data types. The set is closed: every coercion and display site switches
// exhaustively over these five values.
const (
	DataTypeText         = "TEXT"
	DataTypeNumber       = "NUMBER"
	DataTypeBoolean      = "BOOLEAN"
	DataTypeSingleSelect = "SINGLE_SELECT"
	DataTypeMultiSelect  = "MULTI_SELECT"
)

// Attribute scope kinds.
const (
	ScopeCategory    = "category"
	ScopeSubcategory = "subcategory"
)

// IsSelectType reports whether the data type carries option selections.
func IsSelectType(dataType string) bool {
	return dataType == DataTypeSingleSelect || dataType == DataTypeMultiSelect
}

// IsValidDataType reports whether dataType is one of the closed set.
func IsValidDataType(dataType string) bool {
	switch dataType {
	case DataTypeText, DataTypeNumber, DataTypeBoolean, DataTypeSingleSelect, DataTypeMultiSelect:
		return true
	}
	return false
}

// Attribute is a typed attribute definition scoped to a category or subcategory.
// (scope_type, scope_id, key) uniquely identifies a definition.
type Attribute struct {
	BaseModel
	ScopeType    string            `gorm:"uniqueIndex:idx_attribute_scope_key" json:"scope_type"`
	ScopeID      uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_attribute_scope_key;index" json:"scope_id"`
	Key          string            `gorm:"index;uniqueIndex:idx_attribute_scope_key" json:"key"`
	Label        string            `json:"label"`
	DataType     string            `json:"data_type"`
	Unit         *string           `json:"unit"`
	IsFilterable bool              `json:"is_filterable"`
	IsRequired   bool              `json:"is_required"`
	SortOrder    int               `json:"sort_order"`
	Options      []AttributeOption `json:"options,omitempty"`
}

// BeforeSave validates attribute invariants.
func (a *Attribute) BeforeSave(tx *gorm.DB) error {
	if a.Key == "" {
		return apperr.Validation("attribute key is required")
	}
	if a.Label == "" {
		return apperr.Validation("attribute label is required")
	}
	if !IsValidDataType(a.DataType) {
		return apperr.Validation("unknown attribute data type %q", a.DataType)
	}
	if a.ScopeType != ScopeCategory && a.ScopeType != ScopeSubcategory {
		return apperr.Validation("unknown attribute scope type %q", a.ScopeType)
	}
	if a.SortOrder < 0 {
		return apperr.Validation("sort order cannot be negative")
	}
	return nil
}

// AttributeOption is one enumerated choice of a select-typed attribute.
type AttributeOption struct {
	BaseModel
	AttributeID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_attribute_option_value" json:"attribute_id"`
	Value       string    `gorm:"uniqueIndex:idx_attribute_option_value" json:"value"`
	Label       string    `json:"label"`
	SortOrder   int       `json:"sort_order"`
}

// BeforeSave validates option invariants.
func (o *AttributeOption) BeforeSave(tx *gorm.DB) error {
	if o.Value == "" {
		return apperr.Validation("option value is required")
	}
	if o.Label == "" {
		return apperr.Validation("option label is required")
	}
	if o.SortOrder < 0 {
		return apperr.Validation("sort order cannot be negative")
	}
	return nil
}

// ProductAttributeValue stores exactly one typed value per (product, attribute) pair.
// At most one channel is populated, matching the attribute's data type; select types
// keep their selections in the product_attribute_options join table.
type ProductAttributeValue struct {
	BaseModel
	ProductID   uuid.UUID         `gorm:"type:uuid;index;uniqueIndex:idx_product_attribute" json:"product_id"`
	AttributeID uuid.UUID         `gorm:"type:uuid;uniqueIndex:idx_product_attribute" json:"attribute_id"`
	Attribute   *Attribute        `json:"attribute,omitempty"`
	ValueText   *string           `json:"value_text"`
	ValueNumber *decimal.Decimal  `gorm:"type:decimal(10,2)" json:"value_number"`
	ValueBool   *bool             `json:"value_bool"`
	Options     []AttributeOption `gorm:"many2many:product_attribute_options;" json:"options,omitempty"`
}

// HasValue reports whether any channel is populated. A value with every channel
// empty is invalid and never persisted.
func (v *ProductAttributeValue) HasValue() bool {
	if v.ValueText != nil && *v.ValueText != "" {
		return true
	}
	return v.ValueNumber != nil || v.ValueBool != nil || len(v.Options) > 0
}
