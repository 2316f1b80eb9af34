package services

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/noora/internal/models"
)

// specPredicate is one resolved attribute filter, normalized per data type.
type specPredicate struct {
	attribute models.Attribute
	text      string
	number    decimal.Decimal
	boolean   bool
	option    string
}

// resolveSpecPredicate translates a raw filter value by the attribute's data type.
// ok=false means the filter adds no constraint: unknown and unparseable input
// degrades to "ignored" so stale query parameters never break a listing.
func resolveSpecPredicate(attr models.Attribute, raw string) (specPredicate, bool) {
	pred := specPredicate{attribute: attr}

	switch attr.DataType {
	case models.DataTypeText:
		pred.text = raw
		return pred, true

	case models.DataTypeNumber:
		num, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return pred, false
		}
		pred.number = num
		return pred, true

	case models.DataTypeBoolean:
		pred.boolean = parseBoolToken(raw)
		return pred, true

	case models.DataTypeSingleSelect, models.DataTypeMultiSelect:
		pred.option = raw
		return pred, true
	}

	return pred, false
}

// apply adds the predicate as an EXISTS subquery so multiple spec filters compose
// with AND semantics on the product set.
func (p specPredicate) apply(query *gorm.DB) *gorm.DB {
	switch p.attribute.DataType {
	case models.DataTypeText:
		return query.Where(
			`EXISTS (SELECT 1 FROM product_attribute_values pav
			 WHERE pav.product_id = products.id AND pav.attribute_id = ? AND pav.value_text ILIKE ?)`,
			p.attribute.ID, "%"+p.text+"%")

	case models.DataTypeNumber:
		return query.Where(
			`EXISTS (SELECT 1 FROM product_attribute_values pav
			 WHERE pav.product_id = products.id AND pav.attribute_id = ? AND pav.value_number = ?)`,
			p.attribute.ID, p.number)

	case models.DataTypeBoolean:
		return query.Where(
			`EXISTS (SELECT 1 FROM product_attribute_values pav
			 WHERE pav.product_id = products.id AND pav.attribute_id = ? AND pav.value_bool = ?)`,
			p.attribute.ID, p.boolean)

	case models.DataTypeSingleSelect, models.DataTypeMultiSelect:
		return query.Where(
			`EXISTS (SELECT 1 FROM product_attribute_values pav
			 JOIN product_attribute_options pao ON pao.product_attribute_value_id = pav.id
			 JOIN attribute_options ao ON ao.id = pao.attribute_option_id
			 WHERE pav.product_id = products.id AND pav.attribute_id = ? AND ao.value = ?)`,
			p.attribute.ID, p.option)
	}

	return query
}
