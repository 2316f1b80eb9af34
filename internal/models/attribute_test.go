package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidDataType(t *testing.T) {
	for _, dt := range []string{DataTypeText, DataTypeNumber, DataTypeBoolean, DataTypeSingleSelect, DataTypeMultiSelect} {
		assert.True(t, IsValidDataType(dt), dt)
	}
	assert.False(t, IsValidDataType("GEOMETRY"))
	assert.False(t, IsValidDataType(""))
	assert.False(t, IsValidDataType("text"))
}

func TestIsSelectType(t *testing.T) {
	assert.True(t, IsSelectType(DataTypeSingleSelect))
	assert.True(t, IsSelectType(DataTypeMultiSelect))
	assert.False(t, IsSelectType(DataTypeText))
	assert.False(t, IsSelectType(DataTypeNumber))
	assert.False(t, IsSelectType(DataTypeBoolean))
}

func TestProductAttributeValueHasValue(t *testing.T) {
	text := "aluminium"
	empty := ""
	num := decimal.New(5, 0)
	no := false

	assert.False(t, (&ProductAttributeValue{}).HasValue())
	assert.False(t, (&ProductAttributeValue{ValueText: &empty}).HasValue())
	assert.True(t, (&ProductAttributeValue{ValueText: &text}).HasValue())
	assert.True(t, (&ProductAttributeValue{ValueNumber: &num}).HasValue())
	assert.True(t, (&ProductAttributeValue{ValueBool: &no}).HasValue(), "false is still a stored value")
	assert.True(t, (&ProductAttributeValue{Options: []AttributeOption{{Value: "8gb"}}}).HasValue())
}
