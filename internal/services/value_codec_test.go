package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/noora/internal/apperr"
	"github.com/example/noora/internal/models"
)

func textAttr(key string) models.Attribute {
	return models.Attribute{Key: key, Label: key, DataType: models.DataTypeText}
}

func selectOptions() []models.AttributeOption {
	return []models.AttributeOption{
		{Value: "8gb", Label: "8 GB", SortOrder: 0},
		{Value: "16gb", Label: "16 GB", SortOrder: 1},
		{Value: "32gb", Label: "32 GB", SortOrder: 2},
	}
}

func TestCoerceValue_Text(t *testing.T) {
	coerced, err := coerceValue(textAttr("material"), nil, RawValue{Value: "aluminium"})
	require.NoError(t, err)
	require.NotNil(t, coerced.Text)
	assert.Equal(t, "aluminium", *coerced.Text)
	assert.Nil(t, coerced.Number)
	assert.Nil(t, coerced.Bool)
	assert.Empty(t, coerced.Options)
}

func TestCoerceValue_Number(t *testing.T) {
	attr := models.Attribute{Key: "weight", Label: "Weight", DataType: models.DataTypeNumber}

	coerced, err := coerceValue(attr, nil, RawValue{Value: " 2.75 "})
	require.NoError(t, err)
	require.NotNil(t, coerced.Number)
	assert.True(t, coerced.Number.Equal(decimal.RequireFromString("2.75")))
}

func TestCoerceValue_NumberRejectsGarbage(t *testing.T) {
	attr := models.Attribute{Key: "weight", Label: "Weight", DataType: models.DataTypeNumber}

	_, err := coerceValue(attr, nil, RawValue{Value: "heavy"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidValue, apperr.KindOf(err))
}

func TestCoerceValue_BooleanTokens(t *testing.T) {
	attr := models.Attribute{Key: "wireless", Label: "Wireless", DataType: models.DataTypeBoolean}

	cases := []struct {
		token string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{" Yes ", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"whatever", false},
	}

	for _, tc := range cases {
		coerced, err := coerceValue(attr, nil, RawValue{Value: tc.token})
		require.NoError(t, err, "token %q", tc.token)
		require.NotNil(t, coerced.Bool, "token %q", tc.token)
		assert.Equal(t, tc.want, *coerced.Bool, "token %q", tc.token)
	}
}

func TestCoerceValue_SingleSelect(t *testing.T) {
	attr := models.Attribute{Key: "ram", Label: "RAM", DataType: models.DataTypeSingleSelect}

	coerced, err := coerceValue(attr, selectOptions(), RawValue{Value: "16gb"})
	require.NoError(t, err)
	require.Len(t, coerced.Options, 1)
	assert.Equal(t, "16gb", coerced.Options[0].Value)

	_, err = coerceValue(attr, selectOptions(), RawValue{Value: "64gb"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidValue, apperr.KindOf(err))
}

func TestCoerceValue_MultiSelect(t *testing.T) {
	attr := models.Attribute{Key: "ports", Label: "Ports", DataType: models.DataTypeMultiSelect}

	coerced, err := coerceValue(attr, selectOptions(), RawValue{Values: []string{"8gb", "32gb"}})
	require.NoError(t, err)
	require.Len(t, coerced.Options, 2)

	// A comma-separated Value works when Values is absent.
	coerced, err = coerceValue(attr, selectOptions(), RawValue{Value: "8gb, 16gb"})
	require.NoError(t, err)
	require.Len(t, coerced.Options, 2)
	assert.Equal(t, "8gb", coerced.Options[0].Value)
	assert.Equal(t, "16gb", coerced.Options[1].Value)

	_, err = coerceValue(attr, selectOptions(), RawValue{Values: []string{"8gb", "nope"}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidValue, apperr.KindOf(err))
}

func TestCoerceValue_EmptyInputRejected(t *testing.T) {
	attrs := []models.Attribute{
		{Key: "a", Label: "a", DataType: models.DataTypeText},
		{Key: "b", Label: "b", DataType: models.DataTypeNumber},
		{Key: "c", Label: "c", DataType: models.DataTypeBoolean},
		{Key: "d", Label: "d", DataType: models.DataTypeSingleSelect},
		{Key: "e", Label: "e", DataType: models.DataTypeMultiSelect},
	}

	for _, attr := range attrs {
		_, err := coerceValue(attr, selectOptions(), RawValue{})
		require.Error(t, err, "data type %s", attr.DataType)
		assert.Equal(t, apperr.KindInvalidValue, apperr.KindOf(err), "data type %s", attr.DataType)
	}
}

func TestCoerceValue_UnknownDataType(t *testing.T) {
	attr := models.Attribute{Key: "x", Label: "x", DataType: "GEOMETRY"}

	_, err := coerceValue(attr, nil, RawValue{Value: "anything"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidValue, apperr.KindOf(err))
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitTokens("a, b ,c"))
	assert.Equal(t, []string{"solo"}, splitTokens("solo"))
	assert.Empty(t, splitTokens(" , ,"))
}

func TestDisplayValue_MultiSelectOrderedBySortOrder(t *testing.T) {
	attr := models.Attribute{Key: "ram", Label: "RAM", DataType: models.DataTypeMultiSelect}
	value := models.ProductAttributeValue{
		Options: []models.AttributeOption{
			{Value: "32gb", Label: "32 GB", SortOrder: 2},
			{Value: "8gb", Label: "8 GB", SortOrder: 0},
			{Value: "16gb", Label: "16 GB", SortOrder: 1},
		},
	}

	assert.Equal(t, "8 GB, 16 GB, 32 GB", displayValue(attr, value))
	assert.Equal(t, "8gb, 16gb, 32gb", rawValueString(attr, value))
}

func TestDisplayValue_Channels(t *testing.T) {
	text := "aluminium"
	num := decimal.RequireFromString("2.75")
	yes := true
	no := false

	assert.Equal(t, "aluminium", displayValue(textAttr("m"), models.ProductAttributeValue{ValueText: &text}))
	assert.Equal(t, "2.75", displayValue(
		models.Attribute{DataType: models.DataTypeNumber},
		models.ProductAttributeValue{ValueNumber: &num}))
	assert.Equal(t, "true", displayValue(
		models.Attribute{DataType: models.DataTypeBoolean},
		models.ProductAttributeValue{ValueBool: &yes}))
	assert.Equal(t, "false", displayValue(
		models.Attribute{DataType: models.DataTypeBoolean},
		models.ProductAttributeValue{ValueBool: &no}))
	assert.Equal(t, "16 GB", displayValue(
		models.Attribute{DataType: models.DataTypeSingleSelect},
		models.ProductAttributeValue{Options: []models.AttributeOption{{Value: "16gb", Label: "16 GB"}}}))

	// Missing channels render empty.
	assert.Equal(t, "", displayValue(textAttr("m"), models.ProductAttributeValue{}))
	assert.Equal(t, "", displayValue(
		models.Attribute{DataType: models.DataTypeBoolean},
		models.ProductAttributeValue{}))
}
