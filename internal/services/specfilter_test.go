package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/noora/internal/models"
)

func TestResolveSpecPredicate_Text(t *testing.T) {
	attr := models.Attribute{Key: "material", DataType: models.DataTypeText}

	pred, ok := resolveSpecPredicate(attr, "alumin")
	require.True(t, ok)
	assert.Equal(t, "alumin", pred.text)
}

func TestResolveSpecPredicate_Number(t *testing.T) {
	attr := models.Attribute{Key: "weight", DataType: models.DataTypeNumber}

	pred, ok := resolveSpecPredicate(attr, " 2.5 ")
	require.True(t, ok)
	assert.True(t, pred.number.Equal(decimal.RequireFromString("2.5")))
}

func TestResolveSpecPredicate_UnparseableNumberIgnored(t *testing.T) {
	attr := models.Attribute{Key: "weight", DataType: models.DataTypeNumber}

	_, ok := resolveSpecPredicate(attr, "heavy")
	assert.False(t, ok, "an unparseable number filter must add no constraint")
}

func TestResolveSpecPredicate_BooleanAlwaysResolves(t *testing.T) {
	attr := models.Attribute{Key: "wireless", DataType: models.DataTypeBoolean}

	pred, ok := resolveSpecPredicate(attr, "yes")
	require.True(t, ok)
	assert.True(t, pred.boolean)

	pred, ok = resolveSpecPredicate(attr, "garbage")
	require.True(t, ok)
	assert.False(t, pred.boolean)
}

func TestResolveSpecPredicate_Selects(t *testing.T) {
	single := models.Attribute{Key: "ram", DataType: models.DataTypeSingleSelect}
	multi := models.Attribute{Key: "ports", DataType: models.DataTypeMultiSelect}

	pred, ok := resolveSpecPredicate(single, "16gb")
	require.True(t, ok)
	assert.Equal(t, "16gb", pred.option)

	pred, ok = resolveSpecPredicate(multi, "usb-c")
	require.True(t, ok)
	assert.Equal(t, "usb-c", pred.option)
}

func TestResolveSpecPredicate_UnknownDataTypeIgnored(t *testing.T) {
	attr := models.Attribute{Key: "x", DataType: "GEOMETRY"}

	_, ok := resolveSpecPredicate(attr, "anything")
	assert.False(t, ok)
}
