package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/noora/internal/models"
)

func cards(names ...string) []ProductCard {
	out := make([]ProductCard, 0, len(names))
	for _, name := range names {
		out = append(out, ProductCard{Name: name, Availability: models.AvailabilityInStock})
	}
	return out
}

func TestItemsToRender_CapsAtProductCount(t *testing.T) {
	rendered := itemsToRender(2, cards("a", "b", "c", "d"))

	require.Len(t, rendered, 2)
	assert.Equal(t, "a", rendered[0].Name)
	assert.Equal(t, "b", rendered[1].Name)
}

func TestItemsToRender_ShortListUnchanged(t *testing.T) {
	rendered := itemsToRender(8, cards("a", "b"))
	assert.Len(t, rendered, 2)
}

func TestItemsToRender_KeepsUnavailableProducts(t *testing.T) {
	curated := cards("a", "b", "c")
	curated[1].Availability = models.AvailabilityOutOfStock

	rendered := itemsToRender(3, curated)

	require.Len(t, rendered, 3)
	assert.Equal(t, models.AvailabilityOutOfStock, rendered[1].Availability,
		"out-of-stock products stay visible in their curated slot")
}

func TestItemsToRender_ZeroCount(t *testing.T) {
	assert.Empty(t, itemsToRender(0, cards("a", "b")))
}
