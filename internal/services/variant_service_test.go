package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/noora/internal/models"
)

func productWithID(id string) models.Product {
	p := models.Product{Name: "p-" + id}
	p.ID = uuid.MustParse(id)
	return p
}

func TestOrderMembers_DefaultFirstThenByID(t *testing.T) {
	low := productWithID("11111111-1111-1111-1111-111111111111")
	mid := productWithID("22222222-2222-2222-2222-222222222222")
	high := productWithID("33333333-3333-3333-3333-333333333333")

	defaultID := high.ID
	ordered := orderMembers([]models.Product{mid, high, low}, &defaultID)

	require.Len(t, ordered, 3)
	assert.Equal(t, high.ID, ordered[0].ID, "the default product leads the group")
	assert.Equal(t, low.ID, ordered[1].ID)
	assert.Equal(t, mid.ID, ordered[2].ID)
}

func TestOrderMembers_NoDefault(t *testing.T) {
	low := productWithID("11111111-1111-1111-1111-111111111111")
	mid := productWithID("22222222-2222-2222-2222-222222222222")
	high := productWithID("33333333-3333-3333-3333-333333333333")

	ordered := orderMembers([]models.Product{high, low, mid}, nil)

	require.Len(t, ordered, 3)
	assert.Equal(t, low.ID, ordered[0].ID)
	assert.Equal(t, mid.ID, ordered[1].ID)
	assert.Equal(t, high.ID, ordered[2].ID)
}

func TestOrderMembers_DoesNotMutateInput(t *testing.T) {
	low := productWithID("11111111-1111-1111-1111-111111111111")
	high := productWithID("33333333-3333-3333-3333-333333333333")

	members := []models.Product{high, low}
	defaultID := low.ID
	_ = orderMembers(members, &defaultID)

	assert.Equal(t, high.ID, members[0].ID, "input slice order is preserved")
}

func TestOrderMembers_Empty(t *testing.T) {
	assert.Empty(t, orderMembers(nil, nil))
}
