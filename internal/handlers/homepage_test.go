package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionProductCount(t *testing.T) {
	zero := 0
	five := 5

	assert.Equal(t, 10, sectionProductCount(nil), "omitted count falls back to the default")
	assert.Equal(t, 0, sectionProductCount(&zero), "explicit zero is honored")
	assert.Equal(t, 5, sectionProductCount(&five))
}
