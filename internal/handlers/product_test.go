package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecFiltersFromQuery(t *testing.T) {
	params := map[string]string{
		"page":          "2",
		"search":        "laptop",
		"spec_ram":      "16gb",
		"spec_wireless": "true",
		"spec_":         "ignored",
	}

	filters := specFiltersFromQuery(params)

	assert.Equal(t, map[string]string{
		"ram":      "16gb",
		"wireless": "true",
	}, filters)
}

func TestSpecFiltersFromQuery_NoSpecParams(t *testing.T) {
	assert.Empty(t, specFiltersFromQuery(map[string]string{"page": "1"}))
	assert.Empty(t, specFiltersFromQuery(nil))
}
