package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageInfo(t *testing.T) {
	cases := []struct {
		name        string
		page        int
		pageSize    int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrevious bool
	}{
		{"first of many", 1, 20, 45, 3, true, false},
		{"middle page", 2, 20, 45, 3, true, true},
		{"last page", 3, 20, 45, 3, false, true},
		{"exact multiple", 2, 10, 20, 2, false, true},
		{"empty set", 1, 20, 0, 0, false, false},
		{"beyond last still reports total", 9, 20, 45, 3, false, true},
		{"single item", 1, 20, 1, 1, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := NewPageInfo(tc.page, tc.pageSize, tc.total)

			assert.Equal(t, tc.page, info.Page)
			assert.Equal(t, tc.pageSize, info.PageSize)
			assert.Equal(t, tc.total, info.Total)
			assert.Equal(t, tc.totalPages, info.TotalPages)
			assert.Equal(t, tc.hasNext, info.HasNext)
			assert.Equal(t, tc.hasPrevious, info.HasPrevious)
		})
	}
}

func TestParseIntFallback(t *testing.T) {
	assert.Equal(t, 7, parseInt("7", 1))
	assert.Equal(t, 1, parseInt("nope", 1))
	assert.Equal(t, -2, parseInt("-2", 1))
}
