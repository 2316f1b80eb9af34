package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed pagination parameters. Page is 1-based.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and page_size query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("page_size", "20"), 20)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}

// PageInfo describes one page of a filtered result set. Total always reflects the
// filtered set before pagination, so a page beyond the last still reports it.
type PageInfo struct {
	Page        int   `json:"page"`
	PageSize    int   `json:"page_size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPageInfo computes page metadata for a total count.
func NewPageInfo(page, pageSize int, total int64) PageInfo {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return PageInfo{
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}
