// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaginationParams carries zero-based page addressing: page N of size S
// covers records [N*S, (N+1)*S). Out-of-range pages yield empty pages,
// never errors.
type PaginationParams struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Data       interface{} `json:"data"`
}

func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

	if page < 0 {
		page = 0
	}
	if size < 1 || size > 100 {
		size = 20
	}

	return PaginationParams{Page: page, Size: size}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	offset := params.Page * params.Size
	return db.Offset(offset).Limit(params.Size)
}

// PageBounds returns the [start, end) slice bounds for an in-memory
// page over a set of the given length.
func PageBounds(params PaginationParams, length int) (int, int) {
	start := params.Page * params.Size
	if start > length {
		start = length
	}
	end := start + params.Size
	if end > length {
		end = length
	}
	return start, end
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(params.Size)))

	return PaginationResult{
		Page:       params.Page,
		Size:       params.Size,
		Total:      total,
		TotalPages: totalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Size))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
