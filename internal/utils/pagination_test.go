// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFromQuery(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/applications?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFromQuery("")
	assert.Equal(t, 0, params.Page)
	assert.Equal(t, 20, params.Size)
}

func TestGetPaginationParamsClamping(t *testing.T) {
	params := paramsFromQuery("page=-3&size=500")
	assert.Equal(t, 0, params.Page)
	assert.Equal(t, 20, params.Size)

	params = paramsFromQuery("page=2&size=50")
	assert.Equal(t, 2, params.Page)
	assert.Equal(t, 50, params.Size)
}

func TestPageBounds(t *testing.T) {
	params := PaginationParams{Page: 0, Size: 10}
	start, end := PageBounds(params, 25)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, end)

	params.Page = 2
	start, end = PageBounds(params, 25)
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	// past the end yields an empty range, not an error
	params.Page = 3
	start, end = PageBounds(params, 25)
	assert.Equal(t, 25, start)
	assert.Equal(t, 25, end)
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a"}, 25, PaginationParams{Page: 1, Size: 10})
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(25), result.Total)
}
