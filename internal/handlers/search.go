// internal/handlers/search.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type SearchHandler struct {
	searchService *services.SearchService
}

func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// GET /api/v1/applications/search
func (h *SearchHandler) SearchApplications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	req := services.SearchRequest{
		Query:      c.Query("query"),
		Status:     c.Query("status"),
		EntityType: c.Query("entity_type"),
		AssignedTo: c.Query("assigned_to"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	}

	views, total, err := h.searchService.SearchApplications(req, params)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	result := utils.CreatePaginationResult(views, total, params)
	utils.PaginatedResponse(c, result)
}
