// internal/handlers/dashboard.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type DashboardHandler struct {
	dashboardService  *services.DashboardService
	statisticsService *services.StatisticsService
}

func NewDashboardHandler(dashboardService *services.DashboardService, statisticsService *services.StatisticsService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService:  dashboardService,
		statisticsService: statisticsService,
	}
}

// GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /api/v1/statistics
func (h *DashboardHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statisticsService.GetStatistics()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, stats)
}
