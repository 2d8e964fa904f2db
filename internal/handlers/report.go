// internal/handlers/report.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// POST /api/v1/admin/reports/applications
func (h *ReportHandler) ExportApplications(c *gin.Context) {
	result, err := h.reportService.ExportApplications(actorFromContext(c))
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, result)
}
