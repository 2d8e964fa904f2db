// internal/handlers/audit.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type AuditHandler struct {
	audit *services.AuditLogService
}

func NewAuditHandler(audit *services.AuditLogService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GET /api/v1/admin/audit-logs
func (h *AuditHandler) GetLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var (
		logs  interface{}
		total int64
		err   error
	)

	if resourceID := c.Query("resource_id"); resourceID != "" {
		logs, total, err = h.audit.GetLogsByResourceID(resourceID, params)
	} else if resource := c.Query("resource"); resource != "" {
		logs, total, err = h.audit.GetLogsByResource(resource, params)
	} else {
		logs, total, err = h.audit.GetAllLogs(params)
	}
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}
