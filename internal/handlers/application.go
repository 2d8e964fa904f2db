// internal/handlers/application.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type ApplicationHandler struct {
	appService *services.ApplicationService
}

func NewApplicationHandler(appService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func actorFromContext(c *gin.Context) services.Actor {
	username, _ := utils.GetUsernameFromContext(c)
	return services.Actor{
		Username:  username,
		IPAddress: c.ClientIP(),
	}
}

// GET /api/v1/applications
func (h *ApplicationHandler) GetApplications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	views, total, err := h.appService.GetAllApplications(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(views, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /api/v1/applications/status/:status
func (h *ApplicationHandler) GetApplicationsByStatus(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	status := c.Param("status")

	views, total, err := h.appService.GetApplicationsByStatus(status, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(views, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /api/v1/applications/:id
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	view, err := h.appService.GetApplicationByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.NotFoundResponse(c, "Application not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, view)
}

// PUT /api/v1/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status      string `json:"status" binding:"required"`
		ReviewNotes string `json:"review_notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	view, err := h.appService.UpdateStatus(actorFromContext(c), c.Param("id"), req.Status, req.ReviewNotes)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.NotFoundResponse(c, "Application not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, view)
}

// PUT /api/v1/applications/:id/assign
func (h *ApplicationHandler) Assign(c *gin.Context) {
	var req struct {
		AssignedTo string `json:"assigned_to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	view, err := h.appService.Assign(actorFromContext(c), c.Param("id"), req.AssignedTo)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.NotFoundResponse(c, "Application not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, view)
}
