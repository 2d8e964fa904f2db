// internal/handlers/profile.go
package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type ProfileHandler struct {
	profileService *services.ProfileService
	audit          *services.AuditLogService
}

func NewProfileHandler(profileService *services.ProfileService, audit *services.AuditLogService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		audit:          audit,
	}
}

// GET /api/v1/admin/profiles
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	profiles, err := h.profileService.GetAllProfiles()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"profiles": profiles,
	})
}

// GET /api/v1/admin/profiles/:id
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfileByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.NotFoundResponse(c, "Profile not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, profile)
}

// POST /api/v1/admin/profiles
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req services.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	profile, err := h.profileService.CreateProfile(&req)
	if err != nil {
		if errors.Is(err, services.ErrProfileNameTaken) {
			utils.ConflictResponse(c, "Profile name is already taken")
			return
		}
		if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.audit.Log(actorFromContext(c), "CREATE", "PROFILE", profile.ID,
		fmt.Sprintf("Created profile %s", profile.Name))

	utils.CreatedResponse(c, profile)
}

// PUT /api/v1/admin/profiles/:id/permissions
func (h *ProfileHandler) UpdateProfilePermissions(c *gin.Context) {
	var req struct {
		PermissionIDs []string `json:"permission_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	profile, err := h.profileService.UpdateProfilePermissions(c.Param("id"), req.PermissionIDs)
	if err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.NotFoundResponse(c, "Profile not found")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.audit.Log(actorFromContext(c), "UPDATE_PERMISSIONS", "PROFILE", profile.ID,
		fmt.Sprintf("Replaced permission set of %s (%d permissions)", profile.Name, len(profile.Permissions)))

	utils.SuccessResponse(c, profile)
}

// DELETE /api/v1/admin/profiles/:id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	id := c.Param("id")
	if err := h.profileService.DeleteProfile(id); err != nil {
		if errors.Is(err, services.ErrProfileNotFound) {
			utils.NotFoundResponse(c, "Profile not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	h.audit.Log(actorFromContext(c), "DELETE", "PROFILE", id, "Deleted profile")

	utils.NoContentResponse(c)
}

// GET /api/v1/admin/permissions
func (h *ProfileHandler) GetPermissions(c *gin.Context) {
	permissions, err := h.profileService.GetAllPermissions()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"permissions": permissions,
	})
}
