// internal/handlers/auth.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
	audit       *services.AuditLogService
}

func NewAuthHandler(authService *services.AuthService, audit *services.AuditLogService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		audit:       audit,
	}
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountInactive):
			utils.ForbiddenResponse(c, "Account is deactivated")
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, "Invalid username or password")
		default:
			if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
				utils.ValidationErrorResponse(c, validationErrors)
				return
			}
			utils.InternalErrorResponse(c, "Login failed")
		}
		return
	}

	h.audit.Log(services.Actor{Username: resp.Username, IPAddress: c.ClientIP()},
		"LOGIN", "ADMIN_USER", resp.Username, "Successful login")

	utils.SuccessResponse(c, resp)
}

// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	username, ok := utils.GetUsernameFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	permissions, err := h.authService.PermissionsFor(username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.UnauthorizedResponse(c, "Account no longer exists")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"username":    username,
		"permissions": permissions,
	})
}
