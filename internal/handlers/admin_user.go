// internal/handlers/admin_user.go
package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type AdminUserHandler struct {
	userService *services.AdminUserService
	audit       *services.AuditLogService
}

func NewAdminUserHandler(userService *services.AdminUserService, audit *services.AuditLogService) *AdminUserHandler {
	return &AdminUserHandler{
		userService: userService,
		audit:       audit,
	}
}

// GET /api/v1/admin/users
func (h *AdminUserHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"users": users,
	})
}

// GET /api/v1/admin/users/:id
func (h *AdminUserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, user)
}

// POST /api/v1/admin/users
func (h *AdminUserHandler) CreateUser(c *gin.Context) {
	var req services.CreateAdminUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.CreateUser(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			utils.ConflictResponse(c, "Username is already taken")
		case errors.Is(err, services.ErrEmailTaken):
			utils.ConflictResponse(c, "Email is already registered")
		case errors.Is(err, services.ErrProfileNotFound):
			utils.BadRequestResponse(c, err.Error(), nil)
		default:
			if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
				utils.ValidationErrorResponse(c, validationErrors)
				return
			}
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	h.audit.Log(actorFromContext(c), "CREATE", "ADMIN_USER", user.ID,
		fmt.Sprintf("Created admin user %s", user.Username))

	utils.CreatedResponse(c, user)
}

// PUT /api/v1/admin/users/:id/status
func (h *AdminUserHandler) UpdateUserStatus(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.userService.ToggleUserStatus(c.Param("id"), *req.Active)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	action := "DEACTIVATE"
	if user.Active {
		action = "ACTIVATE"
	}
	h.audit.Log(actorFromContext(c), action, "ADMIN_USER", user.ID,
		fmt.Sprintf("Set active=%t for %s", user.Active, user.Username))

	utils.SuccessResponse(c, user)
}

// DELETE /api/v1/admin/users/:id
func (h *AdminUserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.userService.DeleteUser(id); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	h.audit.Log(actorFromContext(c), "DELETE", "ADMIN_USER", id, "Deleted admin user")

	utils.NoContentResponse(c)
}
