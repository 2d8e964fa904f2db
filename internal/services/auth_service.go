// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/config"
	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token       string   `json:"token"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	Permissions []string `json:"permissions"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Login authenticates an operator account. A deactivated account fails
// with ErrAccountInactive even when the credentials are correct, so
// the caller can tell it apart from an unknown account or a bad
// password.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.AdminUser
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if !user.Active {
		return nil, ErrAccountInactive
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.Save(&user).Error; err != nil {
		logrus.WithError(err).WithField("username", user.Username).Error("Failed to update last login")
	}

	token, err := utils.GenerateJWT(user.Username, s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	permissions, err := s.PermissionsFor(user.Username)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		Token:       token,
		Username:    user.Username,
		Email:       user.Email,
		FullName:    user.FullName,
		Permissions: permissions,
	}, nil
}

// PermissionsFor flattens the account's profiles into the union of
// their permission names. The set is recomputed from current profile
// membership on every call and never cached, so changes take effect on
// the next request.
func (s *AuthService) PermissionsFor(username string) ([]string, error) {
	var user models.AdminUser
	if err := s.db.Preload("Profiles.Permissions").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	set := make(map[string]struct{})
	for _, profile := range user.Profiles {
		for _, permission := range profile.Permissions {
			set[permission.Name] = struct{}{}
		}
	}

	permissions := make([]string, 0, len(set))
	for name := range set {
		permissions = append(permissions, name)
	}
	sort.Strings(permissions)

	return permissions, nil
}

// HasPermission is the authorization primitive checked on every
// privileged request.
func (s *AuthService) HasPermission(username, permission string) (bool, error) {
	permissions, err := s.PermissionsFor(username)
	if err != nil {
		return false, err
	}
	for _, name := range permissions {
		if name == permission {
			return true, nil
		}
	}
	return false, nil
}
