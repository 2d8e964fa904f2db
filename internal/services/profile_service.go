// internal/services/profile_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type ProfileService struct {
	db *gorm.DB
}

type CreateProfileRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=50"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}

type ProfileView struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Permissions []PermissionView `json:"permissions"`
	CreatedAt   time.Time        `json:"created_at"`
}

type PermissionView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetAllProfiles() ([]ProfileView, error) {
	var profiles []models.Profile
	if err := s.db.Preload("Permissions").Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	views := make([]ProfileView, len(profiles))
	for i := range profiles {
		views[i] = toProfileView(&profiles[i])
	}
	return views, nil
}

func (s *ProfileService) GetProfileByID(id string) (*ProfileView, error) {
	var profile models.Profile
	if err := s.db.Preload("Permissions").First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	view := toProfileView(&profile)
	return &view, nil
}

func (s *ProfileService) CreateProfile(req *CreateProfileRequest) (*ProfileView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrProfileNameTaken
	}

	profile := models.Profile{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}

	for _, permissionID := range req.PermissionIDs {
		var permission models.Permission
		if err := s.db.First(&permission, "id = ?", permissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("permission not found: %s", permissionID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		profile.Permissions = append(profile.Permissions, permission)
	}

	if err := s.db.Create(&profile).Error; err != nil {
		// racing create against the unique index
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrProfileNameTaken
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	view := toProfileView(&profile)
	return &view, nil
}

// UpdateProfilePermissions replaces the profile's permission set. The
// change is visible to every member account on their next request
// because effective permissions are never cached.
func (s *ProfileService) UpdateProfilePermissions(id string, permissionIDs []string) (*ProfileView, error) {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var permissions []models.Permission
	for _, permissionID := range permissionIDs {
		var permission models.Permission
		if err := s.db.First(&permission, "id = ?", permissionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("permission not found: %s", permissionID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		permissions = append(permissions, permission)
	}

	if err := s.db.Model(&profile).Association("Permissions").Replace(permissions); err != nil {
		return nil, fmt.Errorf("failed to update permissions: %w", err)
	}

	profile.Permissions = permissions
	view := toProfileView(&profile)
	return &view, nil
}

func (s *ProfileService) DeleteProfile(id string) error {
	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&profile).Association("Permissions").Clear(); err != nil {
		return fmt.Errorf("failed to clear permissions: %w", err)
	}
	if err := s.db.Delete(&profile).Error; err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (s *ProfileService) GetAllPermissions() ([]PermissionView, error) {
	var permissions []models.Permission
	if err := s.db.Order("name ASC").Find(&permissions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}

	views := make([]PermissionView, len(permissions))
	for i := range permissions {
		views[i] = toPermissionView(&permissions[i])
	}
	return views, nil
}

func toProfileView(profile *models.Profile) ProfileView {
	permissions := make([]PermissionView, len(profile.Permissions))
	for i := range profile.Permissions {
		permissions[i] = toPermissionView(&profile.Permissions[i])
	}

	return ProfileView{
		ID:          profile.ID,
		Name:        profile.Name,
		Description: profile.Description,
		Permissions: permissions,
		CreatedAt:   profile.CreatedAt,
	}
}

func toPermissionView(permission *models.Permission) PermissionView {
	return PermissionView{
		ID:          permission.ID,
		Name:        permission.Name,
		Description: permission.Description,
		Resource:    permission.Resource,
		Action:      permission.Action,
	}
}
