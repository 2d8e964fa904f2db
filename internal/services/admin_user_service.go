// internal/services/admin_user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type AdminUserService struct {
	db *gorm.DB
}

type CreateAdminUserRequest struct {
	Username   string   `json:"username" validate:"required,username"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=8"`
	FullName   string   `json:"full_name"`
	ProfileIDs []string `json:"profile_ids"`
}

type AdminUserView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Active    bool       `json:"active"`
	Profiles  []string   `json:"profiles"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login"`
}

func NewAdminUserService(db *gorm.DB) *AdminUserService {
	return &AdminUserService{db: db}
}

func (s *AdminUserService) GetAllUsers() ([]AdminUserView, error) {
	var users []models.AdminUser
	if err := s.db.Preload("Profiles").Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	views := make([]AdminUserView, len(users))
	for i := range users {
		views[i] = toAdminUserView(&users[i])
	}
	return views, nil
}

func (s *AdminUserService) GetUserByID(id string) (*AdminUserView, error) {
	var user models.AdminUser
	if err := s.db.Preload("Profiles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	view := toAdminUserView(&user)
	return &view, nil
}

func (s *AdminUserService) CreateUser(req *CreateAdminUserRequest) (*AdminUserView, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	if err := s.db.Model(&models.AdminUser{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	if err := s.db.Model(&models.AdminUser{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	user := models.AdminUser{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Active:   true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	for _, profileID := range req.ProfileIDs {
		var profile models.Profile
		if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profileID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
		user.Profiles = append(user.Profiles, profile)
	}

	if err := s.db.Create(&user).Error; err != nil {
		// racing create against the unique indexes
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	view := toAdminUserView(&user)
	return &view, nil
}

func (s *AdminUserService) ToggleUserStatus(id string, active bool) (*AdminUserView, error) {
	var user models.AdminUser
	if err := s.db.Preload("Profiles").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.Active = active
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	view := toAdminUserView(&user)
	return &view, nil
}

func (s *AdminUserService) DeleteUser(id string) error {
	result := s.db.Delete(&models.AdminUser{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func toAdminUserView(user *models.AdminUser) AdminUserView {
	profiles := make([]string, len(user.Profiles))
	for i, profile := range user.Profiles {
		profiles[i] = profile.Name
	}

	return AdminUserView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FullName:  user.FullName,
		Active:    user.Active,
		Profiles:  profiles,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
}
