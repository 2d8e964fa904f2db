// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/config"
	"github.com/onboarding/kyc-admin/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuthService

	permView   models.Permission
	permReview models.Permission
	permManage models.Permission
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newAdminTestDB(s.T())
	s.svc = NewAuthService(s.db, &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
	})

	s.permView = models.Permission{Name: "VIEW_APPLICATIONS"}
	s.permReview = models.Permission{Name: "REVIEW_APPLICATIONS"}
	s.permManage = models.Permission{Name: "MANAGE_USERS"}
	s.Require().NoError(s.db.Create(&s.permView).Error)
	s.Require().NoError(s.db.Create(&s.permReview).Error)
	s.Require().NoError(s.db.Create(&s.permManage).Error)
}

func (s *AuthServiceTestSuite) createUser(username string, active bool, profiles ...models.Profile) {
	user := models.AdminUser{
		Username: username,
		Email:    username + "@example.com",
		Active:   active,
		Profiles: profiles,
	}
	s.Require().NoError(user.SetPassword("secret123"))
	s.Require().NoError(s.db.Create(&user).Error)
}

func (s *AuthServiceTestSuite) TestPermissionsAreUnionOfProfiles() {
	reviewer := models.Profile{Name: "REVIEWER", Permissions: []models.Permission{s.permView, s.permReview}}
	manager := models.Profile{Name: "MANAGER", Permissions: []models.Permission{s.permReview, s.permManage}}
	s.Require().NoError(s.db.Create(&reviewer).Error)
	s.Require().NoError(s.db.Create(&manager).Error)
	s.createUser("carol", true, reviewer, manager)

	permissions, err := s.svc.PermissionsFor("carol")
	s.Require().NoError(err)
	s.Equal([]string{"MANAGE_USERS", "REVIEW_APPLICATIONS", "VIEW_APPLICATIONS"}, permissions)
}

func (s *AuthServiceTestSuite) TestNoProfilesMeansNoPermissions() {
	s.createUser("dave", true)

	permissions, err := s.svc.PermissionsFor("dave")
	s.Require().NoError(err)
	s.Empty(permissions)

	allowed, err := s.svc.HasPermission("dave", "VIEW_APPLICATIONS")
	s.Require().NoError(err)
	s.False(allowed)
}

func (s *AuthServiceTestSuite) TestPermissionsForUnknownUser() {
	_, err := s.svc.PermissionsFor("ghost")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	reviewer := models.Profile{Name: "REVIEWER", Permissions: []models.Permission{s.permView}}
	s.Require().NoError(s.db.Create(&reviewer).Error)
	s.createUser("alice", true, reviewer)

	resp, err := s.svc.Login(&LoginRequest{Username: "alice", Password: "secret123"})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal("alice", resp.Username)
	s.Equal([]string{"VIEW_APPLICATIONS"}, resp.Permissions)

	var user models.AdminUser
	s.Require().NoError(s.db.Where("username = ?", "alice").First(&user).Error)
	s.NotNil(user.LastLogin)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	s.createUser("alice", true)

	_, err := s.svc.Login(&LoginRequest{Username: "alice", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginUnknownUser() {
	_, err := s.svc.Login(&LoginRequest{Username: "ghost", Password: "secret123"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestInactiveAccountRejectedWithValidCredentials() {
	s.createUser("bob", false)

	_, err := s.svc.Login(&LoginRequest{Username: "bob", Password: "secret123"})
	s.ErrorIs(err, ErrAccountInactive)
}

func (s *AuthServiceTestSuite) TestPermissionChangesApplyImmediately() {
	reviewer := models.Profile{Name: "REVIEWER", Permissions: []models.Permission{s.permView}}
	s.Require().NoError(s.db.Create(&reviewer).Error)
	s.createUser("erin", true, reviewer)

	allowed, err := s.svc.HasPermission("erin", "REVIEW_APPLICATIONS")
	s.Require().NoError(err)
	s.False(allowed)

	s.Require().NoError(s.db.Model(&reviewer).
		Association("Permissions").
		Replace([]models.Permission{s.permView, s.permReview}))

	allowed, err = s.svc.HasPermission("erin", "REVIEW_APPLICATIONS")
	s.Require().NoError(err)
	s.True(allowed)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
