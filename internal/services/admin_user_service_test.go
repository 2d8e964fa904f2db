// internal/services/admin_user_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
)

type AdminUserServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AdminUserService
}

func (s *AdminUserServiceTestSuite) SetupTest() {
	s.db = newAdminTestDB(s.T())
	s.svc = NewAdminUserService(s.db)
}

func (s *AdminUserServiceTestSuite) TestCreateUserWithProfiles() {
	profile := models.Profile{Name: "REVIEWER"}
	s.Require().NoError(s.db.Create(&profile).Error)

	user, err := s.svc.CreateUser(&CreateAdminUserRequest{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "secret123",
		FullName:   "Alice Smith",
		ProfileIDs: []string{profile.ID},
	})
	s.Require().NoError(err)
	s.NotEmpty(user.ID)
	s.True(user.Active)
	s.Equal([]string{"REVIEWER"}, user.Profiles)

	// password is hashed, never stored in the clear
	var stored models.AdminUser
	s.Require().NoError(s.db.Where("username = ?", "alice").First(&stored).Error)
	s.NotEqual("secret123", stored.PasswordHash)
	s.NoError(stored.CheckPassword("secret123"))
}

func (s *AdminUserServiceTestSuite) TestDuplicateUsernameConflict() {
	_, err := s.svc.CreateUser(&CreateAdminUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	s.Require().NoError(err)

	_, err = s.svc.CreateUser(&CreateAdminUserRequest{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	})
	s.ErrorIs(err, ErrUsernameTaken)
}

func (s *AdminUserServiceTestSuite) TestDuplicateEmailConflict() {
	_, err := s.svc.CreateUser(&CreateAdminUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	s.Require().NoError(err)

	_, err = s.svc.CreateUser(&CreateAdminUserRequest{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	})
	s.ErrorIs(err, ErrEmailTaken)
}

func (s *AdminUserServiceTestSuite) TestCreateUserUnknownProfile() {
	_, err := s.svc.CreateUser(&CreateAdminUserRequest{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "secret123",
		ProfileIDs: []string{"no-such-profile"},
	})
	s.ErrorIs(err, ErrProfileNotFound)
}

func (s *AdminUserServiceTestSuite) TestInactiveStateSurvivesCreate() {
	user := models.AdminUser{
		Username: "dormant",
		Email:    "dormant@example.com",
		Active:   false,
	}
	s.Require().NoError(user.SetPassword("secret123"))
	s.Require().NoError(s.db.Create(&user).Error)

	fetched, err := s.svc.GetUserByID(user.ID)
	s.Require().NoError(err)
	s.False(fetched.Active)
}

func (s *AdminUserServiceTestSuite) TestToggleUserStatus() {
	created, err := s.svc.CreateUser(&CreateAdminUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	s.Require().NoError(err)

	user, err := s.svc.ToggleUserStatus(created.ID, false)
	s.Require().NoError(err)
	s.False(user.Active)

	user, err = s.svc.ToggleUserStatus(created.ID, true)
	s.Require().NoError(err)
	s.True(user.Active)
}

func (s *AdminUserServiceTestSuite) TestDeleteUser() {
	created, err := s.svc.CreateUser(&CreateAdminUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteUser(created.ID))

	_, err = s.svc.GetUserByID(created.ID)
	s.ErrorIs(err, ErrUserNotFound)

	s.ErrorIs(s.svc.DeleteUser(created.ID), ErrUserNotFound)
}

func TestAdminUserServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminUserServiceTestSuite))
}
