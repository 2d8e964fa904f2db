// internal/services/profile_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *ProfileService

	permView   models.Permission
	permReview models.Permission
}

func (s *ProfileServiceTestSuite) SetupTest() {
	s.db = newAdminTestDB(s.T())
	s.svc = NewProfileService(s.db)

	s.permView = models.Permission{Name: "VIEW_APPLICATIONS"}
	s.permReview = models.Permission{Name: "REVIEW_APPLICATIONS"}
	s.Require().NoError(s.db.Create(&s.permView).Error)
	s.Require().NoError(s.db.Create(&s.permReview).Error)
}

func (s *ProfileServiceTestSuite) TestCreateProfileWithPermissions() {
	profile, err := s.svc.CreateProfile(&CreateProfileRequest{
		Name:          "REVIEWER",
		Description:   "Can review applications",
		PermissionIDs: []string{s.permView.ID, s.permReview.ID},
	})
	s.Require().NoError(err)
	s.NotEmpty(profile.ID)
	s.Len(profile.Permissions, 2)
	s.False(profile.CreatedAt.IsZero())
}

func (s *ProfileServiceTestSuite) TestDuplicateProfileNameConflict() {
	_, err := s.svc.CreateProfile(&CreateProfileRequest{Name: "REVIEWER"})
	s.Require().NoError(err)

	_, err = s.svc.CreateProfile(&CreateProfileRequest{Name: "REVIEWER"})
	s.ErrorIs(err, ErrProfileNameTaken)

	profiles, err := s.svc.GetAllProfiles()
	s.Require().NoError(err)
	s.Len(profiles, 1)
}

func (s *ProfileServiceTestSuite) TestCreateProfileUnknownPermission() {
	_, err := s.svc.CreateProfile(&CreateProfileRequest{
		Name:          "REVIEWER",
		PermissionIDs: []string{"no-such-permission"},
	})
	s.Error(err)
}

func (s *ProfileServiceTestSuite) TestReplacePermissions() {
	profile, err := s.svc.CreateProfile(&CreateProfileRequest{
		Name:          "REVIEWER",
		PermissionIDs: []string{s.permView.ID},
	})
	s.Require().NoError(err)

	updated, err := s.svc.UpdateProfilePermissions(profile.ID, []string{s.permReview.ID})
	s.Require().NoError(err)
	s.Require().Len(updated.Permissions, 1)
	s.Equal("REVIEW_APPLICATIONS", updated.Permissions[0].Name)

	fetched, err := s.svc.GetProfileByID(profile.ID)
	s.Require().NoError(err)
	s.Require().Len(fetched.Permissions, 1)
	s.Equal("REVIEW_APPLICATIONS", fetched.Permissions[0].Name)
}

func (s *ProfileServiceTestSuite) TestDeleteProfile() {
	profile, err := s.svc.CreateProfile(&CreateProfileRequest{
		Name:          "REVIEWER",
		PermissionIDs: []string{s.permView.ID},
	})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteProfile(profile.ID))

	_, err = s.svc.GetProfileByID(profile.ID)
	s.ErrorIs(err, ErrProfileNotFound)

	// the permission catalogue is untouched
	permissions, err := s.svc.GetAllPermissions()
	s.Require().NoError(err)
	s.Len(permissions, 2)
}

func (s *ProfileServiceTestSuite) TestPermissionsSortedByName() {
	permissions, err := s.svc.GetAllPermissions()
	s.Require().NoError(err)
	s.Require().Len(permissions, 2)
	s.Equal("REVIEW_APPLICATIONS", permissions[0].Name)
	s.Equal("VIEW_APPLICATIONS", permissions[1].Name)
}

func TestProfileServiceSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
