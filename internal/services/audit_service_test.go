// internal/services/audit_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type AuditServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc *AuditLogService
}

func (s *AuditServiceTestSuite) SetupTest() {
	s.db = newAdminTestDB(s.T())
	s.svc = NewAuditLogService(s.db)
}

func (s *AuditServiceTestSuite) TestLogRecordsActor() {
	s.svc.Log(Actor{Username: "alice", IPAddress: "10.0.0.1"},
		"ASSIGN", "KYC_APPLICATION", "app-1", "Assigned from unassigned to bob")

	var entry models.AuditLog
	s.Require().NoError(s.db.First(&entry).Error)
	s.Require().NotNil(entry.Username)
	s.Equal("alice", *entry.Username)
	s.Require().NotNil(entry.IPAddress)
	s.Equal("10.0.0.1", *entry.IPAddress)
	s.Equal("ASSIGN", entry.Action)
	s.Equal("app-1", entry.ResourceID)
	s.False(entry.Timestamp.IsZero())
}

func (s *AuditServiceTestSuite) TestAnonymousActorLeavesNulls() {
	s.svc.Log(Actor{}, "SEED", "SYSTEM", "", "Initial data seeded")

	var entry models.AuditLog
	s.Require().NoError(s.db.First(&entry).Error)
	s.Nil(entry.Username)
	s.Nil(entry.IPAddress)
}

func (s *AuditServiceTestSuite) TestLogsReturnedNewestFirst() {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, action := range []string{"FIRST", "SECOND", "THIRD"} {
		entry := models.AuditLog{
			Action:    action,
			Resource:  "KYC_APPLICATION",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		s.Require().NoError(s.db.Create(&entry).Error)
	}

	logs, total, err := s.svc.GetAllLogs(utils.PaginationParams{Page: 0, Size: 10})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Require().Len(logs, 3)
	s.Equal("THIRD", logs[0].Action)
	s.Equal("FIRST", logs[2].Action)
}

func (s *AuditServiceTestSuite) TestFilterByResourceID() {
	s.svc.Log(Actor{Username: "alice"}, "ASSIGN", "KYC_APPLICATION", "app-1", "")
	s.svc.Log(Actor{Username: "alice"}, "ASSIGN", "KYC_APPLICATION", "app-2", "")
	s.svc.Log(Actor{Username: "alice"}, "UPDATE_STATUS", "KYC_APPLICATION", "app-1", "")

	logs, total, err := s.svc.GetLogsByResourceID("app-1", utils.PaginationParams{Page: 0, Size: 10})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(logs, 2)

	logs, total, err = s.svc.GetLogsByResource("KYC_APPLICATION", utils.PaginationParams{Page: 0, Size: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(logs, 2)
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}
