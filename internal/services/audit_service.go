// internal/services/audit_service.go
package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

// Actor identifies who performed a mutating operation. It is built at
// the HTTP boundary from the authenticated principal and passed
// explicitly into every audited call — never read from ambient state.
type Actor struct {
	Username  string
	IPAddress string
}

type AuditLogService struct {
	db *gorm.DB
}

func NewAuditLogService(db *gorm.DB) *AuditLogService {
	return &AuditLogService{db: db}
}

// Log appends an audit entry. A failed write never aborts the
// triggering operation; it is reported through the log instead.
func (s *AuditLogService) Log(actor Actor, action, resource, resourceID, details string) {
	entry := &models.AuditLog{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
	}
	if actor.Username != "" {
		entry.Username = &actor.Username
	}
	if actor.IPAddress != "" {
		entry.IPAddress = &actor.IPAddress
	}

	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"resource":    resource,
			"resource_id": resourceID,
		}).Error("Failed to write audit log entry")
	}
}

func (s *AuditLogService) GetAllLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	return s.findLogs(s.db.Model(&models.AuditLog{}), params)
}

func (s *AuditLogService) GetLogsByResource(resource string, params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	return s.findLogs(s.db.Model(&models.AuditLog{}).Where("resource = ?", resource), params)
}

func (s *AuditLogService) GetLogsByResourceID(resourceID string, params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	return s.findLogs(s.db.Model(&models.AuditLog{}).Where("resource_id = ?", resourceID), params)
}

func (s *AuditLogService) findLogs(query *gorm.DB, params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := utils.ApplyPagination(query.Order("timestamp DESC"), params).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
