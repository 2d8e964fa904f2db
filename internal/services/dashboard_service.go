// internal/services/dashboard_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
)

// DashboardService derives headline counts from the upstream record
// set alone; no overlay join is needed. Read-only, no side effects.
type DashboardService struct {
	kycDB *gorm.DB
}

type DashboardStats struct {
	TotalApplications       int64 `json:"total_applications"`
	SubmittedApplications   int64 `json:"submitted_applications"`
	UnderReviewApplications int64 `json:"under_review_applications"`
	ApprovedApplications    int64 `json:"approved_applications"`
	RejectedApplications    int64 `json:"rejected_applications"`
	DraftApplications       int64 `json:"draft_applications"`
	PendingInfoApplications int64 `json:"pending_info_applications"`
	TodaySubmissions        int64 `json:"today_submissions"`
	WeekSubmissions         int64 `json:"week_submissions"`
	MonthSubmissions        int64 `json:"month_submissions"`
}

func NewDashboardService(kycDB *gorm.DB) *DashboardService {
	return &DashboardService{kycDB: kycDB}
}

func (s *DashboardService) GetStats() (*DashboardStats, error) {
	var customers []models.Customer
	if err := s.kycDB.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	now := time.Now().UTC()
	startOfDay := now.Truncate(24 * time.Hour)
	startOfWeek := now.Add(-7 * 24 * time.Hour)
	startOfMonth := now.Add(-30 * 24 * time.Hour)

	stats := &DashboardStats{
		TotalApplications:       int64(len(customers)),
		SubmittedApplications:   countByStatus(customers, models.ApplicationStatusSubmitted),
		UnderReviewApplications: countByStatus(customers, models.ApplicationStatusUnderReview),
		ApprovedApplications:    countByStatus(customers, models.ApplicationStatusApproved),
		RejectedApplications:    countByStatus(customers, models.ApplicationStatusRejected),
		DraftApplications:       countByStatus(customers, models.ApplicationStatusDraft),
		PendingInfoApplications: countByStatus(customers, models.ApplicationStatusPendingInfo),
		TodaySubmissions:        countSubmissionsAfter(customers, startOfDay),
		WeekSubmissions:         countSubmissionsAfter(customers, startOfWeek),
		MonthSubmissions:        countSubmissionsAfter(customers, startOfMonth),
	}

	return stats, nil
}

func countByStatus(customers []models.Customer, status models.ApplicationStatus) int64 {
	var count int64
	for i := range customers {
		if customers[i].ApplicationStatus == status {
			count++
		}
	}
	return count
}

func countSubmissionsAfter(customers []models.Customer, after time.Time) int64 {
	var count int64
	for i := range customers {
		if !customers[i].CreatedAt.IsZero() && customers[i].CreatedAt.After(after) {
			count++
		}
	}
	return count
}
