// internal/services/statistics_service.go
package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
)

type StatisticsService struct {
	kycDB *gorm.DB
}

type Statistics struct {
	StatusDistribution          map[string]int64 `json:"status_distribution"`
	TypeDistribution            map[string]int64 `json:"type_distribution"`
	DailySubmissions            map[string]int64 `json:"daily_submissions"`
	MonthlySubmissions          map[string]int64 `json:"monthly_submissions"`
	AverageCompletionPercentage float64          `json:"average_completion_percentage"`
	TotalApplications           int64            `json:"total_applications"`
}

const (
	dailyWindowDays    = 7
	monthlyWindowCount = 6
	daysPerMonthBucket = 30 // fixed 30-day approximation, not calendar months
)

func NewStatisticsService(kycDB *gorm.DB) *StatisticsService {
	return &StatisticsService{kycDB: kycDB}
}

// GetStatistics scans the upstream record set once and buckets it.
// Distributions get one bucket per distinct value observed — unseen
// statuses are not zero-filled. An empty set yields zeros, not errors.
func (s *StatisticsService) GetStatistics() (*Statistics, error) {
	var customers []models.Customer
	if err := s.kycDB.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	statusDistribution := make(map[string]int64)
	typeDistribution := make(map[string]int64)
	var completionSum float64

	for i := range customers {
		statusDistribution[string(customers[i].ApplicationStatus)]++
		typeDistribution[string(customers[i].EntityType)]++
		completionSum += customers[i].CompletionPercentage()
	}

	avgCompletion := 0.0
	if len(customers) > 0 {
		avgCompletion = completionSum / float64(len(customers))
	}

	return &Statistics{
		StatusDistribution:          statusDistribution,
		TypeDistribution:            typeDistribution,
		DailySubmissions:            dailySubmissions(customers, dailyWindowDays),
		MonthlySubmissions:          monthlySubmissions(customers, monthlyWindowCount),
		AverageCompletionPercentage: avgCompletion,
		TotalApplications:           int64(len(customers)),
	}, nil
}

// dailySubmissions buckets creation timestamps into the trailing N
// calendar days. Day boundaries are midnight UTC.
func dailySubmissions(customers []models.Customer, days int) map[string]int64 {
	result := make(map[string]int64, days)
	now := time.Now().UTC()

	for i := days - 1; i >= 0; i-- {
		dayStart := now.AddDate(0, 0, -i).Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24 * time.Hour)
		result[dayStart.Format("2006-01-02")] = countInWindow(customers, dayStart, dayEnd)
	}

	return result
}

// monthlySubmissions buckets the trailing M "months" using a fixed
// 30-day window per bucket rather than calendar months.
func monthlySubmissions(customers []models.Customer, months int) map[string]int64 {
	result := make(map[string]int64, months)
	now := time.Now().UTC()

	for i := months - 1; i >= 0; i-- {
		monthStart := now.AddDate(0, 0, -i*daysPerMonthBucket).Truncate(24 * time.Hour)
		monthEnd := monthStart.Add(daysPerMonthBucket * 24 * time.Hour)
		result[monthStart.Format("2006-01")] = countInWindow(customers, monthStart, monthEnd)
	}

	return result
}

func countInWindow(customers []models.Customer, start, end time.Time) int64 {
	var count int64
	for i := range customers {
		createdAt := customers[i].CreatedAt
		if createdAt.IsZero() {
			continue
		}
		if !createdAt.Before(start) && createdAt.Before(end) {
			count++
		}
	}
	return count
}
