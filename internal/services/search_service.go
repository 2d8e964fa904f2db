// internal/services/search_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

type SearchService struct {
	kycDB   *gorm.DB
	adminDB *gorm.DB
	apps    *ApplicationService
}

// SearchRequest carries optional filters; blank fields pass through.
// All provided filters are ANDed.
type SearchRequest struct {
	Query      string `json:"query"`
	Status     string `json:"status"`
	EntityType string `json:"entity_type"`
	AssignedTo string `json:"assigned_to"`
	DateFrom   string `json:"date_from"` // YYYY-MM-DD
	DateTo     string `json:"date_to"`   // YYYY-MM-DD, inclusive
}

func NewSearchService(kycDB, adminDB *gorm.DB, apps *ApplicationService) *SearchService {
	return &SearchService{
		kycDB:   kycDB,
		adminDB: adminDB,
		apps:    apps,
	}
}

// SearchApplications filters the full customer set against the review
// overlay. The overlay is materialized into an id-keyed map once per
// request so the join stays a constant-time lookup per record.
func (s *SearchService) SearchApplications(req SearchRequest, params utils.PaginationParams) ([]ApplicationView, int64, error) {
	var customers []models.Customer
	if err := s.kycDB.Preload("PersonalInfo").Order("created_at ASC").Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	var reviews []models.ApplicationReview
	if err := s.adminDB.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	reviewMap := make(map[string]*models.ApplicationReview, len(reviews))
	for i := range reviews {
		reviewMap[reviews[i].ApplicationID] = &reviews[i]
	}

	dateFrom, dateTo, err := parseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, 0, err
	}

	filtered := customers[:0:0]
	for i := range customers {
		c := &customers[i]
		if !matchesQuery(c, req.Query) {
			continue
		}
		if !matchesStatus(c, req.Status) {
			continue
		}
		if !matchesType(c, req.EntityType) {
			continue
		}
		if !matchesAssignee(c, req.AssignedTo, reviewMap) {
			continue
		}
		if !matchesDateRange(c, dateFrom, dateTo) {
			continue
		}
		filtered = append(filtered, *c)
	}

	total := int64(len(filtered))
	start, end := utils.PageBounds(params, len(filtered))

	views := make([]ApplicationView, 0, end-start)
	for i := start; i < end; i++ {
		views = append(views, s.apps.customerToView(&filtered[i], reviewMap[filtered[i].ID]))
	}

	return views, total, nil
}

// matchesQuery does a case-insensitive substring match against the
// display name and id, and a case-sensitive one against the mobile
// number (digits carry no case). Any hit satisfies the filter.
func matchesQuery(c *models.Customer, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	lowerQuery := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.DisplayName()), lowerQuery) {
		return true
	}
	if c.Mobile != "" && strings.Contains(c.Mobile, query) {
		return true
	}
	return strings.Contains(strings.ToLower(c.ID), lowerQuery)
}

func matchesStatus(c *models.Customer, status string) bool {
	return strings.TrimSpace(status) == "" || string(c.ApplicationStatus) == status
}

func matchesType(c *models.Customer, entityType string) bool {
	return strings.TrimSpace(entityType) == "" || string(c.EntityType) == entityType
}

// matchesAssignee requires a present overlay whose assignee exactly
// equals the requested value; a record with no overlay never matches a
// non-blank assignee filter.
func matchesAssignee(c *models.Customer, assignee string, reviewMap map[string]*models.ApplicationReview) bool {
	if strings.TrimSpace(assignee) == "" {
		return true
	}
	review := reviewMap[c.ID]
	return review != nil && review.AssignedTo != nil && *review.AssignedTo == assignee
}

func matchesDateRange(c *models.Customer, from, to *time.Time) bool {
	if from != nil && c.CreatedAt.Before(*from) {
		return false
	}
	if to != nil && !c.CreatedAt.Before(*to) {
		return false
	}
	return true
}

func parseDateRange(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time

	if strings.TrimSpace(fromStr) != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_from %q: %w", fromStr, err)
		}
		from = &t
	}

	if strings.TrimSpace(toStr) != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid date_to %q: %w", toStr, err)
		}
		// inclusive end date: records up to the end of that day match
		endExclusive := t.AddDate(0, 0, 1)
		to = &endExclusive
	}

	return from, to, nil
}
