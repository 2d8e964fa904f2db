// internal/services/application_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/models"
	"github.com/onboarding/kyc-admin/internal/utils"
)

// ApplicationService is the consolidation engine. It joins upstream
// customer records from the KYC datastore with the admin-owned review
// overlay, always by exact key lookup — the two datastores share no
// schema, no foreign keys, and no transaction scope. Mutations write
// only to the admin datastore.
type ApplicationService struct {
	kycDB   *gorm.DB
	adminDB *gorm.DB
	audit   *AuditLogService
	group   singleflight.Group
}

// ApplicationView is the unified application record exposed outward.
// The review fields are pointers so callers can tell "no overlay yet"
// apart from an overlay with blank values.
type ApplicationView struct {
	ID                   string                   `json:"id"`
	IDNumber             string                   `json:"id_number"`
	MobileNumber         string                   `json:"mobile_number"`
	Username             string                   `json:"username"`
	FullName             string                   `json:"full_name"`
	ApplicationStatus    models.ApplicationStatus `json:"application_status"`
	EntityType           models.EntityType        `json:"entity_type"`
	CurrentStep          int                      `json:"current_step"`
	CompletionPercentage float64                  `json:"completion_percentage"`
	HighRisk             bool                     `json:"high_risk"`
	AssignedTo           *string                  `json:"assigned_to"`
	ReviewNotes          *string                  `json:"review_notes"`
	ReviewedAt           *time.Time               `json:"reviewed_at"`
	CreatedAt            time.Time                `json:"created_at"`
}

func NewApplicationService(kycDB, adminDB *gorm.DB, audit *AuditLogService) *ApplicationService {
	return &ApplicationService{
		kycDB:   kycDB,
		adminDB: adminDB,
		audit:   audit,
	}
}

// GetAllApplications returns one page of unified views in creation
// order of the upstream store.
func (s *ApplicationService) GetAllApplications(params utils.PaginationParams) ([]ApplicationView, int64, error) {
	var total int64
	if err := s.kycDB.Model(&models.Customer{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	var customers []models.Customer
	query := s.kycDB.Preload("PersonalInfo").Order("created_at ASC")
	if err := utils.ApplyPagination(query, params).Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	views, err := s.toViews(customers)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// GetApplicationsByStatus filters on the exact status value before
// pagination; the returned total reflects the filtered set.
func (s *ApplicationService) GetApplicationsByStatus(status string, params utils.PaginationParams) ([]ApplicationView, int64, error) {
	var customers []models.Customer
	if err := s.kycDB.Preload("PersonalInfo").
		Where("application_status = ?", status).
		Order("created_at ASC").
		Find(&customers).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	total := int64(len(customers))
	start, end := utils.PageBounds(params, len(customers))

	views, err := s.toViews(customers[start:end])
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *ApplicationService) GetApplicationByID(id string) (*ApplicationView, error) {
	customer, err := s.findCustomer(id)
	if err != nil {
		return nil, err
	}

	review, err := s.findReview(id)
	if err != nil {
		return nil, err
	}

	view := s.customerToView(customer, review)
	return &view, nil
}

// UpdateStatus records a review decision against an application. The
// upstream status field itself is never written — the upstream system
// owns that state machine; this operation persists the reviewer's
// notes and timestamp, and audits the requested transition.
func (s *ApplicationService) UpdateStatus(actor Actor, id, status, reviewNotes string) (*ApplicationView, error) {
	customer, err := s.findCustomer(id)
	if err != nil {
		return nil, err
	}

	review, err := s.getOrCreateReview(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	review.ReviewNotes = &reviewNotes
	review.ReviewedAt = &now

	if err := s.adminDB.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.audit.Log(actor, "UPDATE_STATUS", "KYC_APPLICATION", id,
		fmt.Sprintf("Status updated to %s with notes", status))

	view := s.customerToView(customer, review)
	return &view, nil
}

// Assign sets the application's reviewer, creating the overlay on
// first touch.
func (s *ApplicationService) Assign(actor Actor, id, assignedTo string) (*ApplicationView, error) {
	customer, err := s.findCustomer(id)
	if err != nil {
		return nil, err
	}

	review, err := s.getOrCreateReview(id)
	if err != nil {
		return nil, err
	}

	oldAssignee := "unassigned"
	if review.AssignedTo != nil {
		oldAssignee = *review.AssignedTo
	}

	review.AssignedTo = &assignedTo

	if err := s.adminDB.Save(review).Error; err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	s.audit.Log(actor, "ASSIGN", "KYC_APPLICATION", id,
		fmt.Sprintf("Assigned from %s to %s", oldAssignee, assignedTo))

	view := s.customerToView(customer, review)
	return &view, nil
}

func (s *ApplicationService) findCustomer(id string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.kycDB.Preload("PersonalInfo").First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	return &customer, nil
}

func (s *ApplicationService) findReview(id string) (*models.ApplicationReview, error) {
	var review models.ApplicationReview
	err := s.adminDB.First(&review, "application_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review: %w", err)
	}
	return &review, nil
}

// getOrCreateReview guarantees at most one review row per application
// id. Concurrent first-touches in this process are collapsed by the
// singleflight group; a first-touch lost to another process hits the
// primary-key constraint and falls back to fetching the winner's row.
func (s *ApplicationService) getOrCreateReview(id string) (*models.ApplicationReview, error) {
	v, err, _ := s.group.Do(id, func() (interface{}, error) {
		if review, err := s.findReview(id); err != nil {
			return nil, err
		} else if review != nil {
			return review, nil
		}

		review := &models.ApplicationReview{ApplicationID: id}
		if err := s.adminDB.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				existing, ferr := s.findReview(id)
				if ferr != nil {
					return nil, ferr
				}
				if existing == nil {
					return nil, fmt.Errorf("review for %s vanished after duplicate-key insert", id)
				}
				return existing, nil
			}
			return nil, fmt.Errorf("failed to create review: %w", err)
		}
		return review, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ApplicationReview), nil
}

// toViews resolves the overlay for a batch of customers with a single
// keyed query instead of one round-trip per record.
func (s *ApplicationService) toViews(customers []models.Customer) ([]ApplicationView, error) {
	ids := make([]string, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	reviewMap := make(map[string]*models.ApplicationReview)
	if len(ids) > 0 {
		var reviews []models.ApplicationReview
		if err := s.adminDB.Where("application_id IN ?", ids).Find(&reviews).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch reviews: %w", err)
		}
		for i := range reviews {
			reviewMap[reviews[i].ApplicationID] = &reviews[i]
		}
	}

	views := make([]ApplicationView, len(customers))
	for i := range customers {
		views[i] = s.customerToView(&customers[i], reviewMap[customers[i].ID])
	}
	return views, nil
}

func (s *ApplicationService) customerToView(customer *models.Customer, review *models.ApplicationReview) ApplicationView {
	view := ApplicationView{
		ID:                   customer.ID,
		IDNumber:             customer.IDNumber,
		MobileNumber:         customer.Mobile,
		Username:             customer.Username,
		FullName:             customer.DisplayName(),
		ApplicationStatus:    customer.ApplicationStatus,
		EntityType:           customer.EntityType,
		CurrentStep:          customer.CurrentStep,
		CompletionPercentage: customer.CompletionPercentage(),
		HighRisk:             customer.HighRisk,
		CreatedAt:            customer.CreatedAt,
	}

	if review != nil {
		view.AssignedTo = review.AssignedTo
		view.ReviewNotes = review.ReviewNotes
		view.ReviewedAt = review.ReviewedAt
	}

	return view
}
