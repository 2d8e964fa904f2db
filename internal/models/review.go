// internal/models/review.go
package models

import "time"

// ApplicationReview is the admin-owned overlay for a customer record.
// ApplicationID references customers.id in the KYC datastore; the two
// datastores are independent, so there is no foreign key — existence of
// the customer is validated at the service layer before any write.
// The primary key doubles as the uniqueness guarantee for get-or-create.
type ApplicationReview struct {
	ApplicationID string     `json:"application_id" gorm:"primaryKey"`
	AssignedTo    *string    `json:"assigned_to" gorm:"size:100"`
	ReviewNotes   *string    `json:"review_notes" gorm:"type:text"`
	ReviewedAt    *time.Time `json:"reviewed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (ApplicationReview) TableName() string {
	return "application_reviews"
}
