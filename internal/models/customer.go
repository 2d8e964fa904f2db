// internal/models/customer.go
package models

import (
	"strings"
	"time"
)

// TotalOnboardingSteps is fixed by the upstream onboarding pipeline.
const TotalOnboardingSteps = 7

// Customer is the upstream onboarding record, read from the KYC
// datastore. This service never creates or deletes customers and never
// migrates their schema; the struct exists only to read the columns the
// admin view needs.
type Customer struct {
	ID       string `json:"id" gorm:"primaryKey"`
	IDNumber string `json:"id_number" gorm:"column:id_number"`
	Mobile   string `json:"mobile"`
	Username string `json:"username"`

	PartyType         PartyType         `json:"party_type" gorm:"type:varchar(20)"`
	PartyStatus       PartyStatus       `json:"party_status" gorm:"type:varchar(20)"`
	EntityType        EntityType        `json:"entity_type" gorm:"type:varchar(20)"`
	ApplicationStatus ApplicationStatus `json:"application_status" gorm:"type:varchar(30)"`

	AccountNumber  string `json:"account_number"`
	CurrentStep    int    `json:"current_step" gorm:"default:1"`
	HighRisk       bool   `json:"high_risk"`
	HighRiskReason string `json:"high_risk_reason"`

	CreatedAt time.Time `json:"created_at"`

	PersonalInfoID *string       `json:"-"`
	PersonalInfo   *PersonalInfo `json:"personal_info,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// PersonalInfo is the step record holding the applicant's name parts.
type PersonalInfo struct {
	ID         string `json:"id" gorm:"primaryKey"`
	Title      string `json:"title"`
	FirstName  string `json:"first_name"`
	SecondName string `json:"second_name"`
	LastName   string `json:"last_name"`
	FamilyName string `json:"family_name"`
}

func (PersonalInfo) TableName() string {
	return "personal_info"
}

// DisplayName joins the available name parts with single spaces.
// Falls back to the username when no name parts exist.
func (c *Customer) DisplayName() string {
	if c.PersonalInfo == nil {
		return c.Username
	}
	joined := strings.Join([]string{
		c.PersonalInfo.FirstName,
		c.PersonalInfo.SecondName,
		c.PersonalInfo.LastName,
		c.PersonalInfo.FamilyName,
	}, " ")
	name := strings.Join(strings.Fields(joined), " ")
	if name == "" {
		return c.Username
	}
	return name
}

// CompletionPercentage derives progress from the current step and the
// fixed pipeline length.
func (c *Customer) CompletionPercentage() float64 {
	return float64(c.CurrentStep) / float64(TotalOnboardingSteps) * 100.0
}
