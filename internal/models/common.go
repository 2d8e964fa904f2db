// internal/models/common.go
package models

// ApplicationStatus is the onboarding status reported by the upstream
// KYC pipeline. The upstream owns this enumeration and may add values,
// so it is treated as an open string set everywhere.
type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "DRAFT"
	ApplicationStatusSubmitted   ApplicationStatus = "SUBMITTED"
	ApplicationStatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	ApplicationStatusApproved    ApplicationStatus = "APPROVED"
	ApplicationStatusRejected    ApplicationStatus = "REJECTED"
	ApplicationStatusPendingInfo ApplicationStatus = "PENDING_INFO"
)

type EntityType string

const (
	EntityTypeIndividual EntityType = "INDIVIDUAL"
	EntityTypeCorporate  EntityType = "CORPORATE"
)

type PartyType string

const (
	PartyTypeCustomer PartyType = "CUSTOMER"
	PartyTypeProspect PartyType = "PROSPECT"
)

type PartyStatus string

const (
	PartyStatusActive   PartyStatus = "ACTIVE"
	PartyStatusInactive PartyStatus = "INACTIVE"
)
