// internal/models/admin.go
package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminUser is an operator account. Authorization is derived from the
// assigned profiles, never stored on the account itself.
type AdminUser struct {
	ID           string     `json:"id" gorm:"primaryKey;size:36"`
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	FullName     string     `json:"full_name" gorm:"size:255"`
	Active       bool       `json:"active"`
	Profiles     []Profile  `json:"profiles,omitempty" gorm:"many2many:admin_user_profiles"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

func (u *AdminUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (u *AdminUser) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *AdminUser) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Profile is a named bundle of permissions assigned to operator
// accounts.
type Profile struct {
	ID          string       `json:"id" gorm:"primaryKey;size:36"`
	Name        string       `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string       `json:"description" gorm:"size:255"`
	Active      bool         `json:"active"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:profile_permissions"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Permission is an atomic capability tuple. Reference data, immutable
// after seeding.
type Permission struct {
	ID          string `json:"id" gorm:"primaryKey;size:36"`
	Name        string `json:"name" gorm:"uniqueIndex;size:100;not null"`
	Description string `json:"description" gorm:"size:255"`
	Resource    string `json:"resource" gorm:"size:50"`
	Action      string `json:"action" gorm:"size:50"`
}

func (Permission) TableName() string {
	return "permissions"
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AuditLog is an append-only record of admin activity. Never updated
// or deleted by this service.
type AuditLog struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	Username   *string   `json:"username" gorm:"size:50;index"`
	Action     string    `json:"action" gorm:"size:100;not null;index"`
	Resource   string    `json:"resource" gorm:"size:50;not null;index"`
	ResourceID string    `json:"resource_id" gorm:"size:100;index"`
	Details    string    `json:"details" gorm:"type:text"`
	IPAddress  *string   `json:"ip_address" gorm:"size:45"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (l *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	return nil
}
