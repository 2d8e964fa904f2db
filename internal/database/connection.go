// internal/database/connection.go
package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onboarding/kyc-admin/internal/config"
	"github.com/onboarding/kyc-admin/internal/models"
)

// Initialize opens a connection pool for one datastore. The service
// holds two independent pools: the admin datastore it owns and the
// upstream KYC datastore it only reads. TranslateError lets unique
// violations surface as gorm.ErrDuplicatedKey, which the review store
// relies on for its get-or-create race handling.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var gormConfig *gorm.Config

	if cfg.LogLevel == "silent" {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		}
	} else {
		gormConfig = &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Info),
			TranslateError: true,
		}
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}

// RunMigrations migrates the admin-owned schema only. The KYC schema
// belongs to the upstream system and is never touched.
func RunMigrations(adminDB *gorm.DB) error {
	log.Println("Running admin database migrations...")

	err := adminDB.AutoMigrate(
		&models.Permission{},
		&models.Profile{},
		&models.AdminUser{},
		&models.ApplicationReview{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Admin database migrations completed")
	return nil
}

// SeedInitialData bootstraps the permission catalogue, the two default
// profiles, and the default admin account. Runs only when the
// permission table is empty.
func SeedInitialData(adminDB *gorm.DB) error {
	var permissionCount int64
	if err := adminDB.Model(&models.Permission{}).Count(&permissionCount).Error; err != nil {
		return fmt.Errorf("failed to count permissions: %w", err)
	}
	if permissionCount > 0 {
		return nil
	}

	log.Println("Seeding initial data...")

	permissions := []models.Permission{
		{Name: "VIEW_APPLICATIONS", Description: "View KYC applications", Resource: "applications", Action: "read"},
		{Name: "REVIEW_APPLICATIONS", Description: "Review and update KYC applications", Resource: "applications", Action: "update"},
		{Name: "ASSIGN_APPLICATIONS", Description: "Assign applications to reviewers", Resource: "applications", Action: "assign"},
		{Name: "MANAGE_USERS", Description: "Manage admin users", Resource: "users", Action: "manage"},
		{Name: "MANAGE_PROFILES", Description: "Manage profiles and permissions", Resource: "profiles", Action: "manage"},
	}
	for i := range permissions {
		if err := adminDB.Create(&permissions[i]).Error; err != nil {
			return fmt.Errorf("failed to create permission %s: %w", permissions[i].Name, err)
		}
	}

	adminProfile := models.Profile{
		Name:        "ADMIN",
		Description: "Full system access",
		Active:      true,
		Permissions: permissions,
	}
	if err := adminDB.Create(&adminProfile).Error; err != nil {
		return fmt.Errorf("failed to create ADMIN profile: %w", err)
	}

	reviewerProfile := models.Profile{
		Name:        "REVIEWER",
		Description: "Can review and update applications",
		Active:      true,
		Permissions: []models.Permission{permissions[0], permissions[1]},
	}
	if err := adminDB.Create(&reviewerProfile).Error; err != nil {
		return fmt.Errorf("failed to create REVIEWER profile: %w", err)
	}

	admin := models.AdminUser{
		Username: "admin",
		Email:    "admin@kyc.com",
		FullName: "System Administrator",
		Active:   true,
		Profiles: []models.Profile{adminProfile},
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}
	if err := adminDB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("Initial data seeding completed")
	return nil
}
