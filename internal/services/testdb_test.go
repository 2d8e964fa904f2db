// internal/services/testdb_test.go
package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/onboarding/kyc-admin/internal/models"
)

// openTestDB opens an isolated in-memory database. MaxOpenConns is
// pinned to 1 because every new connection to :memory: would see its
// own empty database.
func openTestDB(t *testing.T, migrations ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(migrations...))
	return db
}

// newKycTestDB mimics the upstream onboarding schema. The real service
// never migrates that schema; tests have to stand it up themselves.
func newKycTestDB(t *testing.T) *gorm.DB {
	return openTestDB(t, &models.PersonalInfo{}, &models.Customer{})
}

func newAdminTestDB(t *testing.T) *gorm.DB {
	return openTestDB(t,
		&models.Permission{},
		&models.Profile{},
		&models.AdminUser{},
		&models.ApplicationReview{},
		&models.AuditLog{},
	)
}

type customerSeed struct {
	ID          string
	FirstName   string
	LastName    string
	Username    string
	Mobile      string
	Status      models.ApplicationStatus
	EntityType  models.EntityType
	CurrentStep int
	CreatedAt   time.Time
}

func seedCustomer(t *testing.T, db *gorm.DB, seed customerSeed) {
	t.Helper()

	customer := models.Customer{
		ID:                seed.ID,
		Username:          seed.Username,
		Mobile:            seed.Mobile,
		ApplicationStatus: seed.Status,
		EntityType:        seed.EntityType,
		CurrentStep:       seed.CurrentStep,
		CreatedAt:         seed.CreatedAt,
	}
	if customer.ApplicationStatus == "" {
		customer.ApplicationStatus = models.ApplicationStatusSubmitted
	}
	if customer.EntityType == "" {
		customer.EntityType = models.EntityTypeIndividual
	}
	if customer.CurrentStep == 0 {
		customer.CurrentStep = 1
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}

	if seed.FirstName != "" || seed.LastName != "" {
		info := models.PersonalInfo{
			ID:        seed.ID + "-pi",
			FirstName: seed.FirstName,
			LastName:  seed.LastName,
		}
		require.NoError(t, db.Create(&info).Error)
		customer.PersonalInfoID = &info.ID
		customer.PersonalInfo = &info
	}

	require.NoError(t, db.Create(&customer).Error)
}
