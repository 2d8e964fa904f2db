// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/onboarding/kyc-admin/internal/config"
	"github.com/onboarding/kyc-admin/internal/handlers"
	"github.com/onboarding/kyc-admin/internal/middleware"
	"github.com/onboarding/kyc-admin/internal/services"
	"github.com/onboarding/kyc-admin/internal/utils"
)

// Permission names gating the admin surface. Seeded at first startup.
const (
	PermViewApplications   = "VIEW_APPLICATIONS"
	PermReviewApplications = "REVIEW_APPLICATIONS"
	PermAssignApplications = "ASSIGN_APPLICATIONS"
	PermManageUsers        = "MANAGE_USERS"
	PermManageProfiles     = "MANAGE_PROFILES"
)

func Initialize(kycDB, adminDB *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	auditService := services.NewAuditLogService(adminDB)
	authService := services.NewAuthService(adminDB, cfg)
	appService := services.NewApplicationService(kycDB, adminDB, auditService)
	searchService := services.NewSearchService(kycDB, adminDB, appService)
	dashboardService := services.NewDashboardService(kycDB)
	statisticsService := services.NewStatisticsService(kycDB)
	userService := services.NewAdminUserService(adminDB)
	profileService := services.NewProfileService(adminDB)
	reportService, err := services.NewReportService(cfg, appService, auditService)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize report service")
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, auditService)
	appHandler := handlers.NewApplicationHandler(appService)
	searchHandler := handlers.NewSearchHandler(searchService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, statisticsService)
	userHandler := handlers.NewAdminUserHandler(userService, auditService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)
	reportHandler := handlers.NewReportHandler(reportService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Total-Count", "X-Page", "X-Per-Page", "X-Total-Pages"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Application routes
		applications := v1.Group("/applications")
		applications.Use(middleware.AuthRequired())
		{
			view := applications.Group("")
			view.Use(middleware.PermissionRequired(authService, PermViewApplications))
			{
				view.GET("", appHandler.GetApplications)
				view.GET("/search", searchHandler.SearchApplications)
				view.GET("/status/:status", appHandler.GetApplicationsByStatus)
				view.GET("/:id", appHandler.GetApplication)
			}

			applications.PUT("/:id/status",
				middleware.PermissionRequired(authService, PermReviewApplications),
				appHandler.UpdateStatus)
			applications.PUT("/:id/assign",
				middleware.PermissionRequired(authService, PermAssignApplications),
				appHandler.Assign)
		}

		// Dashboard and statistics
		dashboard := v1.Group("/dashboard")
		dashboard.Use(middleware.AuthRequired(), middleware.PermissionRequired(authService, PermViewApplications))
		{
			dashboard.GET("/stats", dashboardHandler.GetStats)
		}

		statistics := v1.Group("/statistics")
		statistics.Use(middleware.AuthRequired(), middleware.PermissionRequired(authService, PermViewApplications))
		{
			statistics.GET("", dashboardHandler.GetStatistics)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired())
		{
			// Admin account management
			adminUsers := admin.Group("/users")
			adminUsers.Use(middleware.PermissionRequired(authService, PermManageUsers))
			{
				adminUsers.GET("", userHandler.GetUsers)
				adminUsers.POST("", userHandler.CreateUser)
				adminUsers.GET("/:id", userHandler.GetUser)
				adminUsers.PUT("/:id/status", userHandler.UpdateUserStatus)
				adminUsers.DELETE("/:id", userHandler.DeleteUser)
			}

			// Profile and permission management
			profiles := admin.Group("/profiles")
			profiles.Use(middleware.PermissionRequired(authService, PermManageProfiles))
			{
				profiles.GET("", profileHandler.GetProfiles)
				profiles.POST("", profileHandler.CreateProfile)
				profiles.GET("/:id", profileHandler.GetProfile)
				profiles.PUT("/:id/permissions", profileHandler.UpdateProfilePermissions)
				profiles.DELETE("/:id", profileHandler.DeleteProfile)
			}

			permissions := admin.Group("/permissions")
			permissions.Use(middleware.PermissionRequired(authService, PermManageProfiles))
			{
				permissions.GET("", profileHandler.GetPermissions)
			}

			// Audit trail
			auditLogs := admin.Group("/audit-logs")
			auditLogs.Use(middleware.PermissionRequired(authService, PermViewApplications))
			{
				auditLogs.GET("", auditHandler.GetLogs)
			}

			// Reports
			reports := admin.Group("/reports")
			reports.Use(middleware.PermissionRequired(authService, PermViewApplications))
			{
				reports.POST("/applications", middleware.ExportRateLimit(), reportHandler.ExportApplications)
			}
		}
	}

	return r
}
