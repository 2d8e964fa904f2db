// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment   string
	Server        ServerConfig
	AdminDatabase DatabaseConfig
	KycDatabase   DatabaseConfig
	JWT           JWTConfig
	AWS           AWSConfig
	Export        ExportConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL int // in hours
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
}

type ExportConfig struct {
	LocalDir string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			CORSOrigins:  []string{getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")},
		},
		AdminDatabase: DatabaseConfig{
			Host:         getEnv("ADMIN_DB_HOST", "localhost"),
			Port:         getEnv("ADMIN_DB_PORT", "5432"),
			User:         getEnv("ADMIN_DB_USER", "postgres"),
			Password:     getEnv("ADMIN_DB_PASSWORD", ""),
			Database:     getEnv("ADMIN_DB_NAME", "kyc_admin"),
			SSLMode:      getEnv("ADMIN_DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("ADMIN_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("ADMIN_DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("ADMIN_DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("ADMIN_DB_LOG_LEVEL", "silent"),
		},
		KycDatabase: DatabaseConfig{
			Host:         getEnv("KYC_DB_HOST", "localhost"),
			Port:         getEnv("KYC_DB_PORT", "5432"),
			User:         getEnv("KYC_DB_USER", "postgres"),
			Password:     getEnv("KYC_DB_PASSWORD", ""),
			Database:     getEnv("KYC_DB_NAME", "kyc_onboarding"),
			SSLMode:      getEnv("KYC_DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("KYC_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("KYC_DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("KYC_DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("KYC_DB_LOG_LEVEL", "silent"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenTTL: getEnvAsInt("JWT_ACCESS_TTL", 24), // 24 hours
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "kyc-admin-exports"),
		},
		Export: ExportConfig{
			LocalDir: getEnv("EXPORT_LOCAL_DIR", "./exports"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.JWT.SecretKey == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.AdminDatabase.Password == "" && c.Environment == "production" {
		return fmt.Errorf("admin database password is required in production")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
