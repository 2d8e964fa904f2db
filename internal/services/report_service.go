// internal/services/report_service.go
package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/onboarding/kyc-admin/internal/config"
	"github.com/onboarding/kyc-admin/internal/utils"
)

// ReportService exports the consolidated application set as CSV. With
// AWS credentials configured the file lands in S3; otherwise it is
// written under the local export directory.
type ReportService struct {
	s3Client *s3.S3
	config   *config.Config
	apps     *ApplicationService
	audit    *AuditLogService
}

type ExportResult struct {
	Location string `json:"location"`
	Key      string `json:"key"`
	Rows     int    `json:"rows"`
	Size     int64  `json:"size"`
}

func NewReportService(cfg *config.Config, apps *ApplicationService, audit *AuditLogService) (*ReportService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// local export only
		return &ReportService{config: cfg, apps: apps, audit: audit}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ReportService{
		s3Client: s3.New(sess),
		config:   cfg,
		apps:     apps,
		audit:    audit,
	}, nil
}

// ExportApplications writes every unified application view to a CSV
// file and records the export in the audit trail.
func (s *ReportService) ExportApplications(actor Actor) (*ExportResult, error) {
	views, _, err := s.apps.GetAllApplications(utils.PaginationParams{Page: 0, Size: exportPageSize})
	if err != nil {
		return nil, err
	}

	data, err := renderCSV(views)
	if err != nil {
		return nil, err
	}

	key := s.generateKey()

	var result *ExportResult
	if s.s3Client != nil {
		result, err = s.uploadToS3(data, key)
	} else {
		result, err = s.writeToLocal(data, key)
	}
	if err != nil {
		return nil, err
	}
	result.Rows = len(views)

	s.audit.Log(actor, "EXPORT", "KYC_APPLICATION", "",
		fmt.Sprintf("Exported %d applications to %s", len(views), result.Location))

	return result, nil
}

// exportPageSize caps a single export; large enough to cover the whole
// upstream set in practice.
const exportPageSize = 100000

func renderCSV(views []ApplicationView) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "id_number", "mobile_number", "username", "full_name",
		"application_status", "entity_type", "current_step",
		"completion_percentage", "high_risk", "assigned_to",
		"review_notes", "reviewed_at", "created_at",
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for i := range views {
		v := &views[i]
		row := []string{
			v.ID,
			v.IDNumber,
			v.MobileNumber,
			v.Username,
			v.FullName,
			string(v.ApplicationStatus),
			string(v.EntityType),
			strconv.Itoa(v.CurrentStep),
			strconv.FormatFloat(v.CompletionPercentage, 'f', 2, 64),
			strconv.FormatBool(v.HighRisk),
			stringOrEmpty(v.AssignedTo),
			stringOrEmpty(v.ReviewNotes),
			timeOrEmpty(v.ReviewedAt),
			v.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ReportService) uploadToS3(data []byte, key string) (*ExportResult, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("text/csv"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	location := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)

	return &ExportResult{
		Location: location,
		Key:      key,
		Size:     int64(len(data)),
	}, nil
}

func (s *ReportService) writeToLocal(data []byte, key string) (*ExportResult, error) {
	dir := s.config.Export.LocalDir
	if dir == "" {
		dir = "./exports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export file: %w", err)
	}

	return &ExportResult{
		Location: path,
		Key:      key,
		Size:     int64(len(data)),
	}, nil
}

func (s *ReportService) generateKey() string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("exports/applications_%s_%s.csv", timestamp, uuid.New().String()[:8])
}

func stringOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func timeOrEmpty(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}
