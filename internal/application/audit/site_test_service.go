package audit

import (
	"context"
	"fmt"
	"time"

	alertapp "github.com/blindtest/backend/internal/application/alert"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AllowedAttachmentTypes whitelists what may back a test record. Screenshots
// and invoices cover the audit trail; scripts and archives stay out.
var AllowedAttachmentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// MaxAttachmentsPerTest bounds how many files one test record can carry
const MaxAttachmentsPerTest = 10

// AlertRaiser opens a compliance alert for a finding detected on a test
type AlertRaiser interface {
	Create(ctx context.Context, req alertapp.CreateAlertRequest) (*alertapp.AlertResponse, error)
}

// ObjectStorageService defines the interface for attachment storage operations.
// Implemented by the infrastructure layer (S3 or local disk).
type ObjectStorageService interface {
	// GenerateUploadURL generates a presigned URL for uploading a file
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, storageKey string) error
}

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 1 * time.Hour
)

// SiteTestService handles web site blind test operations
type SiteTestService struct {
	siteTestRepo audit.SiteTestRepository
	partnerRepo  program.PartnerRepository
	alerts       AlertRaiser
	storage      ObjectStorageService
	logger       *zap.Logger
}

// NewSiteTestService creates a new SiteTestService
func NewSiteTestService(
	siteTestRepo audit.SiteTestRepository,
	partnerRepo program.PartnerRepository,
	alerts AlertRaiser,
	storage ObjectStorageService,
	logger *zap.Logger,
) *SiteTestService {
	return &SiteTestService{
		siteTestRepo: siteTestRepo,
		partnerRepo:  partnerRepo,
		alerts:       alerts,
		storage:      storage,
		logger:       logger,
	}
}

// Create records a site test, runs the compliance rules against it and opens
// one alert per finding. The test is persisted even when alert creation
// fails; a lost alert is recoverable, a lost test is not.
func (s *SiteTestService) Create(ctx context.Context, req CreateSiteTestRequest) (*SiteTestResponse, error) {
	t, err := audit.NewSiteTest(req.ProgramID, req.PartnerID, req.CreatorID, req.TestDate,
		req.DiscountApplied, req.PublicPrice, req.DiscountedPrice, req.ObservedNaming, req.CodeStacking, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.siteTestRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	findings := audit.EvaluateSiteTest(t, s.partnerThreshold(ctx, req.PartnerID))
	raised := s.raiseAlerts(ctx, t.ID, "site", findings, t.ProgramID, t.PartnerID, t.CreatorID)

	response := ToSiteTestResponse(t)
	response.AlertsRaised = raised
	return &response, nil
}

// GetByID retrieves a site test by ID
func (s *SiteTestService) GetByID(ctx context.Context, id uuid.UUID) (*SiteTestResponse, error) {
	t, err := s.siteTestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToSiteTestResponse(t)
	return &response, nil
}

// List retrieves site tests matching the query
func (s *SiteTestService) List(ctx context.Context, query ListTestsQuery, filter shared.Filter) ([]SiteTestResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	q := query.toTestQuery()
	tests, err := s.siteTestRepo.FindAll(ctx, q, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.siteTestRepo.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	return ToSiteTestResponses(tests), total, nil
}

// ListForUser retrieves site tests visible to the given user. Viewer roles
// are restricted to their scope regardless of the submitted query.
func (s *SiteTestService) ListForUser(ctx context.Context, actor *identity.User, query ListTestsQuery, filter shared.Filter) ([]SiteTestResponse, int64, error) {
	if err := scopeQuery(actor, &query); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, query, filter)
}

// Delete permanently removes a site test and its stored attachments
func (s *SiteTestService) Delete(ctx context.Context, id uuid.UUID) error {
	t, err := s.siteTestRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	for _, att := range t.Attachments {
		if s.storage == nil {
			break
		}
		if err := s.storage.DeleteObject(ctx, att.StorageKey); err != nil {
			s.logger.Warn("Failed to delete attachment object",
				zap.String("storage_key", att.StorageKey),
				zap.Error(err))
		}
	}

	return s.siteTestRepo.Delete(ctx, id)
}

// InitiateAttachment records a new attachment on the test and returns a
// presigned URL the client uploads the file to
func (s *SiteTestService) InitiateAttachment(ctx context.Context, testID uuid.UUID, req InitiateAttachmentRequest) (*InitiateAttachmentResponse, error) {
	if !AllowedAttachmentTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "File type is not allowed")
	}

	t, err := s.siteTestRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if len(t.Attachments) >= MaxAttachmentsPerTest {
		return nil, shared.NewDomainError("TOO_MANY_ATTACHMENTS", "Attachment limit reached for this test")
	}

	storageKey := fmt.Sprintf("site-tests/%s/%s-%s", testID, uuid.New(), req.FileName)
	att := t.AddAttachment(req.FileName, req.ContentType, storageKey, req.Size)

	uploadURL, expiresAt, err := s.storage.GenerateUploadURL(ctx, storageKey, req.ContentType, uploadURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.siteTestRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	return &InitiateAttachmentResponse{
		Attachment: ToAttachmentResponse(att),
		UploadURL:  uploadURL,
		ExpiresAt:  expiresAt,
	}, nil
}

// AttachmentDownloadURL returns a presigned download URL for an attachment
func (s *SiteTestService) AttachmentDownloadURL(ctx context.Context, testID, attachmentID uuid.UUID) (*AttachmentDownloadResponse, error) {
	t, err := s.siteTestRepo.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	att := t.FindAttachment(attachmentID)
	if att == nil {
		return nil, shared.ErrNotFound
	}

	downloadURL, expiresAt, err := s.storage.GenerateDownloadURL(ctx, att.StorageKey, downloadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &AttachmentDownloadResponse{DownloadURL: downloadURL, ExpiresAt: expiresAt}, nil
}

// partnerThreshold loads the partner's contractual minimum discount. Lookup
// failure degrades to no threshold so the other rules still run.
func (s *SiteTestService) partnerThreshold(ctx context.Context, partnerID uuid.UUID) *decimal.Decimal {
	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		s.logger.Warn("Partner lookup failed during compliance evaluation",
			zap.String("partner_id", partnerID.String()),
			zap.Error(err))
		return nil
	}
	return p.ExpectedDiscount
}

func (s *SiteTestService) raiseAlerts(ctx context.Context, testID uuid.UUID, testType string, findings []audit.Finding, programID, partnerID, creatorID uuid.UUID) int {
	if s.alerts == nil {
		return 0
	}

	raised := 0
	for _, finding := range findings {
		_, err := s.alerts.Create(ctx, alertapp.CreateAlertRequest{
			TestID:      &testID,
			TestType:    testType,
			Description: finding.Description,
			ProgramID:   programID,
			PartnerID:   partnerID,
			CreatorID:   creatorID,
		})
		if err != nil {
			s.logger.Warn("Failed to raise compliance alert",
				zap.String("test_id", testID.String()),
				zap.String("description", finding.Description),
				zap.Error(err))
			continue
		}
		raised++
	}
	return raised
}

func scopeQuery(actor *identity.User, query *ListTestsQuery) error {
	if !actor.IsViewer() {
		return nil
	}
	if !actor.ScopeReady() {
		return shared.ErrForbidden
	}
	switch actor.Role {
	case identity.RoleProgramViewer:
		query.ProgramID = actor.ProgramID
	case identity.RolePartnerViewer:
		query.PartnerID = actor.PartnerID
	}
	return nil
}
