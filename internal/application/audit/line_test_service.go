package audit

import (
	"context"

	alertapp "github.com/blindtest/backend/internal/application/alert"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/identity"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LineTestService handles phone line blind test operations
type LineTestService struct {
	lineTestRepo audit.LineTestRepository
	alerts       AlertRaiser
	logger       *zap.Logger
}

// NewLineTestService creates a new LineTestService
func NewLineTestService(lineTestRepo audit.LineTestRepository, alerts AlertRaiser, logger *zap.Logger) *LineTestService {
	return &LineTestService{
		lineTestRepo: lineTestRepo,
		alerts:       alerts,
		logger:       logger,
	}
}

// Create records a line test, runs the compliance rules against it and opens
// one alert per finding
func (s *LineTestService) Create(ctx context.Context, req CreateLineTestRequest) (*LineTestResponse, error) {
	t, err := audit.NewLineTest(req.ProgramID, req.PartnerID, req.CreatorID, req.TestDate,
		req.PhoneNumber, req.DedicatedVoicemail, req.DedicatedPickup, req.HoldTime, req.AdvisorName,
		audit.Rating(req.Rating), req.OfferApplied, req.Comment)
	if err != nil {
		return nil, err
	}

	if err := s.lineTestRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	findings := audit.EvaluateLineTest(t)
	raised := s.raiseAlerts(ctx, t.ID, findings, t.ProgramID, t.PartnerID, t.CreatorID)

	response := ToLineTestResponse(t)
	response.AlertsRaised = raised
	return &response, nil
}

// GetByID retrieves a line test by ID
func (s *LineTestService) GetByID(ctx context.Context, id uuid.UUID) (*LineTestResponse, error) {
	t, err := s.lineTestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToLineTestResponse(t)
	return &response, nil
}

// List retrieves line tests matching the query
func (s *LineTestService) List(ctx context.Context, query ListTestsQuery, filter shared.Filter) ([]LineTestResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	q := query.toTestQuery()
	tests, err := s.lineTestRepo.FindAll(ctx, q, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.lineTestRepo.Count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	return ToLineTestResponses(tests), total, nil
}

// ListForUser retrieves line tests visible to the given user
func (s *LineTestService) ListForUser(ctx context.Context, actor *identity.User, query ListTestsQuery, filter shared.Filter) ([]LineTestResponse, int64, error) {
	if err := scopeQuery(actor, &query); err != nil {
		return nil, 0, err
	}
	return s.List(ctx, query, filter)
}

// Delete permanently removes a line test
func (s *LineTestService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.lineTestRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.lineTestRepo.Delete(ctx, id)
}

func (s *LineTestService) raiseAlerts(ctx context.Context, testID uuid.UUID, findings []audit.Finding, programID, partnerID, creatorID uuid.UUID) int {
	if s.alerts == nil {
		return 0
	}

	raised := 0
	for _, finding := range findings {
		_, err := s.alerts.Create(ctx, alertapp.CreateAlertRequest{
			TestID:      &testID,
			TestType:    "line",
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
