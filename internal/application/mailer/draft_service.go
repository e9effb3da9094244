package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertResolver closes the loop back to the alert lifecycle once a draft went
// out. Implemented by the alert application service.
type AlertResolver interface {
	ResolveViaSend(ctx context.Context, alertID uuid.UUID) error
}

// DraftService composes, edits and sends alert emails
type DraftService struct {
	draftRepo     mailer.DraftRepository
	historyRepo   mailer.HistoryRepository
	signatureRepo mailer.SignatureRepository
	templates     *TemplateService
	programRepo   program.ProgramRepository
	partnerRepo   program.PartnerRepository
	siteTestRepo  audit.SiteTestRepository
	lineTestRepo  audit.LineTestRepository
	sender        mailer.Sender
	alertResolver AlertResolver
	logger        *zap.Logger
}

// NewDraftService creates a new DraftService
func NewDraftService(
	draftRepo mailer.DraftRepository,
	historyRepo mailer.HistoryRepository,
	signatureRepo mailer.SignatureRepository,
	templates *TemplateService,
	programRepo program.ProgramRepository,
	partnerRepo program.PartnerRepository,
	siteTestRepo audit.SiteTestRepository,
	lineTestRepo audit.LineTestRepository,
	sender mailer.Sender,
	logger *zap.Logger,
) *DraftService {
	return &DraftService{
		draftRepo:     draftRepo,
		historyRepo:   historyRepo,
		signatureRepo: signatureRepo,
		templates:     templates,
		programRepo:   programRepo,
		partnerRepo:   partnerRepo,
		siteTestRepo:  siteTestRepo,
		lineTestRepo:  lineTestRepo,
		sender:        sender,
		logger:        logger,
	}
}

// SetAlertResolver wires the alert lifecycle callback. Set after construction
// because the alert service and the draft service reference each other.
func (s *DraftService) SetAlertResolver(resolver AlertResolver) {
	s.alertResolver = resolver
}

// ComposeForAlert renders the default template against the alert's related
// program, partner and source test, and stores the result as an editable
// draft. A partner without a contact email yields no draft and no error; the
// alert itself already carries the finding.
func (s *DraftService) ComposeForAlert(ctx context.Context, a *alert.Alert) error {
	p, err := s.partnerRepo.FindByID(ctx, a.PartnerID)
	if err != nil {
		return err
	}
	if !p.HasContactEmail() {
		s.logger.Info("Skipping draft composition, partner has no contact email",
			zap.String("alert_id", a.ID.String()),
			zap.String("partner_id", a.PartnerID.String()))
		return nil
	}

	values := mailer.TemplateValues{
		Description:      a.Description,
		SiteChannel:      a.TestType == alert.TestTypeSite,
		ExpectedDiscount: p.ExpectedDiscount,
		ContactEmail:     p.ContactEmail,
	}

	if prog, err := s.programRepo.FindByID(ctx, a.ProgramID); err == nil {
		values.ProgramName = prog.Name
	} else {
		s.logger.Warn("Program lookup failed during draft composition",
			zap.String("program_id", a.ProgramID.String()),
			zap.Error(err))
	}

	values.TestDate = s.testDate(ctx, a)

	tpl, err := s.templates.Default(ctx)
	if err != nil {
		return err
	}

	subject, body := mailer.Compose(tpl, values)

	draft, err := mailer.NewEmailDraft(a.ID, &tpl.ID, subject, body, p.ContactEmail)
	if err != nil {
		return err
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return err
	}

	s.logger.Info("Draft composed for alert",
		zap.String("alert_id", a.ID.String()),
		zap.String("draft_id", draft.ID.String()),
		zap.String("recipient", draft.Recipient))
	return nil
}

// GetByID retrieves a draft by ID
func (s *DraftService) GetByID(ctx context.Context, id uuid.UUID) (*DraftResponse, error) {
	d, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToDraftResponse(d)
	return &response, nil
}

// List retrieves drafts
func (s *DraftService) List(ctx context.Context, filter shared.Filter) ([]DraftResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	drafts, err := s.draftRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToDraftResponses(drafts), nil
}

// ListByAlert retrieves the drafts composed for an alert
func (s *DraftService) ListByAlert(ctx context.Context, alertID uuid.UUID) ([]DraftResponse, error) {
	drafts, err := s.draftRepo.FindByAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}

	return ToDraftResponses(drafts), nil
}

// Update edits a draft's content before sending
func (s *DraftService) Update(ctx context.Context, id uuid.UUID, req UpdateDraftRequest) (*DraftResponse, error) {
	d, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := d.Edit(req.Subject, req.Body, req.Recipient); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDraftResponse(d)
	return &response, nil
}

// Delete deletes an unsent draft. Sent drafts stay for the audit trail.
func (s *DraftService) Delete(ctx context.Context, id uuid.UUID) error {
	d, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d.IsSent() {
		return shared.NewDomainError("INVALID_STATE", "A sent draft cannot be deleted")
	}
	return s.draftRepo.Delete(ctx, id)
}

// Send delivers the draft over SMTP, appending the chosen signature below
// the body. Every attempt that reaches the relay leaves a history row; an
// already-sent draft is rejected before any delivery attempt and leaves
// none. A successful send resolves the owning alert.
func (s *DraftService) Send(ctx context.Context, id uuid.UUID, req SendDraftRequest) (*DraftResponse, error) {
	d, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsSent() {
		return nil, shared.NewDomainError("INVALID_STATE", "Draft has already been sent")
	}

	body := d.Body
	if req.SignatureID != nil {
		sig, err := s.signatureRepo.FindByID(ctx, *req.SignatureID)
		if err != nil {
			return nil, err
		}
		body = body + "\n\n" + sig.Content
	}

	if err := s.sender.Send(ctx, d.Recipient, d.Subject, body); err != nil {
		s.recordAttempt(ctx, d, mailer.SendOutcomeFailed, err.Error())
		s.logger.Error("Draft send failed",
			zap.String("draft_id", d.ID.String()),
			zap.String("recipient", d.Recipient),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", shared.ErrTransportFailure, err)
	}

	if err := d.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	s.recordAttempt(ctx, d, mailer.SendOutcomeSuccess, "")

	if s.alertResolver != nil {
		if err := s.alertResolver.ResolveViaSend(ctx, d.AlertID); err != nil {
			s.logger.Warn("Failed to resolve alert after send",
				zap.String("alert_id", d.AlertID.String()),
				zap.Error(err))
		}
	}

	response := ToDraftResponse(d)
	return &response, nil
}

// History retrieves send attempts, newest first
func (s *DraftService) History(ctx context.Context, filter shared.Filter) ([]HistoryResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}

	rows, err := s.historyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToHistoryResponses(rows), nil
}

// HistoryByAlert retrieves send attempts for one alert
func (s *DraftService) HistoryByAlert(ctx context.Context, alertID uuid.UUID) ([]HistoryResponse, error) {
	rows, err := s.historyRepo.FindByAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}

	return ToHistoryResponses(rows), nil
}

func (s *DraftService) recordAttempt(ctx context.Context, d *mailer.EmailDraft, outcome mailer.SendOutcome, errorMessage string) {
	h := mailer.NewEmailHistory(d, outcome, errorMessage)
	if err := s.historyRepo.Save(ctx, h); err != nil {
		s.logger.Error("Failed to record send attempt",
			zap.String("draft_id", d.ID.String()),
			zap.Error(err))
	}
}

// testDate loads the source test's date. Standalone alerts have none.
func (s *DraftService) testDate(ctx context.Context, a *alert.Alert) *time.Time {
	if a.TestID == nil {
		return nil
	}

	switch a.TestType {
	case alert.TestTypeSite:
		if t, err := s.siteTestRepo.FindByID(ctx, *a.TestID); err == nil {
			return &t.TestDate
		}
	case alert.TestTypeLine:
		if t, err := s.lineTestRepo.FindByID(ctx, *a.TestID); err == nil {
			return &t.TestDate
		}
	}

	s.logger.Warn("Source test lookup failed during draft composition",
		zap.String("alert_id", a.ID.String()),
		zap.String("test_id", a.TestID.String()))
	return nil
}
