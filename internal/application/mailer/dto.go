package mailer

import (
	"time"

	"github.com/blindtest/backend/internal/domain/mailer"
	"github.com/google/uuid"
)

// =============================================================================
// Template DTOs
// =============================================================================

// CreateTemplateRequest represents a request to create an email template
type CreateTemplateRequest struct {
	Name            string `json:"name" binding:"required"`
	SubjectTemplate string `json:"subject_template" binding:"required"`
	BodyTemplate    string `json:"body_template" binding:"required"`
	IsDefault       bool   `json:"is_default"`
}

// UpdateTemplateRequest represents a request to update an email template
type UpdateTemplateRequest struct {
	Name            string `json:"name" binding:"required"`
	SubjectTemplate string `json:"subject_template" binding:"required"`
	BodyTemplate    string `json:"body_template" binding:"required"`
}

// TemplateResponse represents a template in API responses
type TemplateResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	SubjectTemplate string    `json:"subject_template"`
	BodyTemplate    string    `json:"body_template"`
	IsDefault       bool      `json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToTemplateResponse converts a domain template to a response DTO
func ToTemplateResponse(t *mailer.EmailTemplate) TemplateResponse {
	return TemplateResponse{
		ID:              t.ID,
		Name:            t.Name,
		SubjectTemplate: t.SubjectTemplate,
		BodyTemplate:    t.BodyTemplate,
		IsDefault:       t.IsDefault,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// ToTemplateResponses converts a list of templates
func ToTemplateResponses(templates []mailer.EmailTemplate) []TemplateResponse {
	responses := make([]TemplateResponse, len(templates))
	for i := range templates {
		responses[i] = ToTemplateResponse(&templates[i])
	}
	return responses
}

// =============================================================================
// Draft DTOs
// =============================================================================

// UpdateDraftRequest represents a request to edit a draft before sending
type UpdateDraftRequest struct {
	Subject   string `json:"subject" binding:"required"`
	Body      string `json:"body" binding:"required"`
	Recipient string `json:"recipient" binding:"required,email"`
}

// SendDraftRequest represents a request to send a draft, optionally with a
// signature appended below the body
type SendDraftRequest struct {
	SignatureID *uuid.UUID `json:"signature_id"`
}

// DraftResponse represents a draft in API responses
type DraftResponse struct {
	ID         uuid.UUID  `json:"id"`
	AlertID    uuid.UUID  `json:"alert_id"`
	TemplateID *uuid.UUID `json:"template_id"`
	Subject    string     `json:"subject"`
	Body       string     `json:"body"`
	Recipient  string     `json:"recipient"`
	Status     string     `json:"status"`
	SentAt     *time.Time `json:"sent_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToDraftResponse converts a domain draft to a response DTO
func ToDraftResponse(d *mailer.EmailDraft) DraftResponse {
	return DraftResponse{
		ID:         d.ID,
		AlertID:    d.AlertID,
		TemplateID: d.TemplateID,
		Subject:    d.Subject,
		Body:       d.Body,
		Recipient:  d.Recipient,
		Status:     string(d.Status),
		SentAt:     d.SentAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// ToDraftResponses converts a list of drafts
func ToDraftResponses(drafts []mailer.EmailDraft) []DraftResponse {
	responses := make([]DraftResponse, len(drafts))
	for i := range drafts {
		responses[i] = ToDraftResponse(&drafts[i])
	}
	return responses
}

// =============================================================================
// History DTOs
// =============================================================================

// HistoryResponse represents one send attempt in API responses
type HistoryResponse struct {
	ID           uuid.UUID `json:"id"`
	AlertID      uuid.UUID `json:"alert_id"`
	DraftID      uuid.UUID `json:"draft_id"`
	Recipient    string    `json:"recipient"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Outcome      string    `json:"outcome"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

// ToHistoryResponse converts a domain history row to a response DTO
func ToHistoryResponse(h *mailer.EmailHistory) HistoryResponse {
	return HistoryResponse{
		ID:           h.ID,
		AlertID:      h.AlertID,
		DraftID:      h.DraftID,
		Recipient:    h.Recipient,
		Subject:      h.Subject,
		Body:         h.Body,
		Outcome:      string(h.Outcome),
		ErrorMessage: h.ErrorMessage,
		SentAt:       h.SentAt,
	}
}

// ToHistoryResponses converts a list of history rows
func ToHistoryResponses(rows []mailer.EmailHistory) []HistoryResponse {
	responses := make([]HistoryResponse, len(rows))
	for i := range rows {
		responses[i] = ToHistoryResponse(&rows[i])
	}
	return responses
}

// =============================================================================
// Signature DTOs
// =============================================================================

// SignatureRequest represents a request to create or update a signature
type SignatureRequest struct {
	Name    string `json:"name" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// SignatureResponse represents a signature in API responses
type SignatureResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToSignatureResponse converts a domain signature to a response DTO
func ToSignatureResponse(s *mailer.Signature) SignatureResponse {
	return SignatureResponse{
		ID:        s.ID,
		Name:      s.Name,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ToSignatureResponses converts a list of signatures
func ToSignatureResponses(signatures []mailer.Signature) []SignatureResponse {
	responses := make([]SignatureResponse, len(signatures))
	for i := range signatures {
		responses[i] = ToSignatureResponse(&signatures[i])
	}
	return responses
}
