package audit

import (
	"time"

	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Site Test DTOs
// =============================================================================

// CreateSiteTestRequest represents a request to record a web site blind test
type CreateSiteTestRequest struct {
	ProgramID       uuid.UUID       `json:"program_id" binding:"required"`
	PartnerID       uuid.UUID       `json:"partner_id" binding:"required"`
	TestDate        time.Time       `json:"test_date" binding:"required"`
	DiscountApplied bool            `json:"discount_applied"`
	PublicPrice     decimal.Decimal `json:"public_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	ObservedNaming  string          `json:"observed_naming"`
	CodeStacking    bool            `json:"code_stacking"`
	Comment         string          `json:"comment"`
	CreatorID       uuid.UUID       `json:"-"` // Set from JWT context, not from request body
}

// SiteTestResponse represents a site test in API responses
type SiteTestResponse struct {
	ID              uuid.UUID            `json:"id"`
	ProgramID       uuid.UUID            `json:"program_id"`
	PartnerID       uuid.UUID            `json:"partner_id"`
	TestDate        time.Time            `json:"test_date"`
	DiscountApplied bool                 `json:"discount_applied"`
	PublicPrice     decimal.Decimal      `json:"public_price"`
	DiscountedPrice decimal.Decimal      `json:"discounted_price"`
	ObservedNaming  string               `json:"observed_naming"`
	CodeStacking    bool                 `json:"code_stacking"`
	Comment         string               `json:"comment"`
	DiscountPct     decimal.Decimal      `json:"discount_pct"`
	CreatorID       uuid.UUID            `json:"creator_id"`
	Attachments     []AttachmentResponse `json:"attachments"`
	AlertsRaised    int                  `json:"alerts_raised"`
	CreatedAt       time.Time            `json:"created_at"`
}

// ToSiteTestResponse converts a domain site test to a response DTO
func ToSiteTestResponse(t *audit.SiteTest) SiteTestResponse {
	return SiteTestResponse{
		ID:              t.ID,
		ProgramID:       t.ProgramID,
		PartnerID:       t.PartnerID,
		TestDate:        t.TestDate,
		DiscountApplied: t.DiscountApplied,
		PublicPrice:     t.PublicPrice,
		DiscountedPrice: t.DiscountedPrice,
		ObservedNaming:  t.ObservedNaming,
		CodeStacking:    t.CodeStacking,
		Comment:         t.Comment,
		DiscountPct:     t.DiscountPct,
		CreatorID:       t.CreatorID,
		Attachments:     ToAttachmentResponses(t.Attachments),
		CreatedAt:       t.CreatedAt,
	}
}

// ToSiteTestResponses converts a list of site tests
func ToSiteTestResponses(tests []audit.SiteTest) []SiteTestResponse {
	responses := make([]SiteTestResponse, len(tests))
	for i := range tests {
		responses[i] = ToSiteTestResponse(&tests[i])
	}
	return responses
}

// =============================================================================
// Line Test DTOs
// =============================================================================

// CreateLineTestRequest represents a request to record a phone line blind test
type CreateLineTestRequest struct {
	ProgramID          uuid.UUID `json:"program_id" binding:"required"`
	PartnerID          uuid.UUID `json:"partner_id" binding:"required"`
	TestDate           time.Time `json:"test_date" binding:"required"`
	PhoneNumber        string    `json:"phone_number" binding:"required"`
	DedicatedVoicemail bool      `json:"dedicated_voicemail"`
	DedicatedPickup    bool      `json:"dedicated_pickup"`
	HoldTime           string    `json:"hold_time" binding:"required"`
	AdvisorName        string    `json:"advisor_name"`
	Rating             string    `json:"rating" binding:"required,oneof=Excellent Bien Moyen Médiocre"`
	OfferApplied       bool      `json:"offer_applied"`
	Comment            string    `json:"comment"`
	CreatorID          uuid.UUID `json:"-"` // Set from JWT context, not from request body
}

// LineTestResponse represents a line test in API responses
type LineTestResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProgramID          uuid.UUID `json:"program_id"`
	PartnerID          uuid.UUID `json:"partner_id"`
	TestDate           time.Time `json:"test_date"`
	PhoneNumber        string    `json:"phone_number"`
	DedicatedVoicemail bool      `json:"dedicated_voicemail"`
	DedicatedPickup    bool      `json:"dedicated_pickup"`
	HoldTime           string    `json:"hold_time"`
	AdvisorName        string    `json:"advisor_name"`
	Rating             string    `json:"rating"`
	OfferApplied       bool      `json:"offer_applied"`
	Comment            string    `json:"comment"`
	CreatorID          uuid.UUID `json:"creator_id"`
	AlertsRaised       int       `json:"alerts_raised"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToLineTestResponse converts a domain line test to a response DTO
func ToLineTestResponse(t *audit.LineTest) LineTestResponse {
	return LineTestResponse{
		ID:                 t.ID,
		ProgramID:          t.ProgramID,
		PartnerID:          t.PartnerID,
		TestDate:           t.TestDate,
		PhoneNumber:        t.PhoneNumber,
		DedicatedVoicemail: t.DedicatedVoicemail,
		DedicatedPickup:    t.DedicatedPickup,
		HoldTime:           t.HoldTime,
		AdvisorName:        t.AdvisorName,
		Rating:             string(t.Rating),
		OfferApplied:       t.OfferApplied,
		Comment:            t.Comment,
		CreatorID:          t.CreatorID,
		CreatedAt:          t.CreatedAt,
	}
}

// ToLineTestResponses converts a list of line tests
func ToLineTestResponses(tests []audit.LineTest) []LineTestResponse {
	responses := make([]LineTestResponse, len(tests))
	for i := range tests {
		responses[i] = ToLineTestResponse(&tests[i])
	}
	return responses
}

// =============================================================================
// Listing and Attachment DTOs
// =============================================================================

// ListTestsQuery narrows test listings from query parameters
type ListTestsQuery struct {
	ProgramID *uuid.UUID `form:"program_id"`
	PartnerID *uuid.UUID `form:"partner_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

func (q ListTestsQuery) toTestQuery() audit.TestQuery {
	var query audit.TestQuery
	if q.ProgramID != nil {
		query.ProgramID = *q.ProgramID
	}
	if q.PartnerID != nil {
		query.PartnerID = *q.PartnerID
	}
	if q.From != nil {
		query.From = *q.From
	}
	if q.To != nil {
		query.To = *q.To
	}
	return query
}

// InitiateAttachmentRequest represents a request to attach a file to a test
type InitiateAttachmentRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	Size        int64  `json:"size" binding:"required,gt=0"`
}

// InitiateAttachmentResponse carries the presigned upload URL for the new attachment
type InitiateAttachmentResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	UploadURL  string             `json:"upload_url"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

// AttachmentResponse represents a test attachment in API responses
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// AttachmentDownloadResponse carries the presigned download URL for an attachment
type AttachmentDownloadResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToAttachmentResponse converts a domain attachment to a response DTO
func ToAttachmentResponse(a audit.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		Size:        a.Size,
		UploadedAt:  a.UploadedAt,
	}
}

// ToAttachmentResponses converts a list of attachments
func ToAttachmentResponses(attachments []audit.Attachment) []AttachmentResponse {
	responses := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = ToAttachmentResponse(attachments[i])
	}
	return responses
}
