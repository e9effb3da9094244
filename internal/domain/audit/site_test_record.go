package audit

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attachment references an uploaded file (screenshot, invoice) backing a test
type Attachment struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// SiteTest records one blind test performed against a partner's web site:
// was the promotional discount applied, at which price, under which naming.
type SiteTest struct {
	shared.BaseEntity
	ProgramID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	PartnerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	TestDate        time.Time       `gorm:"not null;index"`
	DiscountApplied bool            `gorm:"not null"`
	PublicPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountedPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ObservedNaming  string          `gorm:"type:varchar(200)"`
	CodeStacking    bool            `gorm:"not null;default:false"` // Promo codes could be combined
	Comment         string          `gorm:"type:text"`
	DiscountPct     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatorID       uuid.UUID       `gorm:"type:uuid;index"`
	Attachments     []Attachment    `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (SiteTest) TableName() string {
	return "site_tests"
}

// NewSiteTest creates a site test record with its discount percentage computed
// from the submitted price pair
func NewSiteTest(programID, partnerID, creatorID uuid.UUID, testDate time.Time, discountApplied bool, publicPrice, discountedPrice decimal.Decimal, observedNaming string, codeStacking bool, comment string) (*SiteTest, error) {
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Site test requires a program id")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Site test requires a partner id")
	}
	if publicPrice.IsNegative() || discountedPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	if testDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Site test requires a test date")
	}

	return &SiteTest{
		BaseEntity:      shared.NewBaseEntity(),
		ProgramID:       programID,
		PartnerID:       partnerID,
		TestDate:        testDate,
		DiscountApplied: discountApplied,
		PublicPrice:     publicPrice,
		DiscountedPrice: discountedPrice,
		ObservedNaming:  observedNaming,
		CodeStacking:    codeStacking,
		Comment:         comment,
		DiscountPct:     DiscountPercentage(publicPrice, discountedPrice),
		CreatorID:       creatorID,
		Attachments:     []Attachment{},
	}, nil
}

// AddAttachment appends an uploaded file reference to the test
func (t *SiteTest) AddAttachment(fileName, contentType, storageKey string, size int64) Attachment {
	att := Attachment{
		ID:          uuid.New(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		StorageKey:  storageKey,
		UploadedAt:  time.Now(),
	}
	t.Attachments = append(t.Attachments, att)
	t.UpdatedAt = time.Now()
	return att
}

// FindAttachment returns the attachment with the given id, or nil
func (t *SiteTest) FindAttachment(id uuid.UUID) *Attachment {
	for i := range t.Attachments {
		if t.Attachments[i].ID == id {
			return &t.Attachments[i]
		}
	}
	return nil
}

// DiscountPercentage computes the effective discount in percent, rounded to
// two decimals. A non-positive public price yields zero rather than an error,
// so a free or unpriced item never divides by zero.
func DiscountPercentage(publicPrice, discountedPrice decimal.Decimal) decimal.Decimal {
	if publicPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	return one.Sub(discountedPrice.Div(publicPrice)).Mul(hundred).Round(2)
}
