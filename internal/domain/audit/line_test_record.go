package audit

import (
	"strconv"
	"strings"
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Rating grades the caller experience of a phone line test.
// The values are the French labels shown in reports.
type Rating string

const (
	RatingExcellent Rating = "Excellent"
	RatingGood      Rating = "Bien"
	RatingAverage   Rating = "Moyen"
	RatingPoor      Rating = "Médiocre"
)

// LineTest records one blind test performed against a partner's phone line:
// was the offer honored, was a dedicated greeting or pickup in place.
type LineTest struct {
	shared.BaseEntity
	ProgramID          uuid.UUID `gorm:"type:uuid;not null;index"`
	PartnerID          uuid.UUID `gorm:"type:uuid;not null;index"`
	TestDate           time.Time `gorm:"not null;index"`
	PhoneNumber        string    `gorm:"type:varchar(50);not null"`
	DedicatedVoicemail bool      `gorm:"not null"`
	DedicatedPickup    bool      `gorm:"not null"`
	HoldTime           string    `gorm:"type:varchar(5);not null"` // mm:ss, minutes below 10
	AdvisorName        string    `gorm:"type:varchar(100);not null;default:'NC'"`
	Rating             Rating    `gorm:"type:varchar(20);not null"`
	OfferApplied       bool      `gorm:"not null"`
	Comment            string    `gorm:"type:text"`
	CreatorID          uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (LineTest) TableName() string {
	return "line_tests"
}

// NewLineTest creates a line test record, validating the hold time format
func NewLineTest(programID, partnerID, creatorID uuid.UUID, testDate time.Time, phoneNumber string, dedicatedVoicemail, dedicatedPickup bool, holdTime, advisorName string, rating Rating, offerApplied bool, comment string) (*LineTest, error) {
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Line test requires a program id")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Line test requires a partner id")
	}
	if testDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Line test requires a test date")
	}
	if phoneNumber == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Line test requires the dialed phone number")
	}
	if err := ValidateHoldTime(holdTime); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if advisorName == "" {
		advisorName = "NC"
	}

	return &LineTest{
		BaseEntity:         shared.NewBaseEntity(),
		ProgramID:          programID,
		PartnerID:          partnerID,
		TestDate:           testDate,
		PhoneNumber:        phoneNumber,
		DedicatedVoicemail: dedicatedVoicemail,
		DedicatedPickup:    dedicatedPickup,
		HoldTime:           holdTime,
		AdvisorName:        advisorName,
		Rating:             rating,
		OfferApplied:       offerApplied,
		Comment:            comment,
		CreatorID:          creatorID,
	}, nil
}

// ValidateHoldTime checks the mm:ss hold time format. Seconds run 0 to 59 and
// minutes must stay below 10; a longer wait is recorded as a failed call, not
// a hold time.
func ValidateHoldTime(v string) error {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return shared.NewDomainError("INVALID_HOLD_TIME", "Hold time must use the mm:ss format")
	}
	minutes, err := strconv.Atoi(parts[0])
	if err != nil {
		return shared.NewDomainError("INVALID_HOLD_TIME", "Hold time must use the mm:ss format")
	}
	seconds, err := strconv.Atoi(parts[1])
	if err != nil {
		return shared.NewDomainError("INVALID_HOLD_TIME", "Hold time must use the mm:ss format")
	}
	if minutes < 0 || seconds < 0 || seconds > 59 {
		return shared.NewDomainError("INVALID_HOLD_TIME", "Hold time seconds must be between 0 and 59")
	}
	if minutes >= 10 {
		return shared.NewDomainError("INVALID_HOLD_TIME", "Hold time cannot reach 10 minutes")
	}
	return nil
}

func validateRating(r Rating) error {
	switch r {
	case RatingExcellent, RatingGood, RatingAverage, RatingPoor:
		return nil
	default:
		return shared.NewDomainError("INVALID_RATING", "Invalid caller experience rating")
	}
}
