package alert

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Status represents the lifecycle state of an alert
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// TestType identifies which kind of blind test raised an alert
type TestType string

const (
	TestTypeSite TestType = "site"
	TestTypeLine TestType = "line"
)

// Alert records a detected compliance problem. It is usually raised by the
// rule engine against a persisted test, but may also be created standalone
// (TestID nil) to record that a test could not be performed at all.
type Alert struct {
	shared.BaseEntity
	TestID      *uuid.UUID `gorm:"type:uuid;index"`
	TestType    TestType   `gorm:"type:varchar(10);not null"`
	Description string     `gorm:"type:text;not null"`
	Status      Status     `gorm:"type:varchar(20);not null;default:'open';index"`
	ProgramID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatorID   uuid.UUID  `gorm:"type:uuid;index"`
	ResolvedAt  *time.Time
}

// TableName returns the table name for GORM
func (Alert) TableName() string {
	return "alerts"
}

// NewAlert creates an alert in the open state
func NewAlert(testID *uuid.UUID, testType TestType, description string, programID, partnerID, creatorID uuid.UUID) (*Alert, error) {
	if err := validateTestType(testType); err != nil {
		return nil, err
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Alert description cannot be empty")
	}
	if programID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PROGRAM", "Alert requires a program id")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PARTNER", "Alert requires a partner id")
	}

	return &Alert{
		BaseEntity:  shared.NewBaseEntity(),
		TestID:      testID,
		TestType:    testType,
		Description: description,
		Status:      StatusOpen,
		ProgramID:   programID,
		PartnerID:   partnerID,
		CreatorID:   creatorID,
	}, nil
}

// Resolve marks the alert resolved. Resolving an already resolved alert is
// not an error; the resolved timestamp is refreshed on every call.
func (a *Alert) Resolve() {
	now := time.Now()
	a.Status = StatusResolved
	a.ResolvedAt = &now
	a.UpdatedAt = now
}

// CanDelete returns an error unless the alert has been resolved
func (a *Alert) CanDelete() error {
	if a.Status != StatusResolved {
		return shared.NewDomainError("INVALID_STATE", "Only resolved alerts may be deleted")
	}
	return nil
}

// IsOpen returns true while the alert has not been resolved
func (a *Alert) IsOpen() bool {
	return a.Status == StatusOpen
}

func validateTestType(t TestType) error {
	switch t {
	case TestTypeSite, TestTypeLine:
		return nil
	default:
		return shared.NewDomainError("INVALID_TEST_TYPE", "Test type must be 'site' or 'line'")
	}
}
