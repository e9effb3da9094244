package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProgramSortFields contains allowed sort fields for programs
var ProgramSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// PartnerSortFields contains allowed sort fields for partners
var PartnerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// TestSortFields contains allowed sort fields for site and line tests
var TestSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"test_date":  true,
	"program_id": true,
	"partner_id": true,
}

// AlertSortFields contains allowed sort fields for alerts
var AlertSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"status":     true,
	"program_id": true,
	"partner_id": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"email":      true,
	"last_name":  true,
	"role":       true,
	"active":     true,
}

// ConnectionLogSortFields contains allowed sort fields for the login trail
var ConnectionLogSortFields = map[string]bool{
	"id":       true,
	"login_at": true,
	"email":    true,
	"role":     true,
}

// TemplateSortFields contains allowed sort fields for email templates
var TemplateSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"is_default": true,
}

// HistorySortFields contains allowed sort fields for the send history
var HistorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"sent_at":    true,
	"outcome":    true,
}
