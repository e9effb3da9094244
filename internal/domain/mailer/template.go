package mailer

import (
	"time"

	"github.com/blindtest/backend/internal/domain/shared"
)

// Built-in template used until an administrator defines their own.
const (
	DefaultTemplateName    = "Modèle par défaut"
	DefaultSubjectTemplate = "[Nom du programme] – [Nature du problème constaté]"
	DefaultBodyTemplate    = "Bonjour [Nom du contact],\n\n" +
		"Lors de notre test du [Date du test] réalisé via [Nom du site / canal du test], nous avons constaté le problème suivant :\n\n" +
		"[Observation]\n\n" +
		"Remise attendue : [Remise attendue]\n\n" +
		"Merci de bien vouloir corriger ce point dans les meilleurs délais.\n\n" +
		"Cordialement,"
)

// EmailTemplate is a reusable subject/body pair with bracket placeholders.
// At most one template is the default at any time; repositories enforce this
// by unsetting the others on save.
type EmailTemplate struct {
	shared.BaseEntity
	Name            string `gorm:"type:varchar(200);not null"`
	SubjectTemplate string `gorm:"type:varchar(500);not null"`
	BodyTemplate    string `gorm:"type:text;not null"`
	IsDefault       bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (EmailTemplate) TableName() string {
	return "email_templates"
}

// NewEmailTemplate creates a template
func NewEmailTemplate(name, subjectTemplate, bodyTemplate string, isDefault bool) (*EmailTemplate, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if subjectTemplate == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Subject template cannot be empty")
	}
	if bodyTemplate == "" {
		return nil, shared.NewDomainError("INVALID_BODY", "Body template cannot be empty")
	}

	return &EmailTemplate{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		SubjectTemplate: subjectTemplate,
		BodyTemplate:    bodyTemplate,
		IsDefault:       isDefault,
	}, nil
}

// NewDefaultTemplate creates the built-in French template, marked default
func NewDefaultTemplate() *EmailTemplate {
	t, _ := NewEmailTemplate(DefaultTemplateName, DefaultSubjectTemplate, DefaultBodyTemplate, true)
	return t
}

// Update replaces the template's content
func (t *EmailTemplate) Update(name, subjectTemplate, bodyTemplate string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if subjectTemplate == "" {
		return shared.NewDomainError("INVALID_SUBJECT", "Subject template cannot be empty")
	}
	if bodyTemplate == "" {
		return shared.NewDomainError("INVALID_BODY", "Body template cannot be empty")
	}

	t.Name = name
	t.SubjectTemplate = subjectTemplate
	t.BodyTemplate = bodyTemplate
	t.UpdatedAt = time.Now()

	return nil
}
