package mailer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bracket tokens recognized in templates. Substitution is literal string
// replacement, case sensitive; anything else in the text is left untouched.
const (
	TokenProgramName      = "[Nom du programme]"
	TokenProblem          = "[Nature du problème constaté]"
	TokenTestDate         = "[Date du test]"
	TokenTestChannel      = "[Nom du site / canal du test]"
	TokenExpectedDiscount = "[Remise attendue]"
	TokenObservation      = "[Observation]"
	TokenContactName      = "[Nom du contact]"
)

const missingValue = "N/A"

// TemplateValues carries the data resolved from an alert's related program,
// partner, and source test. Nil or empty fields substitute as "N/A".
type TemplateValues struct {
	ProgramName      string
	Description      string
	TestDate         *time.Time
	SiteChannel      bool // true renders "Site web", false "Téléphone"
	ExpectedDiscount *decimal.Decimal
	ContactEmail     string
}

// resolve maps every known token to its replacement text
func (v TemplateValues) resolve() map[string]string {
	values := map[string]string{
		TokenProgramName:      orMissing(v.ProgramName),
		TokenProblem:          orMissing(v.Description),
		TokenTestDate:         missingValue,
		TokenTestChannel:      "Téléphone",
		TokenExpectedDiscount: missingValue,
		TokenObservation:      orMissing(v.Description),
		TokenContactName:      orMissing(v.ContactEmail),
	}
	if v.TestDate != nil && !v.TestDate.IsZero() {
		values[TokenTestDate] = v.TestDate.Format("02/01/2006")
	}
	if v.SiteChannel {
		values[TokenTestChannel] = "Site web"
	}
	if v.ExpectedDiscount != nil {
		values[TokenExpectedDiscount] = v.ExpectedDiscount.String() + " %"
	}
	return values
}

// substitutionOrder fixes the replacement sequence. Combined with the
// single-pass Replacer this keeps the output deterministic even when a
// resolved value itself contains a bracket token.
var substitutionOrder = []string{
	TokenProgramName,
	TokenProblem,
	TokenTestDate,
	TokenTestChannel,
	TokenExpectedDiscount,
	TokenObservation,
	TokenContactName,
}

// Substitute fills the template's bracket tokens with the resolved values.
// Unknown tokens stay verbatim so a typo in a template surfaces in the draft
// instead of failing the composition. Substituted values are never rescanned.
func Substitute(template string, values TemplateValues) string {
	resolved := values.resolve()
	pairs := make([]string, 0, 2*len(substitutionOrder))
	for _, token := range substitutionOrder {
		pairs = append(pairs, token, resolved[token])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Compose renders a template into a draft subject and body
func Compose(t *EmailTemplate, values TemplateValues) (subject, body string) {
	return Substitute(t.SubjectTemplate, values), Substitute(t.BodyTemplate, values)
}

func orMissing(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}
