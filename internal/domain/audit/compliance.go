package audit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Finding is one compliance problem detected on a submitted test.
// Its description is the exact French text carried by the resulting alert.
type Finding struct {
	Description string
}

// EvaluateSiteTest runs the site compliance rules against a submitted test.
// The threshold is the partner's contractual minimum discount; pass nil when
// the partner has none or could not be loaded, which skips the third rule.
//
// Rules run in a fixed order and fire independently, so one submission can
// produce up to three findings.
func EvaluateSiteTest(t *SiteTest, threshold *decimal.Decimal) []Finding {
	var findings []Finding

	if t.DiscountedPrice.GreaterThan(t.PublicPrice) {
		findings = append(findings, Finding{
			Description: fmt.Sprintf("Prix remisé (%s€) supérieur au prix public (%s€)", t.DiscountedPrice.String(), t.PublicPrice.String()),
		})
	}

	if !t.DiscountApplied {
		findings = append(findings, Finding{Description: "Remise non appliquée"})
	}

	if threshold != nil && t.DiscountPct.LessThan(*threshold) {
		gap := threshold.Sub(t.DiscountPct)
		findings = append(findings, Finding{
			Description: fmt.Sprintf("Remise insuffisante: %s%% appliquée, %s%% attendue (écart: %s%%)", t.DiscountPct.String(), threshold.String(), gap.String()),
		})
	}

	return findings
}

// EvaluateLineTest runs the phone line compliance rules against a submitted test
func EvaluateLineTest(t *LineTest) []Finding {
	var findings []Finding

	if !t.OfferApplied {
		findings = append(findings, Finding{Description: "Offre non appliquée"})
	}

	if !t.DedicatedVoicemail && !t.DedicatedPickup {
		findings = append(findings, Finding{Description: "Ni messagerie dédiée ni décroche dédié détecté"})
	}

	return findings
}
