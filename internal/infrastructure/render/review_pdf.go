// Package render produces printable documents from report data.
package render

import (
	"bytes"
	"fmt"

	"github.com/blindtest/backend/internal/application/report"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/go-pdf/fpdf"
)

// Ensure PDFReviewRenderer implements ReviewRenderer
var _ report.ReviewRenderer = (*PDFReviewRenderer)(nil)

// PDFReviewRenderer renders a program review as an A4 landscape PDF
type PDFReviewRenderer struct{}

// NewPDFReviewRenderer creates a new PDF review renderer
func NewPDFReviewRenderer() *PDFReviewRenderer {
	return &PDFReviewRenderer{}
}

// RenderReview builds the review document: a title page with the aggregate
// statistics followed by one table per test family.
func (r *PDFReviewRenderer) RenderReview(data report.ReviewData) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	translator := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(translator("Bilan "+data.ProgramName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, translator("Bilan du programme "+data.ProgramName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, translator("Généré le "+data.GeneratedAt.Format("02/01/2006")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	r.writeStats(pdf, translator, data.Stats)

	if len(data.SiteTests) > 0 {
		pdf.AddPage()
		r.writeSiteTests(pdf, translator, data.SiteTests)
	}
	if len(data.LineTests) > 0 {
		pdf.AddPage()
		r.writeLineTests(pdf, translator, data.LineTests)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render review PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFReviewRenderer) writeStats(pdf *fpdf.Fpdf, tr func(string) string, stats report.DashboardStats) {
	rows := []struct {
		label string
		value string
	}{
		{"Tests site", fmt.Sprintf("%d", stats.TotalSiteTests)},
		{"Tests ligne", fmt.Sprintf("%d", stats.TotalLineTests)},
		{"Taux de réussite tests site", fmt.Sprintf("%.2f %%", stats.SiteTestPassRate)},
		{"Taux de réussite tests ligne", fmt.Sprintf("%.2f %%", stats.LineTestPassRate)},
		{"Incidents ouverts", fmt.Sprintf("%d", stats.TotalOpenAlerts)},
		{"Incidents résolus", fmt.Sprintf("%d", stats.TotalResolvedAlert)},
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, tr("Synthèse"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, row := range rows {
		pdf.CellFormat(90, 7, tr(row.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, tr(row.value), "1", 1, "R", false, 0, "")
	}
}

func (r *PDFReviewRenderer) writeSiteTests(pdf *fpdf.Fpdf, tr func(string) string, tests []audit.SiteTest) {
	headers := []string{"Date", "Remise appliquée", "Prix public", "Prix remisé", "% remise", "Naming constaté", "Cumul codes"}
	widths := []float64{25, 32, 28, 28, 22, 80, 25}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, tr("Tests site"), "", 1, "L", false, 0, "")
	r.writeHeader(pdf, tr, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tests {
		cells := []string{
			t.TestDate.Format("02/01/2006"),
			boolFR(t.DiscountApplied),
			t.PublicPrice.StringFixed(2) + " EUR",
			t.DiscountedPrice.StringFixed(2) + " EUR",
			t.DiscountPct.StringFixed(2) + " %",
			t.ObservedNaming,
			boolFR(t.CodeStacking),
		}
		r.writeRow(pdf, tr, cells, widths)
	}
}

func (r *PDFReviewRenderer) writeLineTests(pdf *fpdf.Fpdf, tr func(string) string, tests []audit.LineTest) {
	headers := []string{"Date", "Numéro", "Messagerie dédiée", "Décroche dédié", "Attente", "Conseiller", "Accueil", "Offre appliquée"}
	widths := []float64{25, 35, 35, 32, 20, 40, 28, 30}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, tr("Tests ligne"), "", 1, "L", false, 0, "")
	r.writeHeader(pdf, tr, headers, widths)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range tests {
		cells := []string{
			t.TestDate.Format("02/01/2006"),
			t.PhoneNumber,
			boolFR(t.DedicatedVoicemail),
			boolFR(t.DedicatedPickup),
			t.HoldTime,
			t.AdvisorName,
			string(t.Rating),
			boolFR(t.OfferApplied),
		}
		r.writeRow(pdf, tr, cells, widths)
	}
}

func (r *PDFReviewRenderer) writeHeader(pdf *fpdf.Fpdf, tr func(string) string, headers []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func (r *PDFReviewRenderer) writeRow(pdf *fpdf.Fpdf, tr func(string) string, cells []string, widths []float64) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 7, tr(c), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func boolFR(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
