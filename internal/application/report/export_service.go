package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportLimit caps how many rows one export pulls, matching the legacy tool
const exportLimit = 10000

// Column orders match the legacy CSV exports so downstream spreadsheets keep
// their mappings.
var (
	siteTestColumns = []string{"id", "programme_id", "partenaire_id", "date_test", "application_remise",
		"prix_public", "prix_remise", "pct_remise_calcule", "naming_constate", "cumul_codes", "commentaire"}
	lineTestColumns = []string{"id", "programme_id", "partenaire_id", "date_test", "numero_telephone",
		"messagerie_vocale_dediee", "decroche_dedie", "delai_attente", "nom_conseiller",
		"evaluation_accueil", "application_offre", "commentaire"}
)

// ExportQuery narrows exports. Nil fields mean no constraint.
type ExportQuery struct {
	ProgramID *uuid.UUID `form:"program_id"`
	PartnerID *uuid.UUID `form:"partner_id"`
}

func (q ExportQuery) toTestQuery() audit.TestQuery {
	var query audit.TestQuery
	if q.ProgramID != nil {
		query.ProgramID = *q.ProgramID
	}
	if q.PartnerID != nil {
		query.PartnerID = *q.PartnerID
	}
	return query
}

// ReviewData is everything the program review document renders
type ReviewData struct {
	ProgramName string
	GeneratedAt time.Time
	Stats       DashboardStats
	SiteTests   []audit.SiteTest
	LineTests   []audit.LineTest
}

// ReviewRenderer turns review data into a printable document. The PDF
// implementation lives in infrastructure.
type ReviewRenderer interface {
	RenderReview(data ReviewData) ([]byte, error)
}

// ExportService produces CSV, XLSX and PDF exports of the audit data
type ExportService struct {
	siteTestRepo audit.SiteTestRepository
	lineTestRepo audit.LineTestRepository
	programRepo  program.ProgramRepository
	stats        *StatsService
	renderer     ReviewRenderer
	logger       *zap.Logger
}

// NewExportService creates a new ExportService
func NewExportService(
	siteTestRepo audit.SiteTestRepository,
	lineTestRepo audit.LineTestRepository,
	programRepo program.ProgramRepository,
	stats *StatsService,
	renderer ReviewRenderer,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		siteTestRepo: siteTestRepo,
		lineTestRepo: lineTestRepo,
		programRepo:  programRepo,
		stats:        stats,
		renderer:     renderer,
		logger:       logger,
	}
}

// SiteTestsCSV exports site tests as CSV
func (s *ExportService) SiteTestsCSV(ctx context.Context, query ExportQuery) ([]byte, error) {
	tests, err := s.loadSiteTests(ctx, query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(siteTestColumns); err != nil {
		return nil, err
	}
	for i := range tests {
		if err := w.Write(siteTestRow(&tests[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LineTestsCSV exports line tests as CSV
func (s *ExportService) LineTestsCSV(ctx context.Context, query ExportQuery) ([]byte, error) {
	tests, err := s.loadLineTests(ctx, query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(lineTestColumns); err != nil {
		return nil, err
	}
	for i := range tests {
		if err := w.Write(lineTestRow(&tests[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SiteTestsXLSX exports site tests as an Excel workbook
func (s *ExportService) SiteTestsXLSX(ctx context.Context, query ExportQuery) ([]byte, error) {
	tests, err := s.loadSiteTests(ctx, query)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(tests))
	for i := range tests {
		rows = append(rows, siteTestRow(&tests[i]))
	}
	return writeWorkbook("Tests site", siteTestColumns, rows)
}

// LineTestsXLSX exports line tests as an Excel workbook
func (s *ExportService) LineTestsXLSX(ctx context.Context, query ExportQuery) ([]byte, error) {
	tests, err := s.loadLineTests(ctx, query)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(tests))
	for i := range tests {
		rows = append(rows, lineTestRow(&tests[i]))
	}
	return writeWorkbook("Tests ligne", lineTestColumns, rows)
}

// ProgramReviewPDF renders the printable review for one program: global
// counters plus every test recorded against the program.
func (s *ExportService) ProgramReviewPDF(ctx context.Context, programID uuid.UUID) ([]byte, error) {
	p, err := s.programRepo.FindByID(ctx, programID)
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	query := ExportQuery{ProgramID: &programID}
	siteTests, err := s.loadSiteTests(ctx, query)
	if err != nil {
		return nil, err
	}
	lineTests, err := s.loadLineTests(ctx, query)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Rendering program review",
		zap.String("program_id", programID.String()),
		zap.Int("site_tests", len(siteTests)),
		zap.Int("line_tests", len(lineTests)))

	return s.renderer.RenderReview(ReviewData{
		ProgramName: p.Name,
		GeneratedAt: time.Now(),
		Stats:       *stats,
		SiteTests:   siteTests,
		LineTests:   lineTests,
	})
}

func (s *ExportService) loadSiteTests(ctx context.Context, query ExportQuery) ([]audit.SiteTest, error) {
	return s.siteTestRepo.FindAll(ctx, query.toTestQuery(), shared.Filter{Page: 1, PageSize: exportLimit})
}

func (s *ExportService) loadLineTests(ctx context.Context, query ExportQuery) ([]audit.LineTest, error) {
	return s.lineTestRepo.FindAll(ctx, query.toTestQuery(), shared.Filter{Page: 1, PageSize: exportLimit})
}

func siteTestRow(t *audit.SiteTest) []string {
	return []string{
		t.ID.String(),
		t.ProgramID.String(),
		t.PartnerID.String(),
		t.TestDate.Format(time.RFC3339),
		strconv.FormatBool(t.DiscountApplied),
		t.PublicPrice.String(),
		t.DiscountedPrice.String(),
		t.DiscountPct.String(),
		t.ObservedNaming,
		strconv.FormatBool(t.CodeStacking),
		t.Comment,
	}
}

func lineTestRow(t *audit.LineTest) []string {
	return []string{
		t.ID.String(),
		t.ProgramID.String(),
		t.PartnerID.String(),
		t.TestDate.Format(time.RFC3339),
		t.PhoneNumber,
		strconv.FormatBool(t.DedicatedVoicemail),
		strconv.FormatBool(t.DedicatedPickup),
		t.HoldTime,
		t.AdvisorName,
		string(t.Rating),
		strconv.FormatBool(t.OfferApplied),
		t.Comment,
	}
}

func writeWorkbook(sheet string, columns []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
