package report

import (
	"context"
	"math"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
)

// DashboardStats is the front page summary. The JSON keys match the legacy
// dashboard so existing clients keep working.
type DashboardStats struct {
	TotalPrograms      int64   `json:"total_programmes"`
	TotalPartners      int64   `json:"total_partenaires"`
	TotalSiteTests     int64   `json:"total_tests_site"`
	TotalLineTests     int64   `json:"total_tests_ligne"`
	TotalOpenAlerts    int64   `json:"total_incidents_ouverts"`
	SiteTestPassRate   float64 `json:"taux_reussite_ts"`
	LineTestPassRate   float64 `json:"taux_reussite_tl"`
	TotalResolvedAlert int64   `json:"total_incidents_resolus"`
}

// StatsService computes dashboard statistics
type StatsService struct {
	programRepo  program.ProgramRepository
	partnerRepo  program.PartnerRepository
	siteTestRepo audit.SiteTestRepository
	lineTestRepo audit.LineTestRepository
	alertRepo    alert.AlertRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	programRepo program.ProgramRepository,
	partnerRepo program.PartnerRepository,
	siteTestRepo audit.SiteTestRepository,
	lineTestRepo audit.LineTestRepository,
	alertRepo alert.AlertRepository,
) *StatsService {
	return &StatsService{
		programRepo:  programRepo,
		partnerRepo:  partnerRepo,
		siteTestRepo: siteTestRepo,
		lineTestRepo: lineTestRepo,
		alertRepo:    alertRepo,
	}
}

// Dashboard computes the landing page counters. Pass rates are the share of
// tests where the discount or the offer was honored, as a percentage rounded
// to two decimals; zero tests means a zero rate, not a division error.
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalPrograms, err = s.programRepo.Count(ctx, shared.Filter{}); err != nil {
		return nil, err
	}
	if stats.TotalPartners, err = s.partnerRepo.Count(ctx, shared.Filter{}); err != nil {
		return nil, err
	}
	if stats.TotalSiteTests, err = s.siteTestRepo.Count(ctx, audit.TestQuery{}); err != nil {
		return nil, err
	}
	if stats.TotalLineTests, err = s.lineTestRepo.Count(ctx, audit.TestQuery{}); err != nil {
		return nil, err
	}
	if stats.TotalOpenAlerts, err = s.alertRepo.CountByStatus(ctx, alert.StatusOpen); err != nil {
		return nil, err
	}
	if stats.TotalResolvedAlert, err = s.alertRepo.CountByStatus(ctx, alert.StatusResolved); err != nil {
		return nil, err
	}

	sitePassed, err := s.siteTestRepo.CountDiscountApplied(ctx)
	if err != nil {
		return nil, err
	}
	stats.SiteTestPassRate = passRate(sitePassed, stats.TotalSiteTests)

	linePassed, err := s.lineTestRepo.CountOfferApplied(ctx)
	if err != nil {
		return nil, err
	}
	stats.LineTestPassRate = passRate(linePassed, stats.TotalLineTests)

	return stats, nil
}

func passRate(passed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(passed) / float64(total) * 100
	return math.Round(rate*100) / 100
}
