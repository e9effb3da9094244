package render

import (
	"testing"
	"time"

	"github.com/blindtest/backend/internal/application/report"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFReviewRenderer_RenderReview(t *testing.T) {
	renderer := NewPDFReviewRenderer()

	siteTest, err := audit.NewSiteTest(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), true,
		decimal.NewFromInt(100), decimal.NewFromInt(80),
		"Offre Partenaire", false, "",
	)
	require.NoError(t, err)

	lineTest, err := audit.NewLineTest(
		uuid.New(), uuid.New(), uuid.New(),
		time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		"0171234567", true, true, "02:35", "Sophie", audit.RatingGood, true, "",
	)
	require.NoError(t, err)

	data := report.ReviewData{
		ProgramName: "Acme",
		GeneratedAt: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Stats: report.DashboardStats{
			TotalSiteTests:   3,
			TotalLineTests:   2,
			SiteTestPassRate: 66.67,
			LineTestPassRate: 50,
			TotalOpenAlerts:  1,
		},
		SiteTests: []audit.SiteTest{*siteTest},
		LineTests: []audit.LineTest{*lineTest},
	}

	t.Run("produces a PDF document", func(t *testing.T) {
		out, err := renderer.RenderReview(data)
		require.NoError(t, err)
		assert.True(t, len(out) > 500)
		assert.Equal(t, "%PDF", string(out[:4]))
	})

	t.Run("renders without tests", func(t *testing.T) {
		out, err := renderer.RenderReview(report.ReviewData{ProgramName: "Acme", GeneratedAt: time.Now()})
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(out[:4]))
	})
}
