package report

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/blindtest/backend/internal/domain/alert"
	"github.com/blindtest/backend/internal/domain/audit"
	"github.com/blindtest/backend/internal/domain/program"
	"github.com/blindtest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockProgramRepository is a mock implementation of program.ProgramRepository
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindAll(ctx context.Context, filter shared.Filter) ([]program.Program, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]program.Program), args.Error(1)
}

func (m *MockProgramRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]program.Program, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]program.Program), args.Error(1)
}

func (m *MockProgramRepository) Save(ctx context.Context, p *program.Program) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgramRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgramRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockPartnerRepository is a mock implementation of program.PartnerRepository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByID(ctx context.Context, id uuid.UUID) (*program.Partner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*program.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]program.Partner, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]program.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindByProgram(ctx context.Context, programID uuid.UUID, filter shared.Filter) ([]program.Partner, error) {
	args := m.Called(ctx, programID, filter)
	return args.Get(0).([]program.Partner), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *program.Partner) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPartnerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPartnerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockSiteTestRepository is a mock implementation of audit.SiteTestRepository
type MockSiteTestRepository struct {
	mock.Mock
}

func (m *MockSiteTestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.SiteTest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.SiteTest), args.Error(1)
}

func (m *MockSiteTestRepository) FindAll(ctx context.Context, query audit.TestQuery, filter shared.Filter) ([]audit.SiteTest, error) {
	args := m.Called(ctx, query, filter)
	return args.Get(0).([]audit.SiteTest), args.Error(1)
}

func (m *MockSiteTestRepository) Save(ctx context.Context, t *audit.SiteTest) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockSiteTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSiteTestRepository) Count(ctx context.Context, query audit.TestQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSiteTestRepository) CountDiscountApplied(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockLineTestRepository is a mock implementation of audit.LineTestRepository
type MockLineTestRepository struct {
	mock.Mock
}

func (m *MockLineTestRepository) FindByID(ctx context.Context, id uuid.UUID) (*audit.LineTest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*audit.LineTest), args.Error(1)
}

func (m *MockLineTestRepository) FindAll(ctx context.Context, query audit.TestQuery, filter shared.Filter) ([]audit.LineTest, error) {
	args := m.Called(ctx, query, filter)
	return args.Get(0).([]audit.LineTest), args.Error(1)
}

func (m *MockLineTestRepository) Save(ctx context.Context, t *audit.LineTest) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockLineTestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLineTestRepository) Count(ctx context.Context, query audit.TestQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLineTestRepository) CountOfferApplied(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAlertRepository is a mock implementation of alert.AlertRepository
type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) FindByID(ctx context.Context, id uuid.UUID) (*alert.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*alert.Alert), args.Error(1)
}

func (m *MockAlertRepository) FindAll(ctx context.Context, filter shared.Filter) ([]alert.Alert, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]alert.Alert), args.Error(1)
}

func (m *MockAlertRepository) FindByStatus(ctx context.Context, status alert.Status, filter shared.Filter) ([]alert.Alert, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]alert.Alert), args.Error(1)
}

func (m *MockAlertRepository) FindByTest(ctx context.Context, testID uuid.UUID) ([]alert.Alert, error) {
	args := m.Called(ctx, testID)
	return args.Get(0).([]alert.Alert), args.Error(1)
}

func (m *MockAlertRepository) Save(ctx context.Context, a *alert.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAlertRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertRepository) CountByStatus(ctx context.Context, status alert.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockReviewRenderer is a mock implementation of ReviewRenderer
type MockReviewRenderer struct {
	mock.Mock
}

func (m *MockReviewRenderer) RenderReview(data ReviewData) ([]byte, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// =============================================================================
// Tests
// =============================================================================

type reportMocks struct {
	programs  *MockProgramRepository
	partners  *MockPartnerRepository
	siteTests *MockSiteTestRepository
	lineTests *MockLineTestRepository
	alerts    *MockAlertRepository
	renderer  *MockReviewRenderer
}

func newExportService() (*ExportService, *StatsService, reportMocks) {
	m := reportMocks{
		programs:  new(MockProgramRepository),
		partners:  new(MockPartnerRepository),
		siteTests: new(MockSiteTestRepository),
		lineTests: new(MockLineTestRepository),
		alerts:    new(MockAlertRepository),
		renderer:  new(MockReviewRenderer),
	}
	stats := NewStatsService(m.programs, m.partners, m.siteTests, m.lineTests, m.alerts)
	svc := NewExportService(m.siteTests, m.lineTests, m.programs, stats, m.renderer, zap.NewNop())
	return svc, stats, m
}

func sampleSiteTest(t *testing.T, programID, partnerID uuid.UUID) audit.SiteTest {
	t.Helper()
	st, err := audit.NewSiteTest(programID, partnerID, uuid.New(),
		time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC), true,
		decimal.NewFromInt(100), decimal.NewFromInt(80), "PROMO20", true, "RAS")
	require.NoError(t, err)
	return *st
}

func TestExportService_SiteTestsCSV(t *testing.T) {
	svc, _, m := newExportService()

	programID := uuid.New()
	partnerID := uuid.New()
	st := sampleSiteTest(t, programID, partnerID)

	m.siteTests.On("FindAll", mock.Anything, mock.MatchedBy(func(q audit.TestQuery) bool {
		return q.ProgramID == programID
	}), mock.Anything).Return([]audit.SiteTest{st}, nil)

	out, err := svc.SiteTestsCSV(context.Background(), ExportQuery{ProgramID: &programID})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(siteTestColumns, ","), lines[0])
	assert.Contains(t, lines[1], st.ID.String())
	assert.Contains(t, lines[1], "2025-03-07T10:00:00Z")
	assert.Contains(t, lines[1], "PROMO20")
	assert.Contains(t, lines[1], "20")
}

func TestExportService_LineTestsCSV(t *testing.T) {
	svc, _, m := newExportService()

	lt, err := audit.NewLineTest(uuid.New(), uuid.New(), uuid.New(),
		time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), "+33 1 23 45 67 89",
		true, false, "02:35", "Claire", audit.RatingGood, false, "")
	require.NoError(t, err)

	m.lineTests.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]audit.LineTest{*lt}, nil)

	out, err := svc.LineTestsCSV(context.Background(), ExportQuery{})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(lineTestColumns, ","), lines[0])
	assert.Contains(t, lines[1], "02:35")
	assert.Contains(t, lines[1], "Bien")
	assert.Contains(t, lines[1], "false")
}

func TestExportService_SiteTestsXLSX(t *testing.T) {
	svc, _, m := newExportService()

	st := sampleSiteTest(t, uuid.New(), uuid.New())
	m.siteTests.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]audit.SiteTest{st}, nil)

	out, err := svc.SiteTestsXLSX(context.Background(), ExportQuery{})

	require.NoError(t, err)
	// XLSX files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, out[:2])
}

func TestExportService_ProgramReviewPDF(t *testing.T) {
	svc, _, m := newExportService()

	programID := uuid.New()
	st := sampleSiteTest(t, programID, uuid.New())

	m.programs.On("FindByID", mock.Anything, programID).Return(&program.Program{Name: "Acme"}, nil)
	m.programs.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.partners.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)
	m.siteTests.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)
	m.lineTests.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
	m.alerts.On("CountByStatus", mock.Anything, alert.StatusOpen).Return(int64(1), nil)
	m.alerts.On("CountByStatus", mock.Anything, alert.StatusResolved).Return(int64(0), nil)
	m.siteTests.On("CountDiscountApplied", mock.Anything).Return(int64(1), nil)
	m.lineTests.On("CountOfferApplied", mock.Anything).Return(int64(0), nil)
	m.siteTests.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]audit.SiteTest{st}, nil)
	m.lineTests.On("FindAll", mock.Anything, mock.Anything, mock.Anything).Return([]audit.LineTest{}, nil)
	m.renderer.On("RenderReview", mock.MatchedBy(func(d ReviewData) bool {
		return d.ProgramName == "Acme" && len(d.SiteTests) == 1
	})).Return([]byte("%PDF-1.4"), nil)

	out, err := svc.ProgramReviewPDF(context.Background(), programID)

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(out))
	m.renderer.AssertExpectations(t)
}

func TestStatsService_Dashboard(t *testing.T) {
	t.Run("computes pass rates rounded to two decimals", func(t *testing.T) {
		_, stats, m := newExportService()

		m.programs.On("Count", mock.Anything, mock.Anything).Return(int64(2), nil)
		m.partners.On("Count", mock.Anything, mock.Anything).Return(int64(5), nil)
		m.siteTests.On("Count", mock.Anything, mock.Anything).Return(int64(3), nil)
		m.lineTests.On("Count", mock.Anything, mock.Anything).Return(int64(6), nil)
		m.alerts.On("CountByStatus", mock.Anything, alert.StatusOpen).Return(int64(4), nil)
		m.alerts.On("CountByStatus", mock.Anything, alert.StatusResolved).Return(int64(7), nil)
		m.siteTests.On("CountDiscountApplied", mock.Anything).Return(int64(2), nil)
		m.lineTests.On("CountOfferApplied", mock.Anything).Return(int64(1), nil)

		result, err := stats.Dashboard(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalPrograms)
		assert.Equal(t, int64(4), result.TotalOpenAlerts)
		assert.Equal(t, 66.67, result.SiteTestPassRate)
		assert.Equal(t, 16.67, result.LineTestPassRate)
	})

	t.Run("zero tests yield a zero rate", func(t *testing.T) {
		_, stats, m := newExportService()

		m.programs.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		m.partners.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		m.siteTests.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		m.lineTests.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)
		m.alerts.On("CountByStatus", mock.Anything, mock.Anything).Return(int64(0), nil)
		m.siteTests.On("CountDiscountApplied", mock.Anything).Return(int64(0), nil)
		m.lineTests.On("CountOfferApplied", mock.Anything).Return(int64(0), nil)

		result, err := stats.Dashboard(context.Background())

		require.NoError(t, err)
		assert.Zero(t, result.SiteTestPassRate)
		assert.Zero(t, result.LineTestPassRate)
	})
}
