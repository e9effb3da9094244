package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	alertapp "github.com/blindtest/backend/internal/application/alert"
	auditapp "github.com/blindtest/backend/internal/application/audit"
	identityapp "github.com/blindtest/backend/internal/application/identity"
	mailerapp "github.com/blindtest/backend/internal/application/mailer"
	programapp "github.com/blindtest/backend/internal/application/program"
	reportapp "github.com/blindtest/backend/internal/application/report"
	"github.com/blindtest/backend/internal/infrastructure/auth"
	"github.com/blindtest/backend/internal/infrastructure/config"
	"github.com/blindtest/backend/internal/infrastructure/persistence"
	"github.com/blindtest/backend/internal/infrastructure/render"
	"github.com/blindtest/backend/internal/infrastructure/storage"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/blindtest/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingSender captures outgoing mail instead of hitting a relay
type recordingSender struct {
	sent []sentMail
	fail bool
}

type sentMail struct {
	Recipient string
	Subject   string
	Body      string
}

func (s *recordingSender) Send(_ context.Context, recipient, subject, body string) error {
	if s.fail {
		return context.DeadlineExceeded
	}
	s.sent = append(s.sent, sentMail{Recipient: recipient, Subject: subject, Body: body})
	return nil
}

// testEnv is a full HTTP stack over an in-memory database
type testEnv struct {
	engine      *gin.Engine
	db          *gorm.DB
	jwtService  *auth.JWTService
	userService *identityapp.UserService
	sender      *recordingSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))

	logger := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(db)
	programRepo := persistence.NewGormProgramRepository(db)
	partnerRepo := persistence.NewGormPartnerRepository(db)
	siteTestRepo := persistence.NewGormSiteTestRepository(db)
	lineTestRepo := persistence.NewGormLineTestRepository(db)
	alertRepo := persistence.NewGormAlertRepository(db)
	notificationRepo := persistence.NewGormNotificationRepository(db)
	templateRepo := persistence.NewGormTemplateRepository(db)
	draftRepo := persistence.NewGormDraftRepository(db)
	historyRepo := persistence.NewGormHistoryRepository(db)
	signatureRepo := persistence.NewGormSignatureRepository(db)
	connectionLogRepo := persistence.NewGormConnectionLogRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "blindtest-test",
		MaxRefreshCount:        5,
	})

	sender := &recordingSender{}
	objectStorage := &storage.StubObjectStorage{BaseURL: "https://storage.example.com"}

	templateService := mailerapp.NewTemplateService(templateRepo, logger)
	draftService := mailerapp.NewDraftService(draftRepo, historyRepo, signatureRepo, templateService,
		programRepo, partnerRepo, siteTestRepo, lineTestRepo, sender, logger)
	notificationService := alertapp.NewNotificationService(notificationRepo, userRepo, programRepo, partnerRepo, logger)
	alertService := alertapp.NewService(alertRepo, draftService, notificationService, logger)
	draftService.SetAlertResolver(alertService)

	siteTestService := auditapp.NewSiteTestService(siteTestRepo, partnerRepo, alertService, objectStorage, logger)
	lineTestService := auditapp.NewLineTestService(lineTestRepo, alertService, logger)

	authService := identityapp.NewAuthService(userRepo, connectionLogRepo, jwtService, logger)
	userService := identityapp.NewUserService(userRepo, logger)
	connectionLogService := identityapp.NewConnectionLogService(connectionLogRepo, logger)
	programService := programapp.NewProgramService(programRepo)
	partnerService := programapp.NewPartnerService(partnerRepo)
	signatureService := mailerapp.NewSignatureService(signatureRepo)

	statsService := reportapp.NewStatsService(programRepo, partnerRepo, siteTestRepo, lineTestRepo, alertRepo)
	exportService := reportapp.NewExportService(siteTestRepo, lineTestRepo, programRepo, statsService,
		render.NewPDFReviewRenderer(), logger)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.JWTAuth(middleware.JWTAuthConfig{
		JWTService: jwtService,
		SkipPaths:  []string{"/api/v1/auth/login", "/api/v1/auth/refresh"},
	}))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(NewAuthHandler(authService)).
		Register(NewUserHandler(userService)).
		Register(NewConnectionLogHandler(connectionLogService)).
		Register(NewProgramHandler(programService)).
		Register(NewPartnerHandler(partnerService)).
		Register(NewSiteTestHandler(siteTestService, userRepo)).
		Register(NewLineTestHandler(lineTestService, userRepo)).
		Register(NewAlertHandler(alertService, userRepo)).
		Register(NewNotificationHandler(notificationService)).
		Register(NewTemplateHandler(templateService)).
		Register(NewDraftHandler(draftService)).
		Register(NewSignatureHandler(signatureService)).
		Register(NewExportHandler(exportService)).
		Register(NewStatsHandler(statsService)).
		Register(NewSystemHandler())
	r.Setup()

	return &testEnv{
		engine:      engine,
		db:          db,
		jwtService:  jwtService,
		userService: userService,
		sender:      sender,
	}
}

// authInput builds token generation input for a known user
func authInput(userID uuid.UUID, email, role string) auth.GenerateTokenInput {
	return auth.GenerateTokenInput{UserID: userID, Email: email, Role: role}
}

// createUser provisions an account and returns its ID and an access token
func (e *testEnv) createUser(t *testing.T, email, role string) (uuid.UUID, string) {
	t.Helper()
	resp, err := e.userService.Create(context.Background(), identityapp.CreateUserRequest{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  "s3cret-pass",
		Role:      role,
	})
	require.NoError(t, err)

	pair, err := e.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: resp.ID,
		Email:  email,
		Role:   role,
	})
	require.NoError(t, err)
	return resp.ID, pair.AccessToken
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, "expected success envelope, got %s", w.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}
