package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	alertapp "github.com/blindtest/backend/internal/application/alert"
	auditapp "github.com/blindtest/backend/internal/application/audit"
	identityapp "github.com/blindtest/backend/internal/application/identity"
	mailerapp "github.com/blindtest/backend/internal/application/mailer"
	programapp "github.com/blindtest/backend/internal/application/program"
	reportapp "github.com/blindtest/backend/internal/application/report"
	"github.com/blindtest/backend/internal/infrastructure/auth"
	"github.com/blindtest/backend/internal/infrastructure/config"
	"github.com/blindtest/backend/internal/infrastructure/logger"
	"github.com/blindtest/backend/internal/infrastructure/persistence"
	"github.com/blindtest/backend/internal/infrastructure/render"
	"github.com/blindtest/backend/internal/infrastructure/smtp"
	"github.com/blindtest/backend/internal/infrastructure/storage"
	"github.com/blindtest/backend/internal/interfaces/http/handler"
	"github.com/blindtest/backend/internal/interfaces/http/middleware"
	"github.com/blindtest/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Blind Test Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Outside production the schema is synced directly from the models.
	// Production deployments run versioned SQL migrations via cmd/migrate.
	if cfg.App.Env != "production" {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Failed to migrate database schema", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	programRepo := persistence.NewGormProgramRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	siteTestRepo := persistence.NewGormSiteTestRepository(db.DB)
	lineTestRepo := persistence.NewGormLineTestRepository(db.DB)
	alertRepo := persistence.NewGormAlertRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	draftRepo := persistence.NewGormDraftRepository(db.DB)
	historyRepo := persistence.NewGormHistoryRepository(db.DB)
	signatureRepo := persistence.NewGormSignatureRepository(db.DB)
	connectionLogRepo := persistence.NewGormConnectionLogRepository(db.DB)

	// Outgoing mail transport
	mailSender := smtp.NewSender(&cfg.SMTP, log)

	// Attachment storage: presigned S3 URLs in production, a stub otherwise
	var objectStorage auditapp.ObjectStorageService
	if cfg.Storage.Provider == "s3" {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(context.Background()); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("S3 storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using stub object storage; attachment URLs will not resolve")
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, connectionLogRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)
	connectionLogService := identityapp.NewConnectionLogService(connectionLogRepo, log)

	// Domain records
	programService := programapp.NewProgramService(programRepo)
	partnerService := programapp.NewPartnerService(partnerRepo)

	// Mail pipeline: templates feed drafts, drafts resolve alerts when sent
	templateService := mailerapp.NewTemplateService(templateRepo, log)
	draftService := mailerapp.NewDraftService(draftRepo, historyRepo, signatureRepo, templateService,
		programRepo, partnerRepo, siteTestRepo, lineTestRepo, mailSender, log)
	signatureService := mailerapp.NewSignatureService(signatureRepo)

	// Alerting: raised alerts fan out to project leads and compose drafts
	notificationService := alertapp.NewNotificationService(notificationRepo, userRepo, programRepo, partnerRepo, log)
	alertService := alertapp.NewService(alertRepo, draftService, notificationService, log)
	draftService.SetAlertResolver(alertService)

	// Audit services evaluate compliance on every recorded test
	siteTestService := auditapp.NewSiteTestService(siteTestRepo, partnerRepo, alertService, objectStorage, log)
	lineTestService := auditapp.NewLineTestService(lineTestRepo, alertService, log)

	// Reporting
	statsService := reportapp.NewStatsService(programRepo, partnerRepo, siteTestRepo, lineTestRepo, alertRepo)
	exportService := reportapp.NewExportService(siteTestRepo, lineTestRepo, programRepo, statsService,
		render.NewPDFReviewRenderer(), log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))

		// Stricter per-IP limit on credential endpoints
		authLimiter := middleware.NewRateLimiter(10, time.Minute)
		authGuard := middleware.AuthRateLimit(authLimiter)
		engine.Use(func(c *gin.Context) {
			if c.Request.URL.Path == "/api/v1/auth/login" {
				authGuard(c)
				return
			}
			c.Next()
		})

		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning and authentication)
	engine.GET("/health", healthHandler(db))

	// JWT authentication guards every API route except login and refresh
	engine.Use(middleware.JWTAuth(middleware.JWTAuthConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
	}))

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewAuthHandler(authService)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewConnectionLogHandler(connectionLogService)).
		Register(handler.NewProgramHandler(programService)).
		Register(handler.NewPartnerHandler(partnerService)).
		Register(handler.NewSiteTestHandler(siteTestService, userRepo)).
		Register(handler.NewLineTestHandler(lineTestService, userRepo)).
		Register(handler.NewAlertHandler(alertService, userRepo)).
		Register(handler.NewNotificationHandler(notificationService)).
		Register(handler.NewTemplateHandler(templateService)).
		Register(handler.NewDraftHandler(draftService)).
		Register(handler.NewSignatureHandler(signatureService)).
		Register(handler.NewExportHandler(exportService)).
		Register(handler.NewStatsHandler(statsService)).
		Register(handler.NewSystemHandler())
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
