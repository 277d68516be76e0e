package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bookmylastwishes/portal/internal/config"
	"github.com/bookmylastwishes/portal/internal/db"
	"github.com/bookmylastwishes/portal/internal/metrics"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/service"
	"github.com/bookmylastwishes/portal/internal/service/payment"
	"github.com/bookmylastwishes/portal/internal/storage"
)

type App struct {
	Cfg      *config.Config
	DB       *sqlx.DB
	Storage  storage.Storage
	Registry *prometheus.Registry
	Metrics  *metrics.Collector

	UserRepository    repository.UserRepository
	SessionRepository repository.SessionRepository

	AuthService      *service.AuthService
	MFAService       *service.MFAService
	MigrationService *service.MigrationService
	EmailService     *service.EmailService
	PatronService    *service.PatronService
	BillingService   *service.BillingService
	WishService      *service.WishService
	NomineeService   *service.NomineeService
	LetterService    *service.LetterService
	DocumentService  *service.DocumentService
	AccountService   *service.AccountService
	ContentService   *service.ContentService
	SupportService   *service.SupportService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	patronRepository := repository.NewPatronRepository(database)
	tempPatronRepository := repository.NewTempPatronRepository(database)
	wishRepository := repository.NewWishRepository(database)
	nomineeRepository := repository.NewNomineeRepository(database)
	letterRepository := repository.NewLetterRepository(database)
	documentRepository := repository.NewDocumentRepository(database)
	paymentRepository := repository.NewPaymentRepository(database)
	mfaRepository := repository.NewMFARepository(database)
	supportRepository := repository.NewSupportRepository(database)

	// Storage
	fileStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.SupportEmail,
		cfg.ResendAudienceID,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	mfaService := service.NewMFAService(mfaRepository, cfg.AppName)
	authService := service.NewAuthService(
		userRepository,
		sessionRepository,
		tokenRepository,
		mfaService,
		emailService,
		cfg.JWTSecret,
		cfg.IsProduction(),
		cfg.JWTExpiry,
		cfg.TokenPasswordResetExpiry,
	)
	migrationService := service.NewMigrationService(
		sessionRepository,
		tempPatronRepository,
		patronRepository,
		fileStorage,
		collector,
	)
	patronService := service.NewPatronService(
		patronRepository,
		tempPatronRepository,
		fileStorage,
		emailService,
		collector,
	)

	// Initialize payment provider based on config
	paymentProvider, err := payment.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %v", err)
	}

	billingService := service.NewBillingService(paymentRepository, userRepository, paymentProvider, emailService, collector)
	wishService := service.NewWishService(wishRepository)
	nomineeService := service.NewNomineeService(nomineeRepository, billingService)
	letterService := service.NewLetterService(letterRepository, billingService)
	documentService := service.NewDocumentService(documentRepository, fileStorage)
	accountService := service.NewAccountService(
		userRepository,
		sessionRepository,
		patronRepository,
		wishRepository,
		nomineeRepository,
		letterRepository,
		documentRepository,
		paymentRepository,
		mfaRepository,
		fileStorage,
		authService,
		emailService,
	)
	supportService := service.NewSupportService(supportRepository, emailService)

	contentService := service.NewContentService(cfg.ContentPath)
	err = contentService.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load site content: %v", err)
	}

	return &App{
		Cfg:               cfg,
		DB:                database,
		Storage:           fileStorage,
		Registry:          registry,
		Metrics:           collector,
		UserRepository:    userRepository,
		SessionRepository: sessionRepository,
		AuthService:       authService,
		MFAService:        mfaService,
		MigrationService:  migrationService,
		EmailService:      emailService,
		PatronService:     patronService,
		BillingService:    billingService,
		WishService:       wishService,
		NomineeService:    nomineeService,
		LetterService:     letterService,
		DocumentService:   documentService,
		AccountService:    accountService,
		ContentService:    contentService,
		SupportService:    supportService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
