package main

import (
	"fmt"
	"log"

	"civicfix/internal/config"
	"civicfix/internal/email/noop"
	"civicfix/internal/email/ses"
	"civicfix/internal/extract"
	"civicfix/internal/handler"
	"civicfix/internal/port"
	"civicfix/internal/repository/postgres"
	"civicfix/internal/router"
	"civicfix/internal/screening"
	"civicfix/internal/service"
	s3storage "civicfix/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	issueRepo := postgres.NewIssueRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize external adapters
	extractor := extract.NewExtractor(cfg.Extract)
	screeningClient := screening.NewClient(cfg.Screening)

	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, emailSender, cfg.JWT, cfg.Admin)
	onboardingSvc := service.NewOnboardingService(userRepo, extractor, s3Client, screeningClient, &cfg.S3)
	issueSvc := service.NewIssueService(issueRepo, s3Client, screeningClient, &cfg.S3)
	adminSvc := service.NewAdminService(userRepo, issueRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	officerH := handler.NewOfficerHandler(onboardingSvc, &cfg.S3)
	issueH := handler.NewIssueHandler(issueSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, authSvc, authH, officerH, issueH, adminH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
