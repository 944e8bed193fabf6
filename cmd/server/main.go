package main

import (
	"fmt"
	"log"

	"recibo/internal/config"
	"recibo/internal/email/noop"
	"recibo/internal/email/ses"
	"recibo/internal/handler"
	"recibo/internal/ocr"
	"recibo/internal/port"
	"recibo/internal/repository/postgres"
	"recibo/internal/router"
	"recibo/internal/service"
	s3storage "recibo/internal/storage/s3"
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
	receiptRepo := postgres.NewReceiptRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize OCR collaborators
	runner := ocr.NewExecRunner()
	preprocessor := ocr.NewPreprocessor(cfg.OCR, runner)
	recognizer := ocr.NewRecognizer(cfg.OCR, runner)

	// Initialize notifier
	var notifier port.Notifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Server.BaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		notifier = noop.NewNoopSender(cfg.Server.BaseURL)
	}

	// Initialize services
	intakeSvc := service.NewIntakeService(
		receiptRepo, s3Client, preprocessor, recognizer, notifier,
		&cfg.S3, &cfg.Email, cfg.OCR.WorkDir)
	receiptSvc := service.NewReceiptService(receiptRepo, s3Client, cfg.S3.PresignExpiry)
	exportSvc := service.NewExportService(receiptRepo)

	// Initialize handlers
	receiptH := handler.NewReceiptHandler(intakeSvc, receiptSvc, exportSvc)
	webhookH := handler.NewWebhookHandler(receiptSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(receiptH, webhookH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
