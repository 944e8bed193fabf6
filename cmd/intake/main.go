// Command intake runs the ingestion pipeline once for a local file,
// without going through the HTTP server.
// Usage: go run ./cmd/intake <path-to-receipt>
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"recibo/internal/config"
	"recibo/internal/email/noop"
	"recibo/internal/ocr"
	"recibo/internal/repository/postgres"
	"recibo/internal/service"
	s3storage "recibo/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: intake <path-to-receipt>")
	}
	path := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	runner := ocr.NewExecRunner()
	intakeSvc := service.NewIntakeService(
		postgres.NewReceiptRepo(db),
		s3Client,
		ocr.NewPreprocessor(cfg.OCR, runner),
		ocr.NewRecognizer(cfg.OCR, runner),
		noop.NewNoopSender(cfg.Server.BaseURL),
		&cfg.S3, &cfg.Email, cfg.OCR.WorkDir)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	receipt, err := intakeSvc.Ingest(context.Background(), service.IntakeInput{
		FileName: info.Name(),
		Size:     info.Size(),
		File:     f,
	})
	if err != nil {
		return fmt.Errorf("intake failed: %w", err)
	}

	log.Printf("receipt saved with ID %s | provider=%q invoice=%q date=%q total=%.2f status=%s",
		receipt.ID, receipt.Provider, receipt.InvoiceNumber, receipt.IssueDate,
		receipt.TotalAmount, receipt.Status)
	return nil
}
